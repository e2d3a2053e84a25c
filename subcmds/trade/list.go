// Copyright (c) 2025 BVK Chaitanya

package trade

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/bvk/predictbot/api"
	"github.com/bvk/predictbot/cli"
	"github.com/bvk/predictbot/subcmds/cmdutil"
)

type List struct {
	cmdutil.ClientFlags
}

func (c *List) Command() (*flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("list", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	return fset, cli.CmdFunc(c.run)
}

func (c *List) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}

	resp, err := cmdutil.Post[api.TradeListResponse](ctx, &c.ClientFlags, api.TradeListPath, &api.TradeListRequest{})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "UID\tSymbol\tSide\tQuantity\tPrice\tTotal\t\n")
	for _, t := range resp.Trades {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n", t.ID, t.PlayerSymbol, t.Side, t.Amount.StringFixed(2), t.Price.StringFixed(2), t.Total.StringFixed(2))
	}
	return tw.Flush()
}

func (c *List) Synopsis() string {
	return "Prints player token trades"
}
