// Copyright (c) 2025 BVK Chaitanya

package fee

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/bvk/predictbot/api"
	"github.com/bvk/predictbot/cli"
	"github.com/bvk/predictbot/subcmds/cmdutil"
	"github.com/shopspring/decimal"
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

	resp, err := cmdutil.Post[api.FeeListResponse](ctx, &c.ClientFlags, api.FeeListPath, &api.FeeListRequest{})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "UID\tBet\tAddress\tLabel\tAmount\tTxHash\t\n")
	for _, t := range resp.Transfers {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n", t.ID, t.BetID, t.Address, t.Label, decimal.New(t.Amount, -6).StringFixed(6), t.TxHash)
	}
	return tw.Flush()
}

func (c *List) Synopsis() string {
	return "Prints executed fee transfers"
}
