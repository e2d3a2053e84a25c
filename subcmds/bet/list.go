// Copyright (c) 2025 BVK Chaitanya

package bet

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

	resp, err := cmdutil.Post[api.BetListResponse](ctx, &c.ClientFlags, api.BetListPath, &api.BetListRequest{})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "UID\tMarket\tOutcome\tAmount\tOdds\tPayout\tStatus\t\n")
	for _, b := range resp.Bets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n", b.ID, b.MarketID, b.OutcomeID, b.Amount.StringFixed(2), b.Odds.StringFixed(2), b.PotentialPayout.StringFixed(2), b.Status)
	}
	return tw.Flush()
}

func (c *List) Synopsis() string {
	return "Prints placed bets"
}
