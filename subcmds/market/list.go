// Copyright (c) 2025 BVK Chaitanya

package market

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

	status string
}

func (c *List) Command() (*flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("list", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	fset.StringVar(&c.status, "status", "", "when non-empty only markets in this status are listed")
	return fset, cli.CmdFunc(c.run)
}

func (c *List) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}

	req := &api.MarketListRequest{Status: c.status}
	resp, err := cmdutil.Post[api.MarketListResponse](ctx, &c.ClientFlags, api.MarketListPath, req)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "UID\tStatus\tSport\tTitle\tVolume\t\n")
	for _, m := range resp.Markets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", m.ID, m.Status, m.Sport, m.Title, m.Volume.StringFixed(0))
	}
	return tw.Flush()
}

func (c *List) Synopsis() string {
	return "Prints prediction markets"
}
