// Copyright (c) 2025 BVK Chaitanya

package wallet

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

type Points struct {
	cmdutil.ClientFlags

	address string
}

func (c *Points) Command() (*flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("points", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	fset.StringVar(&c.address, "address", "", "when non-empty only this wallet address is listed")
	return fset, cli.CmdFunc(c.run)
}

func (c *Points) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}

	req := &api.WalletPointsRequest{Address: c.address}
	resp, err := cmdutil.Post[api.WalletPointsResponse](ctx, &c.ClientFlags, api.WalletPointsPath, req)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Address\tPoints\tTotalBetAmount\t\n")
	for _, r := range resp.Records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", r.Address, r.WildPoints.StringFixed(2), r.TotalBetAmount.StringFixed(2))
	}
	return tw.Flush()
}

func (c *Points) Synopsis() string {
	return "Prints WILD points accrued by wallet addresses"
}
