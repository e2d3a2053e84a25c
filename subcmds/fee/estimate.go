// Copyright (c) 2025 BVK Chaitanya

package fee

import (
	"context"
	"flag"
	"fmt"

	"github.com/bvk/predictbot/api"
	"github.com/bvk/predictbot/cli"
	"github.com/bvk/predictbot/subcmds/cmdutil"
	"github.com/shopspring/decimal"
)

type Estimate struct {
	cmdutil.ClientFlags
}

func (c *Estimate) Command() (*flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("estimate", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	return fset, cli.CmdFunc(c.run)
}

func (c *Estimate) run(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("this command takes one (order value) argument")
	}
	value, err := decimal.NewFromString(args[0])
	if err != nil {
		return fmt.Errorf("could not parse order value %q: %w", args[0], err)
	}

	req := &api.FeeEstimateRequest{OrderValue: value}
	resp, err := cmdutil.Post[api.FeeEstimateResponse](ctx, &c.ClientFlags, api.FeeEstimatePath, req)
	if err != nil {
		return err
	}

	if !resp.Enabled {
		fmt.Println("fee collection is disabled")
		return nil
	}
	fmt.Printf("fee for order value %s at %d bps is %s\n", value.StringFixed(2), resp.FeeBps, decimal.New(resp.FeeAmount, -6).StringFixed(6))
	for _, t := range resp.Transfers {
		fmt.Printf("  %s (%s) receives %s\n", t.Address, t.Label, decimal.New(t.Amount, -6).StringFixed(6))
	}
	return nil
}

func (c *Estimate) Synopsis() string {
	return "Prints the fee breakdown for an order value"
}
