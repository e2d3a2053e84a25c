// Copyright (c) 2025 BVK Chaitanya

package wallet

import (
	"context"
	"flag"
	"fmt"

	"github.com/bvk/predictbot/api"
	"github.com/bvk/predictbot/cli"
	"github.com/bvk/predictbot/subcmds/cmdutil"
	"github.com/shopspring/decimal"
)

type Update struct {
	cmdutil.ClientFlags

	usdc float64
	wild float64
}

func (c *Update) Command() (*flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("update", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	fset.Float64Var(&c.usdc, "usdc", -1, "when non-negative replaces the USDC balance")
	fset.Float64Var(&c.wild, "wild", -1, "when non-negative replaces the WILD balance")
	return fset, cli.CmdFunc(c.run)
}

func (c *Update) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}

	req := &api.WalletUpdateRequest{}
	if c.usdc >= 0 {
		v := decimal.NewFromFloat(c.usdc)
		req.USDCBalance = &v
	}
	if c.wild >= 0 {
		v := decimal.NewFromFloat(c.wild)
		req.WildBalance = &v
	}
	resp, err := cmdutil.Post[api.WalletUpdateResponse](ctx, &c.ClientFlags, api.WalletUpdatePath, req)
	if err != nil {
		return err
	}

	w := resp.Wallet
	fmt.Printf("USDC Balance: %s\n", w.USDCBalance.StringFixed(2))
	fmt.Printf("WILD Balance: %s\n", w.WildBalance.StringFixed(2))
	return nil
}

func (c *Update) Synopsis() string {
	return "Updates the demo wallet balances"
}
