// Copyright (c) 2025 BVK Chaitanya

package wallet

import (
	"context"
	"flag"
	"fmt"

	"github.com/bvk/predictbot/api"
	"github.com/bvk/predictbot/cli"
	"github.com/bvk/predictbot/subcmds/cmdutil"
)

type Get struct {
	cmdutil.ClientFlags
}

func (c *Get) Command() (*flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("get", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	return fset, cli.CmdFunc(c.run)
}

func (c *Get) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}

	resp, err := cmdutil.Post[api.WalletGetResponse](ctx, &c.ClientFlags, api.WalletGetPath, &api.WalletGetRequest{})
	if err != nil {
		return err
	}

	w := resp.Wallet
	fmt.Printf("Address: %s\n", w.Address)
	fmt.Printf("USDC Balance: %s\n", w.USDCBalance.StringFixed(2))
	fmt.Printf("WILD Balance: %s\n", w.WildBalance.StringFixed(2))
	return nil
}

func (c *Get) Synopsis() string {
	return "Prints the demo wallet balances"
}
