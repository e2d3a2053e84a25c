// Copyright (c) 2025 BVK Chaitanya

package player

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

	price float64
}

func (c *Update) Command() (*flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("update", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	fset.Float64Var(&c.price, "price", 0, "when positive replaces the player token price")
	return fset, cli.CmdFunc(c.run)
}

func (c *Update) run(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("this command takes one (player uid) argument")
	}

	req := &api.PlayerUpdateRequest{UID: args[0]}
	if c.price > 0 {
		price := decimal.NewFromFloat(c.price)
		req.Price = &price
	}
	resp, err := cmdutil.Post[api.PlayerUpdateResponse](ctx, &c.ClientFlags, api.PlayerUpdatePath, req)
	if err != nil {
		return err
	}

	fmt.Printf("updated player %s (price %s)\n", resp.Player.ID, resp.Player.Price.StringFixed(2))
	return nil
}

func (c *Update) Synopsis() string {
	return "Updates a player token"
}
