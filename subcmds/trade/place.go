// Copyright (c) 2025 BVK Chaitanya

package trade

import (
	"context"
	"flag"
	"fmt"

	"github.com/bvk/predictbot/api"
	"github.com/bvk/predictbot/cli"
	"github.com/bvk/predictbot/subcmds/cmdutil"
	"github.com/shopspring/decimal"
)

type Place struct {
	cmdutil.ClientFlags

	player   string
	side     string
	quantity float64
	price    float64
}

func (c *Place) Command() (*flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("place", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	fset.StringVar(&c.player, "player", "", "uid of the player token")
	fset.StringVar(&c.side, "side", "buy", "one of buy or sell")
	fset.Float64Var(&c.quantity, "quantity", 0, "number of player tokens to trade")
	fset.Float64Var(&c.price, "price", 0, "price per player token in USDC")
	return fset, cli.CmdFunc(c.run)
}

func (c *Place) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}
	if len(c.player) == 0 {
		return fmt.Errorf("player uid cannot be empty")
	}
	if c.side != "buy" && c.side != "sell" {
		return fmt.Errorf("side must be one of buy or sell")
	}
	if c.quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if c.price <= 0 {
		return fmt.Errorf("price must be positive")
	}

	req := &api.TradePlaceRequest{
		PlayerID: c.player,
		Side:     c.side,
		Quantity: decimal.NewFromFloat(c.quantity),
		Price:    decimal.NewFromFloat(c.price),
	}
	resp, err := cmdutil.Post[api.TradePlaceResponse](ctx, &c.ClientFlags, api.TradePlacePath, req)
	if err != nil {
		return err
	}

	fmt.Printf("placed trade %s (balance %s)\n", resp.UID, resp.Balance.StringFixed(2))
	return nil
}

func (c *Place) Synopsis() string {
	return "Places a player token trade"
}
