// Copyright (c) 2025 BVK Chaitanya

package bet

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

	market  string
	outcome string
	amount  float64
	odds    float64
	wallet  string
}

func (c *Place) Command() (*flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("place", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	fset.StringVar(&c.market, "market", "", "uid of the prediction market")
	fset.StringVar(&c.outcome, "outcome", "", "label or id of the chosen outcome")
	fset.Float64Var(&c.amount, "amount", 0, "bet amount in USDC")
	fset.Float64Var(&c.odds, "odds", 0, "odds for the bet; market odds are used when zero")
	fset.StringVar(&c.wallet, "wallet", "", "wallet address accruing points for this bet")
	return fset, cli.CmdFunc(c.run)
}

func (c *Place) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}
	if len(c.market) == 0 {
		return fmt.Errorf("market uid cannot be empty")
	}
	if len(c.outcome) == 0 {
		return fmt.Errorf("outcome cannot be empty")
	}
	if c.amount <= 0 {
		return fmt.Errorf("bet amount must be positive")
	}

	req := &api.BetPlaceRequest{
		MarketID:      c.market,
		Outcome:       c.outcome,
		Amount:        decimal.NewFromFloat(c.amount),
		Odds:          decimal.NewFromFloat(c.odds),
		WalletAddress: c.wallet,
	}
	resp, err := cmdutil.Post[api.BetPlaceResponse](ctx, &c.ClientFlags, api.BetPlacePath, req)
	if err != nil {
		return err
	}

	fmt.Printf("placed bet %s (balance %s)\n", resp.UID, resp.Balance.StringFixed(2))
	if resp.FeeAmount > 0 {
		fmt.Printf("collected fee %s (tx %s)\n", decimal.New(resp.FeeAmount, -6).StringFixed(6), resp.FeeTxHash)
	}
	return nil
}

func (c *Place) Synopsis() string {
	return "Places a bet on a prediction market"
}
