// Copyright (c) 2025 BVK Chaitanya

package subcmds

import (
	"context"
	"flag"
	"fmt"

	"github.com/bvk/predictbot/api"
	"github.com/bvk/predictbot/cli"
	"github.com/bvk/predictbot/subcmds/cmdutil"
)

type Status struct {
	cmdutil.ClientFlags
}

func (c *Status) Synopsis() string {
	return "Prints a summary of the predictbot service"
}

func (c *Status) Command() (*flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("status", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	return fset, cli.CmdFunc(c.run)
}

func (c *Status) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("command takes no arguments")
	}

	resp, err := cmdutil.Post[api.StatusResponse](ctx, &c.ClientFlags, api.StatusPath, &api.StatusRequest{})
	if err != nil {
		return err
	}

	fmt.Printf("Server Time: %s\n", resp.ServerTime.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("Feed Connected: %t\n", resp.FeedConnected)
	fmt.Printf("Fees Enabled: %t\n", resp.FeesEnabled)
	fmt.Println()
	fmt.Printf("Num Markets: %d\n", resp.NumMarkets)
	fmt.Printf("Num Players: %d\n", resp.NumPlayers)
	fmt.Printf("Num Bets: %d\n", resp.NumBets)
	fmt.Printf("Num Trades: %d\n", resp.NumTrades)
	return nil
}
