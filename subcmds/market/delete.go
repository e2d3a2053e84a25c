// Copyright (c) 2025 BVK Chaitanya

package market

import (
	"context"
	"flag"
	"fmt"

	"github.com/bvk/predictbot/api"
	"github.com/bvk/predictbot/cli"
	"github.com/bvk/predictbot/subcmds/cmdutil"
)

type Delete struct {
	cmdutil.ClientFlags
}

func (c *Delete) Command() (*flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("delete", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	return fset, cli.CmdFunc(c.run)
}

func (c *Delete) run(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("this command takes one (market uid) argument")
	}

	req := &api.MarketDeleteRequest{UID: args[0]}
	if _, err := cmdutil.Post[api.MarketDeleteResponse](ctx, &c.ClientFlags, api.MarketDeletePath, req); err != nil {
		return err
	}
	return nil
}

func (c *Delete) Synopsis() string {
	return "Removes a prediction market"
}
