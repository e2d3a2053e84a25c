// Copyright (c) 2025 BVK Chaitanya

package market

import (
	"context"
	"encoding/json"
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
	if len(args) != 1 {
		return fmt.Errorf("this command takes one (market uid) argument")
	}

	req := &api.MarketGetRequest{UID: args[0]}
	resp, err := cmdutil.Post[api.MarketGetResponse](ctx, &c.ClientFlags, api.MarketGetPath, req)
	if err != nil {
		return err
	}
	jsdata, _ := json.MarshalIndent(resp.Market, "", "  ")
	fmt.Printf("%s\n", jsdata)
	return nil
}

func (c *Get) Synopsis() string {
	return "Prints a prediction market with its outcomes"
}
