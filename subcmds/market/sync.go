// Copyright (c) 2025 BVK Chaitanya

package market

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/bvk/predictbot/api"
	"github.com/bvk/predictbot/cli"
	"github.com/bvk/predictbot/subcmds/cmdutil"
)

type Sync struct {
	cmdutil.ClientFlags

	tagIDs string
}

func (c *Sync) Command() (*flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("sync", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	fset.StringVar(&c.tagIDs, "tag-ids", "", "comma separated catalog tag ids to sync (default=all sports tags)")
	return fset, cli.CmdFunc(c.run)
}

func (c *Sync) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}

	req := &api.MarketSyncRequest{}
	if len(c.tagIDs) != 0 {
		req.TagIDs = strings.Split(c.tagIDs, ",")
	}
	resp, err := cmdutil.Post[api.MarketSyncResponse](ctx, &c.ClientFlags, api.MarketSyncPath, req)
	if err != nil {
		return err
	}
	fmt.Printf("imported %d new markets from %d events; subscribed %d price tokens\n",
		resp.NumMarkets, resp.NumEvents, len(resp.Subscribed))
	return nil
}

func (c *Sync) Synopsis() string {
	return "Imports live sports markets from the venue catalog"
}
