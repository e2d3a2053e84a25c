// Copyright (c) 2025 BVK Chaitanya

package fee

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/bvk/predictbot/api"
	"github.com/bvk/predictbot/cli"
	"github.com/bvk/predictbot/gobs"
	"github.com/bvk/predictbot/subcmds/cmdutil"
)

type Set struct {
	cmdutil.ClientFlags
}

func (c *Set) Command() (*flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("set", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	return fset, cli.CmdFunc(c.run)
}

func (c *Set) run(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("this command takes one (fee config file) argument")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("could not read fee config file: %w", err)
	}
	config := new(gobs.FeeConfig)
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("could not unmarshal fee config file: %w", err)
	}

	req := &api.FeeSetRequest{Config: config}
	if _, err := cmdutil.Post[api.FeeSetResponse](ctx, &c.ClientFlags, api.FeeSetPath, req); err != nil {
		return err
	}
	return nil
}

func (c *Set) Synopsis() string {
	return "Updates the integrator fee configuration"
}

func (c *Set) CommandHelp() string {
	return `

Command "set" updates the integrator fee configuration from a JSON file,
for example:

    {
      "FeeAddress": "0xfee",
      "FeeBps": 250,
      "Enabled": true,
      "Wallets": [
        {"Address": "0xaaa", "Percentage": "60", "Label": "treasury"},
        {"Address": "0xbbb", "Percentage": "40", "Label": "partners"}
      ]
    }

Wallet percentages must sum to 100. The updated configuration takes
effect immediately for new bets.
`
}
