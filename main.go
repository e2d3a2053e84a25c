// Copyright (c) 2025 BVK Chaitanya

package main

import (
	"context"
	"log"
	"os"

	"github.com/bvk/predictbot/cli"
	"github.com/bvk/predictbot/subcmds"
	"github.com/bvk/predictbot/subcmds/bet"
	"github.com/bvk/predictbot/subcmds/db"
	"github.com/bvk/predictbot/subcmds/fee"
	"github.com/bvk/predictbot/subcmds/market"
	"github.com/bvk/predictbot/subcmds/player"
	"github.com/bvk/predictbot/subcmds/trade"
	"github.com/bvk/predictbot/subcmds/wallet"
)

func main() {
	dbCmds := []cli.Command{
		new(db.Get),
		new(db.Set),
		new(db.Delete),
		new(db.List),
		new(db.Backup),
		new(db.Restore),
	}

	marketCmds := []cli.Command{
		new(market.List),
		new(market.Get),
		new(market.Sync),
		new(market.Delete),
	}

	playerCmds := []cli.Command{
		new(player.List),
		new(player.Update),
	}

	betCmds := []cli.Command{
		new(bet.Place),
		new(bet.List),
	}

	tradeCmds := []cli.Command{
		new(trade.Place),
		new(trade.List),
	}

	walletCmds := []cli.Command{
		new(wallet.Get),
		new(wallet.Update),
		new(wallet.Points),
	}

	feeCmds := []cli.Command{
		new(fee.Set),
		new(fee.Estimate),
		new(fee.List),
	}

	cmds := []cli.Command{
		new(subcmds.Run),
		new(subcmds.Status),
		cli.CommandGroup("db", "View/update database directly", dbCmds...),
		cli.CommandGroup("market", "Manage prediction markets", marketCmds...),
		cli.CommandGroup("player", "Manage player tokens", playerCmds...),
		cli.CommandGroup("bet", "Place/list prediction market bets", betCmds...),
		cli.CommandGroup("trade", "Place/list player token trades", tradeCmds...),
		cli.CommandGroup("wallet", "View demo wallet state", walletCmds...),
		cli.CommandGroup("fee", "Manage integrator fee collection", feeCmds...),
	}
	if err := cli.Run(context.Background(), cmds, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
