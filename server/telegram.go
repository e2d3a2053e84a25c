// Copyright (c) 2025 BVK Chaitanya

package server

import (
	"context"
	"fmt"

	"github.com/bvk/predictbot/api"
	"github.com/bvk/predictbot/telegram"
	"github.com/visvasity/cli"
)

func (s *Server) AddTelegramCommand(ctx context.Context, name, purpose string, handler telegram.CmdFunc) error {
	if s.telegramClient != nil {
		return s.telegramClient.AddCommand(ctx, name, purpose, handler)
	}
	return nil // Ignored
}

func (s *Server) addTelegramCommands(ctx context.Context) error {
	if s.telegramClient == nil {
		return nil
	}
	cmds := []struct {
		name, purpose string
		handler       telegram.CmdFunc
	}{
		{"status", "Prints service status", s.statusTelegramCmd},
		{"wallet", "Prints the demo wallet balances", s.walletTelegramCmd},
		{"bets", "Prints recently placed bets", s.betsTelegramCmd},
	}
	for _, c := range cmds {
		if err := s.telegramClient.AddCommand(ctx, c.name, c.purpose, c.handler); err != nil {
			return fmt.Errorf("could not add telegram command %q: %w", c.name, err)
		}
	}
	return nil
}

func (s *Server) statusTelegramCmd(ctx context.Context, args []string) error {
	stdout := cli.Stdout(ctx)
	resp, err := s.doStatus(ctx, &api.StatusRequest{})
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Feed Connected: %t\n", resp.FeedConnected)
	fmt.Fprintf(stdout, "Fees Enabled: %t\n", resp.FeesEnabled)
	fmt.Fprintf(stdout, "Markets: %d\n", resp.NumMarkets)
	fmt.Fprintf(stdout, "Players: %d\n", resp.NumPlayers)
	fmt.Fprintf(stdout, "Bets: %d\n", resp.NumBets)
	fmt.Fprintf(stdout, "Trades: %d\n", resp.NumTrades)
	return nil
}

func (s *Server) walletTelegramCmd(ctx context.Context, args []string) error {
	stdout := cli.Stdout(ctx)
	wallet, err := s.store.Wallet(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "USDC: %s\n", wallet.USDCBalance.StringFixed(2))
	fmt.Fprintf(stdout, "WILD: %s\n", wallet.WildBalance.StringFixed(0))
	fmt.Fprintf(stdout, "Total: %s\n", wallet.TotalValue.StringFixed(2))
	return nil
}

func (s *Server) betsTelegramCmd(ctx context.Context, args []string) error {
	stdout := cli.Stdout(ctx)
	bets, err := s.store.Bets(ctx)
	if err != nil {
		return err
	}
	if len(bets) == 0 {
		fmt.Fprintln(stdout, "no bets")
		return nil
	}
	const limit = 10
	if len(bets) > limit {
		bets = bets[len(bets)-limit:]
	}
	for _, b := range bets {
		fmt.Fprintf(stdout, "%s %s@%s %s\n", b.PlacedAt.Format("2006-01-02"), b.Amount.StringFixed(2), b.Odds.StringFixed(2), b.Status)
	}
	return nil
}
