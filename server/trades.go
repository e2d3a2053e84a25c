// Copyright (c) 2025 BVK Chaitanya

package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/bvk/predictbot/api"
	"github.com/bvk/predictbot/gobs"
)

func (s *Server) doTradePlace(ctx context.Context, req *api.TradePlaceRequest) (*api.TradePlaceResponse, error) {
	if err := req.Check(); err != nil {
		return nil, err
	}

	player, err := s.store.Player(ctx, req.PlayerID)
	if err != nil {
		return nil, err
	}
	if player.Status != "available" {
		return nil, fmt.Errorf("player token %q is not tradable: %w", player.Symbol, os.ErrInvalid)
	}

	trade := &gobs.Trade{
		PlayerID:     player.ID,
		PlayerName:   player.Name,
		PlayerSymbol: player.Symbol,
		Side:         req.Side,
		Amount:       req.Quantity,
		Price:        req.Price,
		Total:        req.Quantity.Mul(req.Price),
	}
	trade, err = s.store.CreateTrade(ctx, trade)
	if err != nil {
		return nil, err
	}

	// The trade price becomes the player token's last price.
	update := func(p *gobs.Player) error {
		p.Price = req.Price
		p.PriceHistory = append(p.PriceHistory, &gobs.PricePoint{
			Timestamp: time.Now(),
			Price:     req.Price,
		})
		return nil
	}
	if _, err := s.store.UpdatePlayer(ctx, player.ID, update); err != nil {
		slog.Warn("could not update player price (ignored)", "player", player.ID, "err", err)
	}

	wallet, err := s.store.Wallet(ctx)
	if err != nil {
		return nil, err
	}
	return &api.TradePlaceResponse{UID: trade.ID, Balance: wallet.USDCBalance}, nil
}

func (s *Server) doTradeList(ctx context.Context, req *api.TradeListRequest) (*api.TradeListResponse, error) {
	trades, err := s.store.Trades(ctx)
	if err != nil {
		return nil, err
	}
	return &api.TradeListResponse{Trades: trades}, nil
}
