// Copyright (c) 2025 BVK Chaitanya

package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/bvk/predictbot/api"
	"github.com/bvk/predictbot/gobs"
)

func (s *Server) doBetPlace(ctx context.Context, req *api.BetPlaceRequest) (*api.BetPlaceResponse, error) {
	if err := req.Check(); err != nil {
		return nil, err
	}

	market, err := s.store.Market(ctx, req.MarketID)
	if err != nil {
		return nil, err
	}
	if market.Status != "open" {
		return nil, fmt.Errorf("market %q is not open: %w", market.ID, os.ErrInvalid)
	}

	outcome := findOutcome(market, req.Outcome)
	if outcome == nil {
		return nil, fmt.Errorf("market has no outcome %q: %w", req.Outcome, os.ErrNotExist)
	}

	odds := req.Odds
	if odds.IsZero() {
		odds = outcome.Odds
	}

	bet := &gobs.Bet{
		MarketID:        market.ID,
		OutcomeID:       outcome.ID,
		Amount:          req.Amount,
		Odds:            odds,
		PotentialPayout: req.Amount.Mul(odds),
		WalletAddress:   req.WalletAddress,
	}
	bet, err = s.store.CreateBet(ctx, bet)
	if err != nil {
		return nil, err
	}

	resp := &api.BetPlaceResponse{
		UID:    bet.ID,
		Status: bet.Status,
	}

	// Fee collection is best-effort; a failed collection never unwinds a
	// placed bet.
	result := s.collector.Collect(ctx, s.executor, bet.Amount)
	if result.Success && !result.Skipped {
		resp.FeeAmount = result.FeeAmount
		resp.FeeTxHash = result.TxHash
		var transfers []*gobs.FeeTransfer
		for _, t := range result.Transfers {
			transfers = append(transfers, &gobs.FeeTransfer{
				BetID:   bet.ID,
				Address: t.Address,
				Label:   t.Label,
				Amount:  t.Amount,
				TxHash:  result.TxHash,
			})
		}
		if err := s.store.SaveFeeTransfers(ctx, transfers); err != nil {
			slog.Warn("could not record fee transfers (ignored)", "bet", bet.ID, "err", err)
		}
	}
	if !result.Success && !result.Skipped {
		slog.Warn("could not collect integrator fee (ignored)", "bet", bet.ID, "err", s.collector.LastError())
	}

	wallet, err := s.store.Wallet(ctx)
	if err != nil {
		return nil, err
	}
	resp.Balance = wallet.USDCBalance
	return resp, nil
}

func (s *Server) doBetList(ctx context.Context, req *api.BetListRequest) (*api.BetListResponse, error) {
	bets, err := s.store.Bets(ctx)
	if err != nil {
		return nil, err
	}
	return &api.BetListResponse{Bets: bets}, nil
}

func findOutcome(m *gobs.Market, label string) *gobs.Outcome {
	for _, o := range m.Outcomes {
		if strings.EqualFold(o.Label, label) || o.ID == label {
			return o
		}
	}
	return nil
}
