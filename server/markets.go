// Copyright (c) 2025 BVK Chaitanya

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/bvk/predictbot/api"
	"github.com/bvk/predictbot/gobs"
)

func (s *Server) doMarketList(ctx context.Context, req *api.MarketListRequest) (*api.MarketListResponse, error) {
	markets, err := s.store.Markets(ctx)
	if err != nil {
		return nil, err
	}
	if req.Status != "" {
		var filtered []*gobs.Market
		for _, m := range markets {
			if m.Status == req.Status {
				filtered = append(filtered, m)
			}
		}
		markets = filtered
	}
	return &api.MarketListResponse{Markets: markets}, nil
}

func (s *Server) doMarketGet(ctx context.Context, req *api.MarketGetRequest) (*api.MarketGetResponse, error) {
	m, err := s.store.Market(ctx, req.UID)
	if err != nil {
		return nil, err
	}
	return &api.MarketGetResponse{Market: m}, nil
}

func (s *Server) doMarketCreate(ctx context.Context, req *api.MarketCreateRequest) (*api.MarketCreateResponse, error) {
	if req.Market == nil {
		return nil, fmt.Errorf("market cannot be nil: %w", os.ErrInvalid)
	}
	m, err := s.store.CreateMarket(ctx, req.Market)
	if err != nil {
		return nil, err
	}
	s.subscribeTokens(m.TokenIDs)
	return &api.MarketCreateResponse{UID: m.ID}, nil
}

func (s *Server) doMarketDelete(ctx context.Context, req *api.MarketDeleteRequest) (*api.MarketDeleteResponse, error) {
	m, err := s.store.Market(ctx, req.UID)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteMarket(ctx, req.UID); err != nil {
		return nil, err
	}
	if s.feedClient != nil && len(m.TokenIDs) != 0 {
		s.feedClient.Unsubscribe(m.TokenIDs)
	}
	return &api.MarketDeleteResponse{}, nil
}

// doMarketSync imports live sports markets from the venue catalog api and
// registers their outcome tokens with the live price feed.
func (s *Server) doMarketSync(ctx context.Context, req *api.MarketSyncRequest) (*api.MarketSyncResponse, error) {
	tagIDs := req.TagIDs
	if len(tagIDs) == 0 {
		tags, err := s.gammaClient.Tags(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not fetch catalog tags: %w", err)
		}
		for _, t := range tags {
			tagIDs = append(tagIDs, t.ID)
		}
	}

	events, err := s.gammaClient.Events(ctx, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("could not fetch catalog events: %w", err)
	}

	known, err := s.store.Markets(ctx)
	if err != nil {
		return nil, err
	}
	catalogIDMap := make(map[string]bool)
	for _, m := range known {
		if m.CatalogID != "" {
			catalogIDMap[m.CatalogID] = true
		}
	}

	resp := &api.MarketSyncResponse{NumEvents: len(events)}
	for _, event := range events {
		gm := event.GobMarket()
		if gm == nil || catalogIDMap[gm.CatalogID] {
			continue
		}
		if _, err := s.store.CreateMarket(ctx, gm); err != nil {
			slog.Warn("could not save synced market (skipped)", "catalogID", gm.CatalogID, "err", err)
			continue
		}
		resp.NumMarkets++
		resp.Subscribed = append(resp.Subscribed, gm.TokenIDs...)
	}
	s.subscribeTokens(resp.Subscribed)
	return resp, nil
}

func (s *Server) subscribeTokens(tokenIDs []string) {
	if s.feedClient != nil && len(tokenIDs) != 0 {
		s.feedClient.Subscribe(tokenIDs)
	}
}

// resubscribeMarkets registers the outcome tokens of all open markets with
// the live price feed. Used at startup so previously synced markets keep
// receiving prices.
func (s *Server) resubscribeMarkets(ctx context.Context) error {
	markets, err := s.store.Markets(ctx)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	var tokenIDs []string
	for _, m := range markets {
		if m.Status == "open" {
			tokenIDs = append(tokenIDs, m.TokenIDs...)
		}
	}
	s.subscribeTokens(tokenIDs)
	return nil
}
