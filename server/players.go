// Copyright (c) 2025 BVK Chaitanya

package server

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bvk/predictbot/api"
	"github.com/bvk/predictbot/gobs"
)

func (s *Server) doPlayerList(ctx context.Context, req *api.PlayerListRequest) (*api.PlayerListResponse, error) {
	players, err := s.store.Players(ctx)
	if err != nil {
		return nil, err
	}
	return &api.PlayerListResponse{Players: players}, nil
}

func (s *Server) doPlayerUpdate(ctx context.Context, req *api.PlayerUpdateRequest) (*api.PlayerUpdateResponse, error) {
	update := func(p *gobs.Player) error {
		if req.Price != nil {
			p.Price = *req.Price
			p.PriceHistory = append(p.PriceHistory, &gobs.PricePoint{
				Timestamp: time.Now(),
				Price:     *req.Price,
			})
		}
		if req.Stats != nil {
			p.Stats = req.Stats
		}
		return nil
	}
	p, err := s.store.UpdatePlayer(ctx, req.UID, update)
	if err != nil {
		return nil, err
	}
	return &api.PlayerUpdateResponse{Player: p}, nil
}

func (s *Server) doPlayerCreate(ctx context.Context, req *api.PlayerCreateRequest) (*api.PlayerCreateResponse, error) {
	if req.Player == nil {
		return nil, fmt.Errorf("player cannot be nil: %w", os.ErrInvalid)
	}
	p, err := s.store.CreatePlayer(ctx, req.Player)
	if err != nil {
		return nil, err
	}
	return &api.PlayerCreateResponse{UID: p.ID}, nil
}

func (s *Server) doPlayerDelete(ctx context.Context, req *api.PlayerDeleteRequest) (*api.PlayerDeleteResponse, error) {
	if err := s.store.DeletePlayer(ctx, req.UID); err != nil {
		return nil, err
	}
	return &api.PlayerDeleteResponse{}, nil
}
