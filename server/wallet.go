// Copyright (c) 2025 BVK Chaitanya

package server

import (
	"context"
	"errors"
	"os"

	"github.com/bvk/predictbot/api"
	"github.com/bvk/predictbot/gobs"
)

func (s *Server) doWalletGet(ctx context.Context, req *api.WalletGetRequest) (*api.WalletGetResponse, error) {
	w, err := s.store.Wallet(ctx)
	if err != nil {
		return nil, err
	}
	return &api.WalletGetResponse{Wallet: w}, nil
}

func (s *Server) doWalletPoints(ctx context.Context, req *api.WalletPointsRequest) (*api.WalletPointsResponse, error) {
	if req.Address != "" {
		r, err := s.store.WalletRecord(ctx, req.Address)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return &api.WalletPointsResponse{}, nil
			}
			return nil, err
		}
		return &api.WalletPointsResponse{Records: []*gobs.WalletRecord{r}}, nil
	}
	rs, err := s.store.WalletRecords(ctx)
	if err != nil {
		return nil, err
	}
	return &api.WalletPointsResponse{Records: rs}, nil
}

func (s *Server) doWalletUpdate(ctx context.Context, req *api.WalletUpdateRequest) (*api.WalletUpdateResponse, error) {
	update := func(w *gobs.Wallet) error {
		if req.USDCBalance != nil {
			w.USDCBalance = *req.USDCBalance
		}
		if req.WildBalance != nil {
			w.WildBalance = *req.WildBalance
		}
		return nil
	}
	w, err := s.store.UpdateWallet(ctx, update)
	if err != nil {
		return nil, err
	}
	return &api.WalletUpdateResponse{Wallet: w}, nil
}
