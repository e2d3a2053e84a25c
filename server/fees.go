// Copyright (c) 2025 BVK Chaitanya

package server

import (
	"context"
	"fmt"
	"os"

	"github.com/bvk/predictbot/api"
	"github.com/bvk/predictbot/feesplit"
	"github.com/bvk/predictbot/gobs"
)

// feeConfig converts the stored fee configuration into the collector's
// form.
func feeConfig(gc *gobs.FeeConfig) *feesplit.Config {
	if gc == nil {
		return nil
	}
	fc := &feesplit.Config{
		FeeAddress: gc.FeeAddress,
		FeeBps:     gc.FeeBps,
		Enabled:    gc.Enabled,
	}
	for _, w := range gc.Wallets {
		fc.Wallets = append(fc.Wallets, &feesplit.Wallet{
			Address:    w.Address,
			Percentage: w.Percentage,
			Label:      w.Label,
		})
	}
	return fc
}

// getFeeConfig serves the fee configuration to terminal clients. An absent
// or invalid configuration is served as disabled, never as an error.
func (s *Server) getFeeConfig(ctx context.Context) (*feesplit.Config, error) {
	config := s.collector.Config()
	if config == nil {
		return &feesplit.Config{Enabled: false}, nil
	}
	return config, nil
}

func (s *Server) doFeeEstimate(ctx context.Context, req *api.FeeEstimateRequest) (*api.FeeEstimateResponse, error) {
	resp := &api.FeeEstimateResponse{
		Enabled: s.collector.IsEnabled(),
	}
	if config := s.collector.Config(); config != nil {
		resp.FeeBps = config.FeeBps
	}
	resp.FeeAmount, resp.Transfers = s.collector.Estimate(req.OrderValue)
	return resp, nil
}

func (s *Server) doFeeList(ctx context.Context, req *api.FeeListRequest) (*api.FeeListResponse, error) {
	transfers, err := s.store.FeeTransfers(ctx)
	if err != nil {
		return nil, err
	}
	return &api.FeeListResponse{Transfers: transfers}, nil
}

func (s *Server) doFeeSet(ctx context.Context, req *api.FeeSetRequest) (*api.FeeSetResponse, error) {
	if req.Config == nil {
		return nil, fmt.Errorf("fee config cannot be nil: %w", os.ErrInvalid)
	}
	fc := feeConfig(req.Config)
	if err := fc.Check(); err != nil {
		return nil, err
	}
	if err := s.store.SetFeeConfig(ctx, req.Config); err != nil {
		return nil, err
	}
	s.collector.SetConfig(fc)
	return &api.FeeSetResponse{}, nil
}
