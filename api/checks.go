// Copyright (c) 2025 BVK Chaitanya

package api

import (
	"fmt"
	"os"
)

func (r *BetPlaceRequest) Check() error {
	if r.MarketID == "" {
		return fmt.Errorf("market id cannot be empty: %w", os.ErrInvalid)
	}
	if r.Outcome == "" {
		return fmt.Errorf("outcome cannot be empty: %w", os.ErrInvalid)
	}
	if !r.Amount.IsPositive() {
		return fmt.Errorf("bet amount must be positive: %w", os.ErrInvalid)
	}
	if r.Odds.IsNegative() {
		return fmt.Errorf("odds cannot be negative: %w", os.ErrInvalid)
	}
	return nil
}

func (r *TradePlaceRequest) Check() error {
	if r.PlayerID == "" {
		return fmt.Errorf("player id cannot be empty: %w", os.ErrInvalid)
	}
	if r.Side != "buy" && r.Side != "sell" {
		return fmt.Errorf("side must be buy or sell: %w", os.ErrInvalid)
	}
	if !r.Quantity.IsPositive() {
		return fmt.Errorf("quantity must be positive: %w", os.ErrInvalid)
	}
	if !r.Price.IsPositive() {
		return fmt.Errorf("price must be positive: %w", os.ErrInvalid)
	}
	return nil
}

func (r *SignRequest) Check() error {
	if r.Method == "" || r.RequestPath == "" {
		return fmt.Errorf("method and request path cannot be empty: %w", os.ErrInvalid)
	}
	return nil
}
