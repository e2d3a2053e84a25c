// Copyright (c) 2025 BVK Chaitanya

// Package feesplit computes and executes integrator fee collection. A fee
// proportional to the order value is split across configured recipient
// wallets with exact remainder handling; the sum of the per-wallet amounts
// is always equal to the total fee.
package feesplit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is one fee recipient with a percentage weight. Percentage is in
// percent units (e.g. 33.5 means 33.5%) and is significant only up to
// hundredths of a percent.
type Wallet struct {
	Address    string          `json:"address"`
	Percentage decimal.Decimal `json:"percentage"`
	Label      string          `json:"label,omitempty"`
}

// Config holds the integrator fee configuration. FeeAddress is the legacy
// single recipient, used only when the wallet list is empty.
type Config struct {
	FeeAddress string    `json:"feeAddress"`
	FeeBps     int64     `json:"feeBps"`
	Enabled    bool      `json:"enabled"`
	Wallets    []*Wallet `json:"wallets"`
}

// Check returns an error if the configuration values are unusable.
func (c *Config) Check() error {
	if c.FeeBps < 0 {
		return fmt.Errorf("fee basis points %d cannot be negative: %w", c.FeeBps, os.ErrInvalid)
	}
	if c.FeeBps > 10000 {
		return fmt.Errorf("fee basis points %d cannot exceed 10000: %w", c.FeeBps, os.ErrInvalid)
	}
	for i, w := range c.Wallets {
		if w == nil {
			return fmt.Errorf("wallet %d is nil: %w", i, os.ErrInvalid)
		}
		if w.Percentage.IsNegative() {
			return fmt.Errorf("wallet %q percentage cannot be negative: %w", w.Address, os.ErrInvalid)
		}
	}
	return nil
}

// recipients returns wallets with a usable address and a positive weight,
// in the configured order.
func (c *Config) recipients() []*Wallet {
	var ws []*Wallet
	for _, w := range c.Wallets {
		if w != nil && w.Address != "" && w.Percentage.IsPositive() {
			ws = append(ws, w)
		}
	}
	return ws
}

// hasRecipients reports whether any fee recipient is configured at all.
func (c *Config) hasRecipients() bool {
	return c.FeeAddress != "" || len(c.recipients()) > 0
}

// LoadConfig fetches the fee configuration from a JSON endpoint. Callers
// must treat a failed load as fee collection disabled.
func LoadConfig(ctx context.Context, client *http.Client, endpoint *url.URL) (*Config, error) {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("could not create fee config request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not fetch fee config: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fee config endpoint returned status %d", resp.StatusCode)
	}

	c := new(Config)
	if err := json.NewDecoder(resp.Body).Decode(c); err != nil {
		return nil, fmt.Errorf("could not decode fee config: %w", err)
	}
	if err := c.Check(); err != nil {
		return nil, err
	}
	return c, nil
}
