// Copyright (c) 2025 BVK Chaitanya

package server

import (
	"time"

	"github.com/shopspring/decimal"
)

type Options struct {
	// NoSeed skips seeding the database with the demo wallet, markets and
	// players.
	NoSeed bool

	// NoFeed disables the live price feed client.
	NoFeed bool

	// LowBalanceLimit holds the wallet USDC balance below which a low
	// balance alert is sent.
	LowBalanceLimit decimal.Decimal

	// AlertFreezeDuration holds the amount of time repeated alerts of the
	// same kind are suppressed.
	AlertFreezeDuration time.Duration

	// SignTokenLifetime holds the validity duration of issued request
	// signing tokens.
	SignTokenLifetime time.Duration
}

func (v *Options) setDefaults() {
	if v.LowBalanceLimit.IsZero() {
		v.LowBalanceLimit = decimal.NewFromInt(100)
	}
	if v.AlertFreezeDuration == 0 {
		v.AlertFreezeDuration = time.Hour
	}
	if v.SignTokenLifetime == 0 {
		v.SignTokenLifetime = 2 * time.Minute
	}
}

func (v *Options) Check() error {
	return nil
}
