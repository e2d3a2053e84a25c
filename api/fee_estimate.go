// Copyright (c) 2025 BVK Chaitanya

package api

import (
	"github.com/bvk/predictbot/feesplit"
	"github.com/shopspring/decimal"
)

const FeeEstimatePath = "/predict/fee/estimate"

type FeeEstimateRequest struct {
	OrderValue decimal.Decimal
}

type FeeEstimateResponse struct {
	Enabled bool

	FeeBps int64

	// FeeAmount is in smallest currency units.
	FeeAmount int64

	Transfers []*feesplit.Transfer
}
