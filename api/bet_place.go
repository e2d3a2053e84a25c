// Copyright (c) 2025 BVK Chaitanya

package api

import "github.com/shopspring/decimal"

const BetPlacePath = "/predict/bet/place"

type BetPlaceRequest struct {
	MarketID string

	// Outcome is the label of the chosen market outcome.
	Outcome string

	Amount decimal.Decimal

	Odds decimal.Decimal

	// WalletAddress, when non-empty, accrues WILD points for the bettor.
	WalletAddress string
}

type BetPlaceResponse struct {
	UID string

	Status string

	// Balance holds the wallet USDC balance after the bet is placed.
	Balance decimal.Decimal

	// FeeAmount holds the integrator fee collected for this bet, in
	// smallest currency units. Zero when fee collection is disabled.
	FeeAmount int64
	FeeTxHash string
}
