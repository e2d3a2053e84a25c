// Copyright (c) 2025 BVK Chaitanya

package api

import "github.com/shopspring/decimal"

const TradePlacePath = "/predict/trade/place"

type TradePlaceRequest struct {
	// PlayerID identifies the player token being traded.
	PlayerID string

	// Side must be "buy" or "sell".
	Side string

	Quantity decimal.Decimal

	Price decimal.Decimal
}

type TradePlaceResponse struct {
	UID string

	// Balance holds the wallet USDC balance after the trade.
	Balance decimal.Decimal
}
