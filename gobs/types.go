// Copyright (c) 2025 BVK Chaitanya

package gobs

import (
	"time"

	"github.com/shopspring/decimal"
)

// Outcome is one side of a market with its current odds.
type Outcome struct {
	ID          string
	Label       string
	Odds        decimal.Decimal
	Probability decimal.Decimal
}

type Market struct {
	ID          string
	Title       string
	Description string

	// Category is one of "sports", "politics", "crypto" or "entertainment".
	Category string

	Sport  string
	League string

	StartTime time.Time
	EndTime   time.Time

	// Status is one of "open", "closed" or "settled".
	Status string

	Outcomes []*Outcome

	Volume    decimal.Decimal
	Liquidity decimal.Decimal

	ImageURL string

	// CatalogID and ConditionID hold the upstream catalog identifiers when
	// the market was imported from the venue api.
	CatalogID   string
	ConditionID string

	// TokenIDs hold the instrument identifiers for the live price feed, one
	// per outcome, when known.
	TokenIDs []string
}

type PlayerStats struct {
	Holders   int64
	MarketCap decimal.Decimal
	Change24H decimal.Decimal
}

type PricePoint struct {
	Timestamp time.Time
	Price     decimal.Decimal
}

type Player struct {
	ID             string
	Name           string
	Symbol         string
	Team           string
	Sport          string
	AvatarInitials string
	AvatarURL      string

	// Price is the current player token price.
	Price decimal.Decimal

	FundingTarget     decimal.Decimal
	FundingCurrent    decimal.Decimal
	FundingPercentage decimal.Decimal

	Generation int64

	// Status is one of "offering", "available" or "closed".
	Status string

	PriceHistory []*PricePoint
	Stats        *PlayerStats
}

type Bet struct {
	ID        string
	MarketID  string
	OutcomeID string

	Amount          decimal.Decimal
	Odds            decimal.Decimal
	PotentialPayout decimal.Decimal

	// Status is one of "pending", "won", "lost" or "cancelled".
	Status string

	PlacedAt      time.Time
	WalletAddress string
}

type Trade struct {
	ID           string
	PlayerID     string
	PlayerName   string
	PlayerSymbol string

	// Side is "buy" or "sell".
	Side string

	Amount decimal.Decimal
	Price  decimal.Decimal
	Total  decimal.Decimal

	Timestamp     time.Time
	WalletAddress string
}

type Wallet struct {
	Address     string
	USDCBalance decimal.Decimal
	WildBalance decimal.Decimal
	TotalValue  decimal.Decimal
}

// WalletRecord tracks WILD points earned from betting for one wallet
// address. One point is accrued per dollar of bet amount.
type WalletRecord struct {
	Address        string
	WildPoints     decimal.Decimal
	TotalBetAmount decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type AdminSettings struct {
	DemoMode        bool
	MockDataEnabled bool
	ActiveTagIDs    []string
	LastUpdated     time.Time
}

type FeeWallet struct {
	Address    string
	Percentage decimal.Decimal
	Label      string
}

// FeeConfig is the integrator fee configuration served to terminal clients
// over the fee config endpoint.
type FeeConfig struct {
	FeeAddress string
	FeeBps     int64
	Enabled    bool
	Wallets    []*FeeWallet
}

// FeeTransfer records one executed fee transfer leg.
type FeeTransfer struct {
	ID      string
	BetID   string
	Address string
	Label   string

	// Amount is in the smallest currency unit (6 decimals).
	Amount int64

	TxHash    string
	Timestamp time.Time
}

// TelegramState holds the telegram bot state.
type TelegramState struct {
	// UserChatIDMap holds the chat id for each known telegram user.
	UserChatIDMap map[string]int64
}

// KeyValue is used for db backup and restore files.
type KeyValue struct {
	Key   string
	Value []byte
}
