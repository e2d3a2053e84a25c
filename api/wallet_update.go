// Copyright (c) 2025 BVK Chaitanya

package api

import (
	"github.com/bvk/predictbot/gobs"
	"github.com/shopspring/decimal"
)

const WalletUpdatePath = "/predict/wallet/update"

type WalletUpdateRequest struct {
	// USDCBalance replaces the wallet USDC balance when non-nil.
	USDCBalance *decimal.Decimal

	// WildBalance replaces the wallet WILD balance when non-nil.
	WildBalance *decimal.Decimal
}

type WalletUpdateResponse struct {
	Wallet *gobs.Wallet
}
