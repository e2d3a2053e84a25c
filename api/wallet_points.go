// Copyright (c) 2025 BVK Chaitanya

package api

import "github.com/bvk/predictbot/gobs"

const WalletPointsPath = "/predict/wallet/points"

type WalletPointsRequest struct {
	// Address limits the listing to one wallet when non-empty.
	Address string
}

type WalletPointsResponse struct {
	Records []*gobs.WalletRecord
}
