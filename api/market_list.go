// Copyright (c) 2025 BVK Chaitanya

package api

import "github.com/bvk/predictbot/gobs"

const MarketListPath = "/predict/market/list"

type MarketListRequest struct {
	// Status limits the listing to markets in the given status ("open",
	// "closed", etc.) when non-empty.
	Status string
}

type MarketListResponse struct {
	Markets []*gobs.Market
}
