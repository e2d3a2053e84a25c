// Copyright (c) 2025 BVK Chaitanya

package api

import "github.com/bvk/predictbot/gobs"

const MarketCreatePath = "/predict/market/create"

type MarketCreateRequest struct {
	Market *gobs.Market
}

type MarketCreateResponse struct {
	UID string
}
