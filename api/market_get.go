// Copyright (c) 2025 BVK Chaitanya

package api

import "github.com/bvk/predictbot/gobs"

const MarketGetPath = "/predict/market/get"

type MarketGetRequest struct {
	UID string
}

type MarketGetResponse struct {
	Market *gobs.Market
}
