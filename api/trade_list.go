// Copyright (c) 2025 BVK Chaitanya

package api

import "github.com/bvk/predictbot/gobs"

const TradeListPath = "/predict/trade/list"

type TradeListRequest struct {
}

type TradeListResponse struct {
	Trades []*gobs.Trade
}
