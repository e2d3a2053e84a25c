// Copyright (c) 2025 BVK Chaitanya

package api

const MarketDeletePath = "/predict/market/delete"

type MarketDeleteRequest struct {
	UID string
}

type MarketDeleteResponse struct {
}
