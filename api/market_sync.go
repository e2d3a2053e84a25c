// Copyright (c) 2025 BVK Chaitanya

package api

const MarketSyncPath = "/predict/market/sync"

type MarketSyncRequest struct {
	// TagIDs limits the sync to the given sports tags. All sports tags
	// are synced when empty.
	TagIDs []string
}

type MarketSyncResponse struct {
	NumEvents  int
	NumMarkets int

	// Subscribed holds the clob token ids newly registered with the live
	// price feed.
	Subscribed []string
}
