// Copyright (c) 2025 BVK Chaitanya

package api

import "time"

const StatusPath = "/predict/status"

type StatusRequest struct {
}

type StatusResponse struct {
	ServerTime time.Time

	FeedConnected bool

	FeesEnabled bool

	NumMarkets int
	NumPlayers int
	NumBets    int
	NumTrades  int
}
