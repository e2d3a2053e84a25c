// Copyright (c) 2025 BVK Chaitanya

package api

import "github.com/bvk/predictbot/gobs"

const BetListPath = "/predict/bet/list"

type BetListRequest struct {
}

type BetListResponse struct {
	Bets []*gobs.Bet
}
