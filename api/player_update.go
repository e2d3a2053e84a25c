// Copyright (c) 2025 BVK Chaitanya

package api

import (
	"github.com/bvk/predictbot/gobs"
	"github.com/shopspring/decimal"
)

const PlayerUpdatePath = "/predict/player/update"

type PlayerUpdateRequest struct {
	UID string

	// Price replaces the player token price when non-nil.
	Price *decimal.Decimal

	// Stats replaces the player statistics when non-nil.
	Stats *gobs.PlayerStats
}

type PlayerUpdateResponse struct {
	Player *gobs.Player
}
