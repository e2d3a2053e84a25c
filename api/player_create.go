// Copyright (c) 2025 BVK Chaitanya

package api

import "github.com/bvk/predictbot/gobs"

const PlayerCreatePath = "/predict/player/create"

type PlayerCreateRequest struct {
	Player *gobs.Player
}

type PlayerCreateResponse struct {
	UID string
}
