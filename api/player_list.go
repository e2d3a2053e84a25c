// Copyright (c) 2025 BVK Chaitanya

package api

import "github.com/bvk/predictbot/gobs"

const PlayerListPath = "/predict/player/list"

type PlayerListRequest struct {
}

type PlayerListResponse struct {
	Players []*gobs.Player
}
