// Copyright (c) 2025 BVK Chaitanya

package api

const PlayerDeletePath = "/predict/player/delete"

type PlayerDeleteRequest struct {
	UID string
}

type PlayerDeleteResponse struct {
}
