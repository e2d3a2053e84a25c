// Copyright (c) 2025 BVK Chaitanya

package api

import "github.com/bvk/predictbot/gobs"

const FeeSetPath = "/predict/fee/set"

type FeeSetRequest struct {
	Config *gobs.FeeConfig
}

type FeeSetResponse struct {
}
