// Copyright (c) 2025 BVK Chaitanya

package api

import "github.com/bvk/predictbot/gobs"

const FeeListPath = "/predict/fee/list"

type FeeListRequest struct {
}

type FeeListResponse struct {
	Transfers []*gobs.FeeTransfer
}
