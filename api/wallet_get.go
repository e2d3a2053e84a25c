// Copyright (c) 2025 BVK Chaitanya

package api

import "github.com/bvk/predictbot/gobs"

const WalletGetPath = "/predict/wallet/get"

type WalletGetRequest struct {
}

type WalletGetResponse struct {
	Wallet *gobs.Wallet
}
