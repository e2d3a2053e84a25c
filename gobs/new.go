// Copyright (c) 2025 BVK Chaitanya

package gobs

import (
	"fmt"
)

func NewByTypename(typename string) (any, error) {
	var v any
	switch typename {
	case "Market":
		v = new(Market)
	case "Player":
		v = new(Player)
	case "Bet":
		v = new(Bet)
	case "Trade":
		v = new(Trade)
	case "Wallet":
		v = new(Wallet)
	case "WalletRecord":
		v = new(WalletRecord)
	case "AdminSettings":
		v = new(AdminSettings)
	case "FeeConfig":
		v = new(FeeConfig)
	case "FeeTransfer":
		v = new(FeeTransfer)
	case "TelegramState":
		v = new(TelegramState)
	case "KeyValue":
		v = new(KeyValue)
	default:
		return nil, fmt.Errorf("unsupported type name %q", typename)
	}
	return v, nil
}
