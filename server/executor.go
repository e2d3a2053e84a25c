// Copyright (c) 2025 BVK Chaitanya

package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/bvk/predictbot/feesplit"
	"github.com/bvk/predictbot/gobs"
	"github.com/bvk/predictbot/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// walletExecutor settles fee transfers against the demo wallet. Transfers
// debit the wallet's USDC balance in one transaction and confirm
// immediately with a synthetic transaction hash.
type walletExecutor struct {
	store *store.Store
}

type walletPending struct {
	txHash string
}

func (p *walletPending) Wait(ctx context.Context) (string, error) {
	return p.txHash, nil
}

func (x *walletExecutor) Execute(ctx context.Context, transfers []*feesplit.Transfer, description string) (feesplit.Pending, error) {
	var total int64
	for _, t := range transfers {
		total += t.Amount
	}
	amount := decimal.New(total, -6)

	debit := func(w *gobs.Wallet) error {
		if w.USDCBalance.LessThan(amount) {
			return fmt.Errorf("wallet balance %s is below the fee amount %s", w.USDCBalance, amount)
		}
		w.USDCBalance = w.USDCBalance.Sub(amount)
		return nil
	}
	if _, err := x.store.UpdateWallet(ctx, debit); err != nil {
		return nil, fmt.Errorf("could not debit the wallet: %w", err)
	}

	txHash := "0x" + strings.ReplaceAll(uuid.New().String(), "-", "")
	return &walletPending{txHash: txHash}, nil
}
