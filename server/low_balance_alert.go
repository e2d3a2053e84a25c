// Copyright (c) 2025 BVK Chaitanya

package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/bvk/predictbot/gobs"
	"github.com/visvasity/topic"
)

// goWatchWallet watches wallet updates and raises a telegram alert when the
// USDC balance drops below the configured limit.
func (s *Server) goWatchWallet(ctx context.Context) {
	receiver, err := s.store.WalletUpdates()
	if err != nil {
		slog.Error("could not subscribe to wallet updates", "err", err)
		return
	}
	defer receiver.Close()

	updatesCh, err := topic.ReceiveCh(receiver)
	if err != nil {
		slog.Error("could not open wallet updates channel", "err", err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return

		case wallet, ok := <-updatesCh:
			if !ok {
				return
			}
			s.alertOnLowBalance(ctx, wallet)
		}
	}
}

func (s *Server) alertOnLowBalance(ctx context.Context, wallet *gobs.Wallet) {
	if wallet.USDCBalance.GreaterThan(s.opts.LowBalanceLimit) {
		return
	}

	now := time.Now()
	const key = "alerts/low-balance-alert/usdc"

	s.mu.Lock()
	if deadline, ok := s.alertFreezeDeadlineMap[key]; ok {
		if now.Before(deadline) {
			s.mu.Unlock()
			return
		}
		delete(s.alertFreezeDeadlineMap, key)
	}
	s.alertFreezeDeadlineMap[key] = now.Add(s.opts.AlertFreezeDuration)
	s.mu.Unlock()

	s.SendMessage(ctx, now,
		"Available USDC balance %s in wallet %s is below the limit %s.",
		wallet.USDCBalance.StringFixed(2), wallet.Address, s.opts.LowBalanceLimit.StringFixed(2))
}
