// Copyright (c) 2025 BVK Chaitanya

package store

import (
	"context"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/bvk/predictbot/gobs"
	"github.com/bvk/predictbot/kvutil"
	"github.com/bvkgo/kv"
	"github.com/google/uuid"
)

func tradeKey(id string) string {
	return path.Join(TradesKeyspace, id)
}

// Trades returns all trades in key order.
func (s *Store) Trades(ctx context.Context) ([]*gobs.Trade, error) {
	var ts []*gobs.Trade
	begin := path.Join(TradesKeyspace, MinUUID)
	end := path.Join(TradesKeyspace, MaxUUID)
	collect := func(ctx context.Context, r kv.Reader, key string, v *gobs.Trade) error {
		ts = append(ts, v)
		return nil
	}
	if err := kvutil.AscendDB(ctx, s.db, begin, end, collect); err != nil {
		return nil, fmt.Errorf("could not scan trades: %w", err)
	}
	return ts, nil
}

func (s *Store) Trade(ctx context.Context, id string) (*gobs.Trade, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return kvutil.GetDB[gobs.Trade](ctx, s.db, tradeKey(id))
}

// CreateTrade saves a new trade and adjusts the wallet: buys debit the
// trade total from the USDC balance and sells credit it back. Both commit
// in one transaction.
func (s *Store) CreateTrade(ctx context.Context, t *gobs.Trade) (*gobs.Trade, error) {
	if t.Side != "buy" && t.Side != "sell" {
		return nil, fmt.Errorf("trade side %q must be buy or sell: %w", t.Side, os.ErrInvalid)
	}
	if !t.Total.IsPositive() {
		return nil, fmt.Errorf("trade total must be positive: %w", os.ErrInvalid)
	}

	trade := new(gobs.Trade)
	*trade = *t
	trade.ID = uuid.New().String()
	trade.Timestamp = time.Now()

	var w *gobs.Wallet
	apply := func(ctx context.Context, rw kv.ReadWriter) error {
		if err := kvutil.Set(ctx, rw, tradeKey(trade.ID), trade); err != nil {
			return err
		}

		v, err := getWallet(ctx, rw)
		if err != nil {
			return err
		}
		if trade.Side == "buy" {
			v.USDCBalance = v.USDCBalance.Sub(trade.Total)
		} else {
			v.USDCBalance = v.USDCBalance.Add(trade.Total)
		}
		v.TotalValue = v.USDCBalance.Add(v.WildBalance)
		if err := kvutil.Set(ctx, rw, WalletKey, v); err != nil {
			return err
		}
		w = v
		return nil
	}
	if err := kv.WithReadWriter(ctx, s.db, apply); err != nil {
		return nil, err
	}
	s.walletTopic.Send(w)
	return trade, nil
}
