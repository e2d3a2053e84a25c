// Copyright (c) 2025 BVK Chaitanya

package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/bvk/predictbot/gobs"
	"github.com/bvk/predictbot/kvutil"
	"github.com/bvkgo/kv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func betKey(id string) string {
	return path.Join(BetsKeyspace, id)
}

func walletRecordKey(address string) string {
	return path.Join(WalletRecordsKeyspace, address)
}

// Bets returns all bets in key order.
func (s *Store) Bets(ctx context.Context) ([]*gobs.Bet, error) {
	var bs []*gobs.Bet
	begin := path.Join(BetsKeyspace, MinUUID)
	end := path.Join(BetsKeyspace, MaxUUID)
	collect := func(ctx context.Context, r kv.Reader, key string, b *gobs.Bet) error {
		bs = append(bs, b)
		return nil
	}
	if err := kvutil.AscendDB(ctx, s.db, begin, end, collect); err != nil {
		return nil, fmt.Errorf("could not scan bets: %w", err)
	}
	return bs, nil
}

func (s *Store) Bet(ctx context.Context, id string) (*gobs.Bet, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return kvutil.GetDB[gobs.Bet](ctx, s.db, betKey(id))
}

// CreateBet saves a new bet in pending status, debits the bet amount from
// the wallet and accrues WILD points (one point per dollar of bet amount)
// on the bettor's wallet record. All changes commit in one transaction.
func (s *Store) CreateBet(ctx context.Context, b *gobs.Bet) (*gobs.Bet, error) {
	if !b.Amount.IsPositive() {
		return nil, fmt.Errorf("bet amount must be positive: %w", os.ErrInvalid)
	}
	if err := checkID(b.MarketID); err != nil {
		return nil, fmt.Errorf("bet needs a valid market id: %w", os.ErrInvalid)
	}

	bet := new(gobs.Bet)
	*bet = *b
	bet.ID = uuid.New().String()
	bet.Status = "pending"
	bet.PlacedAt = time.Now()

	var w *gobs.Wallet
	apply := func(ctx context.Context, rw kv.ReadWriter) error {
		if _, err := rw.Get(ctx, marketKey(bet.MarketID)); err != nil {
			return fmt.Errorf("could not load market %s: %w", bet.MarketID, err)
		}
		if err := kvutil.Set(ctx, rw, betKey(bet.ID), bet); err != nil {
			return err
		}

		v, err := getWallet(ctx, rw)
		if err != nil {
			return err
		}
		v.USDCBalance = v.USDCBalance.Sub(bet.Amount)
		v.TotalValue = v.USDCBalance.Add(v.WildBalance)
		if err := kvutil.Set(ctx, rw, WalletKey, v); err != nil {
			return err
		}
		w = v

		if bet.WalletAddress != "" {
			if err := accrueWildPoints(ctx, rw, bet.WalletAddress, bet.Amount); err != nil {
				return err
			}
		}
		return nil
	}
	if err := kv.WithReadWriter(ctx, s.db, apply); err != nil {
		return nil, err
	}
	s.walletTopic.Send(w)
	return bet, nil
}

// accrueWildPoints adds one WILD point per dollar of bet amount to the
// record for the given wallet address, creating the record on first use.
func accrueWildPoints(ctx context.Context, rw kv.ReadWriter, address string, amount decimal.Decimal) error {
	key := walletRecordKey(address)
	now := time.Now()

	record, err := kvutil.Get[gobs.WalletRecord](ctx, rw, key)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("could not load wallet record for %s: %w", address, err)
		}
		record = &gobs.WalletRecord{
			Address:   address,
			CreatedAt: now,
		}
	}
	record.WildPoints = record.WildPoints.Add(amount)
	record.TotalBetAmount = record.TotalBetAmount.Add(amount)
	record.UpdatedAt = now
	return kvutil.Set(ctx, rw, key, record)
}

// WalletRecord returns the WILD points record for one wallet address.
func (s *Store) WalletRecord(ctx context.Context, address string) (*gobs.WalletRecord, error) {
	if address == "" {
		return nil, os.ErrInvalid
	}
	return kvutil.GetDB[gobs.WalletRecord](ctx, s.db, walletRecordKey(address))
}

// WalletRecords returns all WILD points records.
func (s *Store) WalletRecords(ctx context.Context) ([]*gobs.WalletRecord, error) {
	var rs []*gobs.WalletRecord
	begin, end := kvutil.PathRange(WalletRecordsKeyspace)
	collect := func(ctx context.Context, r kv.Reader, key string, v *gobs.WalletRecord) error {
		rs = append(rs, v)
		return nil
	}
	if err := kvutil.AscendDB(ctx, s.db, begin, end, collect); err != nil {
		return nil, fmt.Errorf("could not scan wallet records: %w", err)
	}
	return rs, nil
}
