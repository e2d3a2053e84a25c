// Copyright (c) 2025 BVK Chaitanya

// Package store implements persistence for the trading terminal data over
// the kv interfaces. Markets, players, bets, trades, wallet balances and
// admin settings are gob-encoded under fixed keyspaces, so the same code
// runs over an in-memory database in tests and a badger-backed database in
// the daemon.
package store

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bvk/predictbot/gobs"
	"github.com/bvk/predictbot/kvutil"
	"github.com/bvkgo/kv"
	"github.com/visvasity/topic"
)

const (
	MarketsKeyspace       = "/markets/"
	PlayersKeyspace       = "/players/"
	BetsKeyspace          = "/bets/"
	TradesKeyspace        = "/trades/"
	WalletRecordsKeyspace = "/wallet-records/"
	FeeTransfersKeyspace  = "/fee-transfers/"

	WalletKey        = "/wallet"
	AdminSettingsKey = "/admin-settings"
	FeeConfigKey     = "/fee-config"
)

const (
	MinUUID = "00000000-0000-0000-0000-000000000000"
	MaxUUID = "ffffffff-ffff-ffff-ffff-ffffffffffff"
)

type Store struct {
	db kv.Database

	walletTopic *topic.Topic[*gobs.Wallet]
}

func New(db kv.Database) *Store {
	return &Store{
		db:          db,
		walletTopic: topic.New[*gobs.Wallet](),
	}
}

// Database returns the underlying kv database.
func (s *Store) Database() kv.Database {
	return s.db
}

// WalletUpdates returns a receiver for wallet balance changes. Every bet,
// trade or manual adjustment that changes the balances publishes the new
// wallet value.
func (s *Store) WalletUpdates() (*topic.Receiver[*gobs.Wallet], error) {
	return topic.Subscribe(s.walletTopic, 1, true /* includeRecent */)
}

// Wallet returns the current wallet balances.
func (s *Store) Wallet(ctx context.Context) (*gobs.Wallet, error) {
	return kvutil.GetDB[gobs.Wallet](ctx, s.db, WalletKey)
}

// UpdateWallet applies the update function to the wallet in a read-write
// transaction. The total value is recomputed after the update, so callers
// only adjust the individual balances.
func (s *Store) UpdateWallet(ctx context.Context, update func(*gobs.Wallet) error) (*gobs.Wallet, error) {
	var w *gobs.Wallet
	apply := func(ctx context.Context, rw kv.ReadWriter) error {
		v, err := getWallet(ctx, rw)
		if err != nil {
			return err
		}
		if err := update(v); err != nil {
			return err
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
	return w, nil
}

func getWallet(ctx context.Context, r kv.Reader) (*gobs.Wallet, error) {
	w, err := kvutil.Get[gobs.Wallet](ctx, r, WalletKey)
	if err != nil {
		return nil, fmt.Errorf("could not load wallet: %w", err)
	}
	return w, nil
}

// AdminSettings returns the terminal admin settings.
func (s *Store) AdminSettings(ctx context.Context) (*gobs.AdminSettings, error) {
	return kvutil.GetDB[gobs.AdminSettings](ctx, s.db, AdminSettingsKey)
}

// UpdateAdminSettings applies the update function to the admin settings
// and stamps the modification time.
func (s *Store) UpdateAdminSettings(ctx context.Context, update func(*gobs.AdminSettings) error) (*gobs.AdminSettings, error) {
	var v *gobs.AdminSettings
	apply := func(ctx context.Context, rw kv.ReadWriter) error {
		settings, err := kvutil.Get[gobs.AdminSettings](ctx, rw, AdminSettingsKey)
		if err != nil {
			return fmt.Errorf("could not load admin settings: %w", err)
		}
		if err := update(settings); err != nil {
			return err
		}
		settings.LastUpdated = time.Now()
		if err := kvutil.Set(ctx, rw, AdminSettingsKey, settings); err != nil {
			return err
		}
		v = settings
		return nil
	}
	if err := kv.WithReadWriter(ctx, s.db, apply); err != nil {
		return nil, err
	}
	return v, nil
}

// checkID returns an error unless the id looks like one of our uuid keys.
func checkID(id string) error {
	if len(id) != len(MinUUID) {
		return fmt.Errorf("id %q is not a valid identifier: %w", id, os.ErrInvalid)
	}
	return nil
}
