// Copyright (c) 2025 BVK Chaitanya

package store

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/bvk/predictbot/gobs"
	"github.com/bvk/predictbot/kvutil"
	"github.com/bvkgo/kv"
	"github.com/google/uuid"
)

func feeTransferKey(id string) string {
	return path.Join(FeeTransfersKeyspace, id)
}

// FeeConfig returns the stored integrator fee configuration. Returns
// os.ErrNotExist when no configuration was saved.
func (s *Store) FeeConfig(ctx context.Context) (*gobs.FeeConfig, error) {
	return kvutil.GetDB[gobs.FeeConfig](ctx, s.db, FeeConfigKey)
}

// SetFeeConfig replaces the stored integrator fee configuration.
func (s *Store) SetFeeConfig(ctx context.Context, config *gobs.FeeConfig) error {
	save := func(ctx context.Context, rw kv.ReadWriter) error {
		return kvutil.Set(ctx, rw, FeeConfigKey, config)
	}
	if err := kv.WithReadWriter(ctx, s.db, save); err != nil {
		return fmt.Errorf("could not save fee config: %w", err)
	}
	return nil
}

// SaveFeeTransfers records the executed legs of one fee collection batch.
// All legs commit in one transaction.
func (s *Store) SaveFeeTransfers(ctx context.Context, transfers []*gobs.FeeTransfer) error {
	now := time.Now()
	save := func(ctx context.Context, rw kv.ReadWriter) error {
		for _, t := range transfers {
			if t.ID == "" {
				t.ID = uuid.New().String()
			}
			if t.Timestamp.IsZero() {
				t.Timestamp = now
			}
			if err := kvutil.Set(ctx, rw, feeTransferKey(t.ID), t); err != nil {
				return err
			}
		}
		return nil
	}
	if err := kv.WithReadWriter(ctx, s.db, save); err != nil {
		return fmt.Errorf("could not save fee transfers: %w", err)
	}
	return nil
}

// FeeTransfers returns all recorded fee transfer legs.
func (s *Store) FeeTransfers(ctx context.Context) ([]*gobs.FeeTransfer, error) {
	var ts []*gobs.FeeTransfer
	begin := path.Join(FeeTransfersKeyspace, MinUUID)
	end := path.Join(FeeTransfersKeyspace, MaxUUID)
	collect := func(ctx context.Context, r kv.Reader, key string, v *gobs.FeeTransfer) error {
		ts = append(ts, v)
		return nil
	}
	if err := kvutil.AscendDB(ctx, s.db, begin, end, collect); err != nil {
		return nil, fmt.Errorf("could not scan fee transfers: %w", err)
	}
	return ts, nil
}
