// Copyright (c) 2025 BVK Chaitanya

package store

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/bvk/predictbot/gobs"
	"github.com/bvk/predictbot/kvutil"
	"github.com/bvkgo/kv"
	"github.com/google/uuid"
)

func marketKey(id string) string {
	return path.Join(MarketsKeyspace, id)
}

// Markets returns all markets in key order.
func (s *Store) Markets(ctx context.Context) ([]*gobs.Market, error) {
	var ms []*gobs.Market
	begin := path.Join(MarketsKeyspace, MinUUID)
	end := path.Join(MarketsKeyspace, MaxUUID)
	collect := func(ctx context.Context, r kv.Reader, key string, m *gobs.Market) error {
		ms = append(ms, m)
		return nil
	}
	if err := kvutil.AscendDB(ctx, s.db, begin, end, collect); err != nil {
		return nil, fmt.Errorf("could not scan markets: %w", err)
	}
	return ms, nil
}

func (s *Store) Market(ctx context.Context, id string) (*gobs.Market, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return kvutil.GetDB[gobs.Market](ctx, s.db, marketKey(id))
}

// CreateMarket saves a new market. A fresh id is assigned when the market
// carries none.
func (s *Store) CreateMarket(ctx context.Context, m *gobs.Market) (*gobs.Market, error) {
	if m.Title == "" {
		return nil, fmt.Errorf("market title cannot be empty: %w", os.ErrInvalid)
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if err := kvutil.SetDB(ctx, s.db, marketKey(m.ID), m); err != nil {
		return nil, fmt.Errorf("could not save market %s: %w", m.ID, err)
	}
	return m, nil
}

func (s *Store) DeleteMarket(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	del := func(ctx context.Context, rw kv.ReadWriter) error {
		key := marketKey(id)
		if _, err := rw.Get(ctx, key); err != nil {
			return fmt.Errorf("could not load market %s: %w", id, err)
		}
		return rw.Delete(ctx, key)
	}
	return kv.WithReadWriter(ctx, s.db, del)
}
