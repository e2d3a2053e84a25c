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

func playerKey(id string) string {
	return path.Join(PlayersKeyspace, id)
}

// Players returns all players in key order.
func (s *Store) Players(ctx context.Context) ([]*gobs.Player, error) {
	var ps []*gobs.Player
	begin := path.Join(PlayersKeyspace, MinUUID)
	end := path.Join(PlayersKeyspace, MaxUUID)
	collect := func(ctx context.Context, r kv.Reader, key string, p *gobs.Player) error {
		ps = append(ps, p)
		return nil
	}
	if err := kvutil.AscendDB(ctx, s.db, begin, end, collect); err != nil {
		return nil, fmt.Errorf("could not scan players: %w", err)
	}
	return ps, nil
}

func (s *Store) Player(ctx context.Context, id string) (*gobs.Player, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return kvutil.GetDB[gobs.Player](ctx, s.db, playerKey(id))
}

func (s *Store) CreatePlayer(ctx context.Context, p *gobs.Player) (*gobs.Player, error) {
	if p.Name == "" || p.Symbol == "" {
		return nil, fmt.Errorf("player name and symbol cannot be empty: %w", os.ErrInvalid)
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if err := kvutil.SetDB(ctx, s.db, playerKey(p.ID), p); err != nil {
		return nil, fmt.Errorf("could not save player %s: %w", p.ID, err)
	}
	return p, nil
}

// UpdatePlayer applies the update function to the player in a read-write
// transaction and returns the updated value.
func (s *Store) UpdatePlayer(ctx context.Context, id string, update func(*gobs.Player) error) (*gobs.Player, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	var v *gobs.Player
	apply := func(ctx context.Context, rw kv.ReadWriter) error {
		key := playerKey(id)
		p, err := kvutil.Get[gobs.Player](ctx, rw, key)
		if err != nil {
			return fmt.Errorf("could not load player %s: %w", id, err)
		}
		if err := update(p); err != nil {
			return err
		}
		p.ID = id
		if err := kvutil.Set(ctx, rw, key, p); err != nil {
			return err
		}
		v = p
		return nil
	}
	if err := kv.WithReadWriter(ctx, s.db, apply); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Store) DeletePlayer(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	del := func(ctx context.Context, rw kv.ReadWriter) error {
		key := playerKey(id)
		if _, err := rw.Get(ctx, key); err != nil {
			return fmt.Errorf("could not load player %s: %w", id, err)
		}
		return rw.Delete(ctx, key)
	}
	return kv.WithReadWriter(ctx, s.db, del)
}
