// Copyright (c) 2025 BVK Chaitanya

package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/bvk/predictbot/gobs"
	"github.com/bvk/predictbot/kvutil"
	"github.com/bvkgo/kv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// Seed initializes an empty database with the demo wallet, default admin
// settings and a handful of sample markets and players. Does nothing when
// the database is already initialized.
func (s *Store) Seed(ctx context.Context) error {
	if _, err := s.Wallet(ctx); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	now := time.Now()
	wallet := &gobs.Wallet{
		Address:     "0x1234...5678",
		USDCBalance: d("4240.50"),
		WildBalance: d("1250"),
		TotalValue:  d("5490.50"),
	}
	settings := &gobs.AdminSettings{
		DemoMode:        false,
		MockDataEnabled: true,
		LastUpdated:     now,
	}

	seed := func(ctx context.Context, rw kv.ReadWriter) error {
		if err := kvutil.Set(ctx, rw, WalletKey, wallet); err != nil {
			return err
		}
		if err := kvutil.Set(ctx, rw, AdminSettingsKey, settings); err != nil {
			return err
		}
		for _, m := range sampleMarkets(now) {
			m.ID = uuid.New().String()
			if err := kvutil.Set(ctx, rw, marketKey(m.ID), m); err != nil {
				return err
			}
		}
		for _, p := range samplePlayers() {
			p.ID = uuid.New().String()
			if err := kvutil.Set(ctx, rw, playerKey(p.ID), p); err != nil {
				return err
			}
		}
		return nil
	}
	if err := kv.WithReadWriter(ctx, s.db, seed); err != nil {
		return fmt.Errorf("could not seed the database: %w", err)
	}
	return nil
}

func sampleMarkets(now time.Time) []*gobs.Market {
	return []*gobs.Market{
		{
			Title:       "Lakers vs Celtics",
			Description: "NBA Finals Game 7",
			Category:    "sports",
			Sport:       "NBA",
			League:      "Basketball",
			StartTime:   now.Add(4 * time.Hour),
			Status:      "open",
			Outcomes: []*gobs.Outcome{
				{ID: "lakers", Label: "Lakers", Odds: d("2.15"), Probability: d("0.465")},
				{ID: "draw", Label: "OT", Odds: d("21.0"), Probability: d("0.048")},
				{ID: "celtics", Label: "Celtics", Odds: d("1.78"), Probability: d("0.562")},
			},
			Volume:    d("847500"),
			Liquidity: d("325000"),
		},
		{
			Title:       "Chiefs vs 49ers",
			Description: "Super Bowl LXII",
			Category:    "sports",
			Sport:       "NFL",
			League:      "Football",
			StartTime:   now.Add(2 * 24 * time.Hour),
			Status:      "open",
			Outcomes: []*gobs.Outcome{
				{ID: "chiefs", Label: "Chiefs", Odds: d("1.95"), Probability: d("0.513")},
				{ID: "tie", Label: "Draw", Odds: d("31.0"), Probability: d("0.032")},
				{ID: "49ers", Label: "49ers", Odds: d("1.91"), Probability: d("0.524")},
			},
			Volume:    d("1250000"),
			Liquidity: d("489000"),
		},
		{
			Title:       "Real Madrid vs Man City",
			Description: "Champions League Final",
			Category:    "sports",
			Sport:       "Soccer",
			League:      "UCL",
			StartTime:   now.Add(5 * 24 * time.Hour),
			Status:      "open",
			Outcomes: []*gobs.Outcome{
				{ID: "rm", Label: "Madrid", Odds: d("2.40"), Probability: d("0.417")},
				{ID: "draw", Label: "Draw", Odds: d("3.25"), Probability: d("0.308")},
				{ID: "mc", Label: "Man City", Odds: d("2.65"), Probability: d("0.377")},
			},
			Volume:    d("2150000"),
			Liquidity: d("875000"),
		},
	}
}

func samplePlayers() []*gobs.Player {
	return []*gobs.Player{
		{
			Name:              "Bronny Jr.",
			Symbol:            "BRON",
			Price:             d("1.00"),
			Team:              "USC Trojans",
			Sport:             "Basketball",
			AvatarInitials:    "BJ",
			FundingTarget:     d("100000"),
			FundingCurrent:    d("82000"),
			FundingPercentage: d("82"),
			Generation:        1,
			Status:            "offering",
		},
		{
			Name:              "Victor Wembanyama",
			Symbol:            "WEMBY",
			Price:             d("1.00"),
			Team:              "San Antonio Spurs",
			Sport:             "Basketball",
			AvatarInitials:    "VW",
			FundingTarget:     d("150000"),
			FundingCurrent:    d("45000"),
			FundingPercentage: d("30"),
			Generation:        1,
			Status:            "offering",
		},
		{
			Name:              "Caitlin Clark",
			Symbol:            "CCLARK",
			Price:             d("2.35"),
			Team:              "Iowa Hawkeyes",
			Sport:             "Basketball",
			AvatarInitials:    "CC",
			FundingTarget:     d("80000"),
			FundingCurrent:    d("80000"),
			FundingPercentage: d("100"),
			Generation:        1,
			Status:            "available",
			Stats: &gobs.PlayerStats{
				Holders:   487,
				MarketCap: d("125000"),
				Change24H: d("12.5"),
			},
		},
		{
			Name:              "Kylian Mbappé",
			Symbol:            "KM",
			Price:             d("4.50"),
			Team:              "Real Madrid",
			Sport:             "Soccer",
			AvatarInitials:    "KM",
			FundingTarget:     d("200000"),
			FundingCurrent:    d("200000"),
			FundingPercentage: d("100"),
			Generation:        1,
			Status:            "available",
			Stats: &gobs.PlayerStats{
				Holders:   1250,
				MarketCap: d("450000"),
				Change24H: d("-3.2"),
			},
		},
		{
			Name:              "Paolo Banchero",
			Symbol:            "PB",
			Price:             d("1.18"),
			Team:              "Orlando Magic",
			Sport:             "Basketball",
			AvatarInitials:    "PB",
			FundingTarget:     d("75000"),
			FundingCurrent:    d("75000"),
			FundingPercentage: d("100"),
			Generation:        2,
			Status:            "available",
			Stats: &gobs.PlayerStats{
				Holders:   312,
				MarketCap: d("89000"),
				Change24H: d("5.8"),
			},
		},
		{
			Name:              "Shohei Ohtani",
			Symbol:            "SHOHEI",
			Price:             d("3.60"),
			Team:              "Los Angeles Dodgers",
			Sport:             "Baseball",
			AvatarInitials:    "SO",
			FundingTarget:     d("180000"),
			FundingCurrent:    d("180000"),
			FundingPercentage: d("100"),
			Generation:        1,
			Status:            "available",
			Stats: &gobs.PlayerStats{
				Holders:   892,
				MarketCap: d("320000"),
				Change24H: d("8.1"),
			},
		},
	}
}
