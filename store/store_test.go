// Copyright (c) 2025 BVK Chaitanya

package store

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/bvk/predictbot/gobs"
	"github.com/bvkgo/kv/kvmemdb"
	"github.com/shopspring/decimal"
	"github.com/visvasity/topic"
)

func newTestStore(t *testing.T) *Store {
	ctx := context.Background()
	s := New(kvmemdb.New())
	if err := s.Seed(ctx); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	w, err := s.Wallet(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if w.USDCBalance.String() != "4240.5" {
		t.Fatalf("seeded usdc balance is %s", w.USDCBalance)
	}
	if !w.TotalValue.Equal(w.USDCBalance.Add(w.WildBalance)) {
		t.Fatalf("total value %s is inconsistent", w.TotalValue)
	}

	ms, err := s.Markets(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 3 {
		t.Fatalf("got %d seeded markets, want 3", len(ms))
	}
	ps, err := s.Players(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ps) != 6 {
		t.Fatalf("got %d seeded players, want 6", len(ps))
	}

	settings, err := s.AdminSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !settings.MockDataEnabled || settings.DemoMode {
		t.Fatalf("unexpected seeded settings %+v", settings)
	}

	// Seeding again must not duplicate anything.
	if err := s.Seed(ctx); err != nil {
		t.Fatal(err)
	}
	ms, err = s.Markets(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 3 {
		t.Fatalf("reseed grew markets to %d", len(ms))
	}
}

func TestMarketCRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	m, err := s.CreateMarket(ctx, &gobs.Market{
		Title:    "BTC above 100k by March",
		Category: "crypto",
		Status:   "open",
	})
	if err != nil {
		t.Fatal(err)
	}
	if m.ID == "" {
		t.Fatal("created market has no id")
	}

	got, err := s.Market(ctx, m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != m.Title {
		t.Fatalf("market title is %q", got.Title)
	}

	if err := s.DeleteMarket(ctx, m.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Market(ctx, m.ID); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("wanted ErrNotExist, got %v", err)
	}
	if err := s.DeleteMarket(ctx, m.ID); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("wanted ErrNotExist, got %v", err)
	}

	if _, err := s.CreateMarket(ctx, &gobs.Market{}); !errors.Is(err, os.ErrInvalid) {
		t.Fatalf("wanted ErrInvalid, got %v", err)
	}
}

func TestPlayerUpdate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	p, err := s.CreatePlayer(ctx, &gobs.Player{
		Name:   "Test Player",
		Symbol: "TP",
		Status: "offering",
	})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := s.UpdatePlayer(ctx, p.ID, func(v *gobs.Player) error {
		v.Status = "available"
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != "available" {
		t.Fatalf("status is %q", updated.Status)
	}
	if updated.ID != p.ID {
		t.Fatalf("update changed the id to %q", updated.ID)
	}

	if _, err := s.UpdatePlayer(ctx, MinUUID, func(v *gobs.Player) error { return nil }); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("wanted ErrNotExist, got %v", err)
	}
}

func TestCreateBet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ms, err := s.Markets(ctx)
	if err != nil {
		t.Fatal(err)
	}
	market := ms[0]

	before, err := s.Wallet(ctx)
	if err != nil {
		t.Fatal(err)
	}

	receiver, err := s.WalletUpdates()
	if err != nil {
		t.Fatal(err)
	}
	defer receiver.Close()

	bet, err := s.CreateBet(ctx, &gobs.Bet{
		MarketID:      market.ID,
		OutcomeID:     market.Outcomes[0].ID,
		Amount:        decimal.NewFromInt(100),
		Odds:          market.Outcomes[0].Odds,
		WalletAddress: "0xbettor",
	})
	if err != nil {
		t.Fatal(err)
	}
	if bet.Status != "pending" || bet.PlacedAt.IsZero() {
		t.Fatalf("unexpected bet %+v", bet)
	}

	after, err := s.Wallet(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if want := before.USDCBalance.Sub(decimal.NewFromInt(100)); !after.USDCBalance.Equal(want) {
		t.Fatalf("usdc balance is %s, want %s", after.USDCBalance, want)
	}
	if !after.TotalValue.Equal(after.USDCBalance.Add(after.WildBalance)) {
		t.Fatalf("total value %s is inconsistent", after.TotalValue)
	}

	// One WILD point per dollar of bet amount.
	record, err := s.WalletRecord(ctx, "0xbettor")
	if err != nil {
		t.Fatal(err)
	}
	if record.WildPoints.String() != "100" || record.TotalBetAmount.String() != "100" {
		t.Fatalf("unexpected wallet record %+v", record)
	}

	ch, err := topic.ReceiveCh(receiver)
	if err != nil {
		t.Fatal(err)
	}
	update := <-ch
	if !update.USDCBalance.Equal(after.USDCBalance) {
		t.Fatalf("wallet update balance is %s", update.USDCBalance)
	}

	// Bets against unknown markets must not change any balances.
	if _, err := s.CreateBet(ctx, &gobs.Bet{
		MarketID: MaxUUID,
		Amount:   decimal.NewFromInt(10),
	}); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("wanted ErrNotExist, got %v", err)
	}
	unchanged, err := s.Wallet(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !unchanged.USDCBalance.Equal(after.USDCBalance) {
		t.Fatalf("failed bet changed the balance to %s", unchanged.USDCBalance)
	}
}

func TestCreateTrade(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	before, err := s.Wallet(ctx)
	if err != nil {
		t.Fatal(err)
	}

	buy, err := s.CreateTrade(ctx, &gobs.Trade{
		PlayerSymbol: "BRON",
		Side:         "buy",
		Amount:       decimal.NewFromInt(10),
		Price:        decimal.NewFromInt(5),
		Total:        decimal.NewFromInt(50),
	})
	if err != nil {
		t.Fatal(err)
	}
	if buy.Timestamp.IsZero() {
		t.Fatal("trade has no timestamp")
	}

	mid, err := s.Wallet(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if want := before.USDCBalance.Sub(decimal.NewFromInt(50)); !mid.USDCBalance.Equal(want) {
		t.Fatalf("usdc balance after buy is %s, want %s", mid.USDCBalance, want)
	}

	if _, err := s.CreateTrade(ctx, &gobs.Trade{
		PlayerSymbol: "BRON",
		Side:         "sell",
		Amount:       decimal.NewFromInt(10),
		Price:        decimal.NewFromInt(5),
		Total:        decimal.NewFromInt(50),
	}); err != nil {
		t.Fatal(err)
	}

	after, err := s.Wallet(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !after.USDCBalance.Equal(before.USDCBalance) {
		t.Fatalf("usdc balance after round trip is %s, want %s", after.USDCBalance, before.USDCBalance)
	}

	if _, err := s.CreateTrade(ctx, &gobs.Trade{Side: "hold", Total: decimal.NewFromInt(1)}); !errors.Is(err, os.ErrInvalid) {
		t.Fatalf("wanted ErrInvalid, got %v", err)
	}
}

func TestFeeTransfers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	transfers := []*gobs.FeeTransfer{
		{Address: "0xaaa", Label: "ops", Amount: 1500000},
		{Address: "0xbbb", Label: "treasury", Amount: 1000000, TxHash: "0xdead"},
	}
	if err := s.SaveFeeTransfers(ctx, transfers); err != nil {
		t.Fatal(err)
	}

	got, err := s.FeeTransfers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d fee transfers, want 2", len(got))
	}
	var sum int64
	for _, tr := range got {
		if tr.ID == "" || tr.Timestamp.IsZero() {
			t.Fatalf("unexpected transfer %+v", tr)
		}
		sum += tr.Amount
	}
	if sum != 2500000 {
		t.Fatalf("transfer amounts sum to %d", sum)
	}
}
