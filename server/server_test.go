// Copyright (c) 2025 BVK Chaitanya

package server

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"testing"

	"github.com/bvk/predictbot/api"
	"github.com/bvk/predictbot/gobs"
	"github.com/bvkgo/kv/kvmemdb"
	"github.com/shopspring/decimal"
)

func testSigningKey(t *testing.T) *SigningKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	der, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		t.Fatal(err)
	}
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der})
	return &SigningKey{KeyName: "test-key", KeyPEM: string(keyPEM)}
}

func newTestServer(ctx context.Context, t *testing.T) *Server {
	t.Helper()
	db := kvmemdb.New()
	secrets := &Secrets{Signing: testSigningKey(t)}
	s, err := New(secrets, db, &Options{NoFeed: true})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Start(ctx); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func openMarket(ctx context.Context, t *testing.T, s *Server) *gobs.Market {
	t.Helper()
	resp, err := s.doMarketList(ctx, &api.MarketListRequest{Status: "open"})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Markets) == 0 {
		t.Fatalf("seeded database has no open markets")
	}
	return resp.Markets[0]
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestStatus(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(ctx, t)

	resp, err := s.doStatus(ctx, &api.StatusRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if resp.NumMarkets != 3 {
		t.Errorf("want 3 seeded markets, got %d", resp.NumMarkets)
	}
	if resp.NumPlayers != 6 {
		t.Errorf("want 6 seeded players, got %d", resp.NumPlayers)
	}
	if resp.FeedConnected {
		t.Errorf("feed cannot be connected when disabled")
	}
	if resp.FeesEnabled {
		t.Errorf("fees cannot be enabled without a config")
	}
}

func TestBetPlace(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(ctx, t)
	market := openMarket(ctx, t, s)

	before, err := s.store.Wallet(ctx)
	if err != nil {
		t.Fatal(err)
	}

	req := &api.BetPlaceRequest{
		MarketID:      market.ID,
		Outcome:       market.Outcomes[0].Label,
		Amount:        d("50"),
		WalletAddress: "0xbettor",
	}
	resp, err := s.doBetPlace(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Status != "pending" {
		t.Errorf("want pending bet, got %q", resp.Status)
	}
	if resp.FeeAmount != 0 {
		t.Errorf("want no fee without a fee config, got %d", resp.FeeAmount)
	}
	want := before.USDCBalance.Sub(d("50"))
	if !resp.Balance.Equal(want) {
		t.Errorf("want balance %s, got %s", want, resp.Balance)
	}

	points, err := s.doWalletPoints(ctx, &api.WalletPointsRequest{Address: "0xbettor"})
	if err != nil {
		t.Fatal(err)
	}
	if len(points.Records) != 1 || !points.Records[0].WildPoints.Equal(d("50")) {
		t.Errorf("want 50 wild points, got %+v", points.Records)
	}
}

func TestBetPlaceCollectsFees(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(ctx, t)
	market := openMarket(ctx, t, s)

	config := &gobs.FeeConfig{
		FeeBps:  250,
		Enabled: true,
		Wallets: []*gobs.FeeWallet{
			{Address: "0xaaa", Percentage: d("60"), Label: "platform"},
			{Address: "0xbbb", Percentage: d("40"), Label: "partner"},
		},
	}
	if _, err := s.doFeeSet(ctx, &api.FeeSetRequest{Config: config}); err != nil {
		t.Fatal(err)
	}

	before, err := s.store.Wallet(ctx)
	if err != nil {
		t.Fatal(err)
	}

	req := &api.BetPlaceRequest{
		MarketID: market.ID,
		Outcome:  market.Outcomes[0].Label,
		Amount:   d("100"),
	}
	resp, err := s.doBetPlace(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	// 2.5% of $100 at 6 decimal places.
	if resp.FeeAmount != 2500000 {
		t.Errorf("want fee 2500000, got %d", resp.FeeAmount)
	}
	if resp.FeeTxHash == "" {
		t.Errorf("want a fee transaction hash")
	}
	// Bet amount plus the collected fee leave the wallet.
	want := before.USDCBalance.Sub(d("102.50"))
	if !resp.Balance.Equal(want) {
		t.Errorf("want balance %s, got %s", want, resp.Balance)
	}

	fees, err := s.doFeeList(ctx, &api.FeeListRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if len(fees.Transfers) != 2 {
		t.Fatalf("want 2 fee transfer legs, got %d", len(fees.Transfers))
	}
	var total int64
	for _, ft := range fees.Transfers {
		total += ft.Amount
		if ft.BetID != resp.UID {
			t.Errorf("fee transfer %s is not linked to bet %s", ft.ID, resp.UID)
		}
	}
	if total != 2500000 {
		t.Errorf("want fee legs to sum to 2500000, got %d", total)
	}
}

func TestFeeEstimate(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(ctx, t)

	resp, err := s.doFeeEstimate(ctx, &api.FeeEstimateRequest{OrderValue: d("100")})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Enabled || resp.FeeAmount != 0 {
		t.Errorf("want a zero estimate without a fee config, got %+v", resp)
	}

	config := &gobs.FeeConfig{
		FeeBps:  250,
		Enabled: true,
		Wallets: []*gobs.FeeWallet{
			{Address: "0xaaa", Percentage: d("33.33")},
			{Address: "0xbbb", Percentage: d("33.33")},
			{Address: "0xccc", Percentage: d("33.34")},
		},
	}
	if _, err := s.doFeeSet(ctx, &api.FeeSetRequest{Config: config}); err != nil {
		t.Fatal(err)
	}

	resp, err = s.doFeeEstimate(ctx, &api.FeeEstimateRequest{OrderValue: d("100")})
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Enabled || resp.FeeBps != 250 {
		t.Errorf("want an enabled 250bps estimate, got %+v", resp)
	}
	if resp.FeeAmount != 2500000 {
		t.Errorf("want fee 2500000, got %d", resp.FeeAmount)
	}
	var total int64
	for _, tr := range resp.Transfers {
		total += tr.Amount
	}
	if total != resp.FeeAmount {
		t.Errorf("want transfers to sum to %d, got %d", resp.FeeAmount, total)
	}
}

func TestTradePlace(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(ctx, t)

	players, err := s.doPlayerList(ctx, &api.PlayerListRequest{})
	if err != nil {
		t.Fatal(err)
	}
	var available *gobs.Player
	for _, p := range players.Players {
		if p.Status == "available" {
			available = p
			break
		}
	}
	if available == nil {
		t.Fatalf("seeded database has no available players")
	}

	req := &api.TradePlaceRequest{
		PlayerID: available.ID,
		Side:     "buy",
		Quantity: d("10"),
		Price:    d("2.50"),
	}
	resp, err := s.doTradePlace(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.UID == "" {
		t.Errorf("want a trade uid")
	}

	p, err := s.store.Player(ctx, available.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Price.Equal(d("2.50")) {
		t.Errorf("want player price 2.50 after trade, got %s", p.Price)
	}
	if len(p.PriceHistory) == 0 {
		t.Errorf("want a price history entry after trade")
	}
}

func TestSign(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(ctx, t)

	resp, err := s.doSign(ctx, &api.SignRequest{Method: "GET", RequestPath: "/markets"})
	if err != nil {
		t.Fatal(err)
	}
	if parts := strings.Split(resp.Token, "."); len(parts) != 3 {
		t.Errorf("want a compact jwt with 3 parts, got %d", len(parts))
	}
	if resp.Timestamp == 0 {
		t.Errorf("want a non-zero timestamp")
	}

	if _, err := s.doSign(ctx, &api.SignRequest{Method: "GET"}); err == nil {
		t.Errorf("want an error for an incomplete sign request")
	}
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(ctx, t)

	get, err := s.doSettingsGet(ctx, &api.SettingsGetRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if !get.Settings.MockDataEnabled {
		t.Errorf("want mock data enabled in the seeded settings")
	}

	update := &api.SettingsUpdateRequest{
		Settings: &gobs.AdminSettings{DemoMode: true, ActiveTagIDs: []string{"100639"}},
	}
	updated, err := s.doSettingsUpdate(ctx, update)
	if err != nil {
		t.Fatal(err)
	}
	if !updated.Settings.DemoMode || updated.Settings.MockDataEnabled {
		t.Errorf("unexpected settings after update: %+v", updated.Settings)
	}
	if updated.Settings.LastUpdated.IsZero() {
		t.Errorf("want a last updated timestamp")
	}
}

func TestFeeConfigEndpoint(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(ctx, t)

	config, err := s.getFeeConfig(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if config.Enabled {
		t.Errorf("want a disabled config without stored state")
	}
}

func TestWalletUpdate(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(ctx, t)

	usdc := d("123.45")
	resp, err := s.doWalletUpdate(ctx, &api.WalletUpdateRequest{USDCBalance: &usdc})
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Wallet.USDCBalance.Equal(usdc) {
		t.Errorf("want USDC balance %s, got %s", usdc, resp.Wallet.USDCBalance)
	}
	want := usdc.Add(resp.Wallet.WildBalance)
	if !resp.Wallet.TotalValue.Equal(want) {
		t.Errorf("want total value %s, got %s", want, resp.Wallet.TotalValue)
	}
}
