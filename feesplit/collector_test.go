// Copyright (c) 2025 BVK Chaitanya

package feesplit

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
)

type testPending struct {
	txHash string
	err    error
}

func (p *testPending) Wait(ctx context.Context) (string, error) {
	return p.txHash, p.err
}

type testExecutor struct {
	transfers   []*Transfer
	description string
	calls       int

	executeErr error
	waitErr    error
}

func (x *testExecutor) Execute(ctx context.Context, transfers []*Transfer, description string) (Pending, error) {
	x.calls++
	x.transfers = transfers
	x.description = description
	if x.executeErr != nil {
		return nil, x.executeErr
	}
	return &testPending{txHash: "0xabc123", err: x.waitErr}, nil
}

func pct(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestFeeAmount(t *testing.T) {
	c := NewCollector(&Config{
		FeeAddress: "0xfee",
		FeeBps:     250,
		Enabled:    true,
	})

	// 2.5% of 100 USDC is exactly 2.5 USDC in 6-decimal units.
	if v := c.FeeAmount(decimal.NewFromInt(100)); v != 2500000 {
		t.Fatalf("fee for 100 at 250bps is %d, want 2500000", v)
	}
	if v := c.FeeAmount(decimal.NewFromInt(0)); v != 0 {
		t.Fatalf("fee for zero order value is %d, want 0", v)
	}
	if v := c.FeeAmount(decimal.NewFromInt(-5)); v != 0 {
		t.Fatalf("fee for negative order value is %d, want 0", v)
	}

	// Truncation, never rounding up: 0.0033 * 250bps = 0.825 units.
	if v := c.FeeAmount(pct("0.0033")); v != 0 {
		t.Fatalf("sub-unit fee is %d, want 0", v)
	}
}

func TestFeeAmountDisabled(t *testing.T) {
	var zero Collector
	if v := zero.FeeAmount(decimal.NewFromInt(100)); v != 0 {
		t.Fatalf("unconfigured collector computed fee %d, want 0", v)
	}

	c := NewCollector(&Config{FeeAddress: "0xfee", FeeBps: 250, Enabled: false})
	if v := c.FeeAmount(decimal.NewFromInt(100)); v != 0 {
		t.Fatalf("disabled collector computed fee %d, want 0", v)
	}
}

func TestSplitFeeRemainder(t *testing.T) {
	config := &Config{
		FeeBps:  100,
		Enabled: true,
		Wallets: []*Wallet{
			{Address: "0xaaa", Percentage: pct("33")},
			{Address: "0xbbb", Percentage: pct("33")},
			{Address: "0xccc", Percentage: pct("34")},
		},
	}

	transfers, err := splitFee(config, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(transfers) != 3 {
		t.Fatalf("got %d transfers, want 3", len(transfers))
	}
	want := []int64{33, 33, 34}
	var sum int64
	for i, tr := range transfers {
		if tr.Amount != want[i] {
			t.Fatalf("transfer %d amount is %d, want %d", i, tr.Amount, want[i])
		}
		sum += tr.Amount
	}
	if sum != 100 {
		t.Fatalf("transfer amounts sum to %d, want 100", sum)
	}
}

func TestSplitFeeSumsExactly(t *testing.T) {
	config := &Config{
		Wallets: []*Wallet{
			{Address: "0xaaa", Percentage: pct("33.33")},
			{Address: "0xbbb", Percentage: pct("33.33")},
			{Address: "0xccc", Percentage: pct("33.34")},
		},
	}

	for _, totalFee := range []int64{1, 7, 99, 100, 101, 12345, 2500000, 1000000007} {
		transfers, err := splitFee(config, totalFee)
		if err != nil {
			t.Fatal(err)
		}
		var sum int64
		for _, tr := range transfers {
			if tr.Amount <= 0 {
				t.Fatalf("zero or negative transfer amount %d for total %d", tr.Amount, totalFee)
			}
			sum += tr.Amount
		}
		if sum != totalFee {
			t.Fatalf("amounts for total %d sum to %d", totalFee, sum)
		}
	}
}

func TestSplitFeeDropsZeroLegs(t *testing.T) {
	config := &Config{
		Wallets: []*Wallet{
			{Address: "0xaaa", Percentage: pct("0.01")},
			{Address: "0xbbb", Percentage: pct("99.99")},
		},
	}

	// 0.01% of 100 units floors to zero, so only one leg must be built and
	// it must carry the whole total.
	transfers, err := splitFee(config, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(transfers) != 1 {
		t.Fatalf("got %d transfers, want 1", len(transfers))
	}
	if transfers[0].Address != "0xbbb" || transfers[0].Amount != 100 {
		t.Fatalf("unexpected transfer %+v", transfers[0])
	}
}

func TestSplitFeeLegacyAddress(t *testing.T) {
	config := &Config{FeeAddress: "0xlegacy"}

	transfers, err := splitFee(config, 2500000)
	if err != nil {
		t.Fatal(err)
	}
	if len(transfers) != 1 {
		t.Fatalf("got %d transfers, want 1", len(transfers))
	}
	if transfers[0].Address != "0xlegacy" || transfers[0].Amount != 2500000 {
		t.Fatalf("unexpected transfer %+v", transfers[0])
	}
}

func TestSplitFeeSkipsInvalidWallets(t *testing.T) {
	config := &Config{
		Wallets: []*Wallet{
			{Address: "", Percentage: pct("50")},
			{Address: "0xaaa", Percentage: pct("0")},
			{Address: "0xbbb", Percentage: pct("50")},
		},
	}

	transfers, err := splitFee(config, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(transfers) != 1 || transfers[0].Address != "0xbbb" {
		t.Fatalf("unexpected transfers %+v", transfers)
	}
	if transfers[0].Amount != 100 {
		t.Fatalf("last valid wallet received %d, want the full 100", transfers[0].Amount)
	}
}

func TestCollectDisabledSkips(t *testing.T) {
	ctx := context.Background()
	executor := &testExecutor{}

	c := NewCollector(&Config{FeeAddress: "0xfee", FeeBps: 250, Enabled: false})
	result := c.Collect(ctx, executor, decimal.NewFromInt(100))
	if !result.Success || !result.Skipped || result.FeeAmount != 0 {
		t.Fatalf("unexpected result %+v", result)
	}
	if executor.calls != 0 {
		t.Fatalf("executor was invoked %d times for a disabled collector", executor.calls)
	}
}

func TestCollectSuccess(t *testing.T) {
	ctx := context.Background()
	executor := &testExecutor{}

	c := NewCollector(&Config{
		FeeBps:  250,
		Enabled: true,
		Wallets: []*Wallet{
			{Address: "0xaaa", Percentage: pct("60"), Label: "ops"},
			{Address: "0xbbb", Percentage: pct("40"), Label: "treasury"},
		},
	})

	result := c.Collect(ctx, executor, decimal.NewFromInt(100))
	if !result.Success || result.Skipped {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.FeeAmount != 2500000 {
		t.Fatalf("fee amount is %d, want 2500000", result.FeeAmount)
	}
	if result.TxHash != "0xabc123" {
		t.Fatalf("tx hash is %q", result.TxHash)
	}
	if len(result.Transfers) != 2 {
		t.Fatalf("got %d transfers, want 2", len(result.Transfers))
	}
	if a, b := result.Transfers[0].Amount, result.Transfers[1].Amount; a != 1500000 || b != 1000000 {
		t.Fatalf("transfer amounts are %d and %d", a, b)
	}
	if executor.description == "" {
		t.Fatal("executor received no description")
	}
	if c.IsCollecting() {
		t.Fatal("busy flag must be reset after collection")
	}
	if err := c.LastError(); err != nil {
		t.Fatalf("unexpected last error %v", err)
	}
}

func TestCollectExecutionFailure(t *testing.T) {
	ctx := context.Background()
	executor := &testExecutor{executeErr: fmt.Errorf("relay is unavailable")}

	c := NewCollector(&Config{FeeAddress: "0xfee", FeeBps: 250, Enabled: true})
	result := c.Collect(ctx, executor, decimal.NewFromInt(100))
	if result.Success || result.Skipped {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.FeeAmount != 2500000 {
		t.Fatalf("failed result must still report the attempted fee, got %d", result.FeeAmount)
	}
	if err := c.LastError(); err == nil {
		t.Fatal("last error must be recorded on failure")
	}
	if c.IsCollecting() {
		t.Fatal("busy flag must be reset after a failure")
	}
}

func TestCollectConfirmationFailure(t *testing.T) {
	ctx := context.Background()
	executor := &testExecutor{waitErr: fmt.Errorf("confirmation timed out")}

	c := NewCollector(&Config{FeeAddress: "0xfee", FeeBps: 250, Enabled: true})
	result := c.Collect(ctx, executor, decimal.NewFromInt(100))
	if result.Success {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.FeeAmount != 2500000 {
		t.Fatalf("fee amount is %d, want 2500000", result.FeeAmount)
	}
}
