// Copyright (c) 2025 BVK Chaitanya

package feesplit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"
)

// Currency amounts are held as integers in the smallest unit with this
// many decimal places, matching USDC.
const currencyDecimals = 6

// Transfer is one leg of a fee collection batch.
type Transfer struct {
	Address string
	Label   string

	// Amount is in the smallest currency unit.
	Amount int64
}

// Pending is a submitted transfer batch awaiting confirmation.
type Pending interface {
	// Wait blocks till the batch is confirmed and returns its transaction
	// hash.
	Wait(ctx context.Context) (string, error)
}

// Executor submits a batch of transfers as a single operation. The
// underlying mechanism (relayed on-chain calls, internal ledger moves,
// etc.) is the executor's business.
type Executor interface {
	Execute(ctx context.Context, transfers []*Transfer, description string) (Pending, error)
}

// Result describes one fee collection attempt. Collect never fails with an
// error; every outcome is reported through a Result.
type Result struct {
	Success bool

	// Skipped is true when no collection was necessary (fees disabled, no
	// recipients, or a zero fee amount).
	Skipped bool

	// FeeAmount is the total fee in the smallest currency unit. It is
	// reported even on failure, so callers can tell what was attempted.
	FeeAmount int64

	TxHash string

	// Transfers enumerates the non-zero legs that were sent.
	Transfers []*Transfer
}

// Collector computes and collects integrator fees. The zero value is a
// disabled collector; fees are collected only after a configuration is
// installed with SetConfig.
type Collector struct {
	mu      sync.Mutex
	config  *Config
	lastErr error

	busy atomic.Bool
}

func NewCollector(config *Config) *Collector {
	return &Collector{config: config}
}

// SetConfig installs or replaces the fee configuration. A nil config turns
// fee collection off.
func (c *Collector) SetConfig(config *Config) {
	c.mu.Lock()
	c.config = config
	c.mu.Unlock()
}

func (c *Collector) getConfig() *Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config
}

// Config returns the installed fee configuration, which may be nil.
func (c *Collector) Config() *Config {
	return c.getConfig()
}

// Estimate returns the fee for the given order value and its recipient
// split, without executing any transfers.
func (c *Collector) Estimate(orderValue decimal.Decimal) (int64, []*Transfer) {
	fee := c.FeeAmount(orderValue)
	if fee <= 0 {
		return fee, nil
	}
	transfers, err := splitFee(c.getConfig(), fee)
	if err != nil {
		return fee, nil
	}
	return fee, transfers
}

// IsEnabled reports whether fee collection can take place at all. It is
// false till a configuration with a positive rate and at least one
// recipient is installed.
func (c *Collector) IsEnabled() bool {
	config := c.getConfig()
	return config != nil && config.Enabled && config.FeeBps > 0 && config.hasRecipients()
}

// IsCollecting reports whether a collection attempt is in flight.
func (c *Collector) IsCollecting() bool {
	return c.busy.Load()
}

// LastError returns the error from the most recent failed attempt, if any.
func (c *Collector) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Collector) setLastError(err error) {
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
}

// FeeAmount returns the total fee for the given order value, truncated to
// the smallest currency unit. Truncation, not rounding: the computed fee
// never exceeds the nominal basis-point rate. Returns zero when fee
// collection is disabled or the order value is not positive.
func (c *Collector) FeeAmount(orderValue decimal.Decimal) int64 {
	if !c.IsEnabled() || !orderValue.IsPositive() {
		return 0
	}
	config := c.getConfig()

	// orderValue * (bps/10000) scaled by 10^6 is orderValue * bps * 100.
	fee := orderValue.Mul(decimal.NewFromInt(config.FeeBps)).Mul(decimal.NewFromInt(100))
	return fee.Truncate(0).IntPart()
}

// splitFee divides the total fee across the configured recipients. Every
// share is floored, so the flooring remainder is given to the last
// recipient, which keeps the sum of the parts exactly equal to the total.
// Zero-amount legs are dropped. With no wallet list, the whole fee goes to
// the legacy single address.
func splitFee(config *Config, totalFee int64) ([]*Transfer, error) {
	wallets := config.recipients()
	if len(wallets) == 0 {
		if config.FeeAddress == "" {
			return nil, fmt.Errorf("no fee recipients are configured")
		}
		return []*Transfer{{Address: config.FeeAddress, Amount: totalFee}}, nil
	}

	total := decimal.NewFromInt(totalFee)
	ten4 := decimal.NewFromInt(10000)

	var sum int64
	shares := make([]int64, len(wallets))
	for i, w := range wallets {
		// Percentage is significant to hundredths of a percent; floor it
		// there first so 33.339% and 33.33999% compute the same share.
		hundredths := w.Percentage.Mul(decimal.NewFromInt(100)).Floor()
		shares[i] = total.Mul(hundredths).Div(ten4).Floor().IntPart()
		sum += shares[i]
	}

	remainder := totalFee - sum
	if remainder < 0 {
		return nil, fmt.Errorf("fee shares %d exceed the total fee %d", sum, totalFee)
	}
	shares[len(shares)-1] += remainder

	var transfers []*Transfer
	for i, w := range wallets {
		if shares[i] == 0 {
			continue
		}
		transfers = append(transfers, &Transfer{
			Address: w.Address,
			Label:   w.Label,
			Amount:  shares[i],
		})
	}
	return transfers, nil
}

// Collect computes the fee for the given order value and submits the
// recipient transfers as one batched operation through the executor. It
// never returns an error; failures are reported inside the Result and kept
// for LastError.
func (c *Collector) Collect(ctx context.Context, executor Executor, orderValue decimal.Decimal) *Result {
	if !c.IsEnabled() {
		slog.Debug("fee collection is disabled; skipping", "orderValue", orderValue)
		return &Result{Success: true, Skipped: true}
	}
	config := c.getConfig()
	if !config.hasRecipients() {
		slog.Debug("no fee recipients are configured; skipping", "orderValue", orderValue)
		return &Result{Success: true, Skipped: true}
	}

	totalFee := c.FeeAmount(orderValue)
	if totalFee <= 0 {
		slog.Debug("fee amount is not positive; skipping", "orderValue", orderValue)
		return &Result{Success: true, Skipped: true}
	}

	c.busy.Store(true)
	defer c.busy.Store(false)
	c.setLastError(nil)

	transfers, err := splitFee(config, totalFee)
	if err != nil {
		c.setLastError(err)
		slog.Error("could not build fee transfers", "totalFee", totalFee, "err", err)
		return &Result{FeeAmount: totalFee}
	}

	desc := fmt.Sprintf("Collect integrator fee: %s USDC across %d wallets",
		decimal.New(totalFee, -currencyDecimals).StringFixed(2), len(transfers))

	pending, err := executor.Execute(ctx, transfers, desc)
	if err != nil {
		c.setLastError(err)
		slog.Error("could not execute fee transfers", "totalFee", totalFee, "err", err)
		return &Result{FeeAmount: totalFee}
	}

	txHash, err := pending.Wait(ctx)
	if err != nil {
		c.setLastError(err)
		slog.Error("fee transfer confirmation has failed", "totalFee", totalFee, "err", err)
		return &Result{FeeAmount: totalFee}
	}

	slog.Info("fee collection is complete", "totalFee", totalFee, "txHash", txHash, "numTransfers", len(transfers))
	return &Result{
		Success:   true,
		FeeAmount: totalFee,
		TxHash:    txHash,
		Transfers: transfers,
	}
}
