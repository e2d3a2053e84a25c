// Copyright (c) 2025 BVK Chaitanya

package gamma

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bvk/predictbot/gobs"
	"github.com/shopspring/decimal"
)

// outcomePrices decodes the JSON-encoded price array carried as a string.
// Returns nil when the field is empty or undecodable.
func (m *Market) outcomePrices() []string {
	if m.OutcomePrices == "" {
		return nil
	}
	var prices []string
	if err := json.Unmarshal([]byte(m.OutcomePrices), &prices); err != nil {
		return nil
	}
	return prices
}

func (m *Market) outcomeLabels() []string {
	if m.Outcomes == "" {
		return nil
	}
	var labels []string
	if err := json.Unmarshal([]byte(m.Outcomes), &labels); err != nil {
		return nil
	}
	return labels
}

// TokenIDs decodes the price feed instrument ids for the market's
// outcomes.
func (m *Market) TokenIDs() []string {
	if m.ClobTokenIDs == "" {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(m.ClobTokenIDs), &ids); err != nil {
		return nil
	}
	return ids
}

// outcomes pairs up outcome labels with their latest prices. The implied
// probability is the price itself; the decimal odds are its reciprocal.
func (m *Market) outcomes() []*gobs.Outcome {
	labels := m.outcomeLabels()
	prices := m.outcomePrices()

	var os []*gobs.Outcome
	for i, label := range labels {
		if i >= len(prices) {
			break
		}
		probability, err := decimal.NewFromString(prices[i])
		if err != nil {
			continue
		}
		odds := decimal.NewFromInt(99)
		if probability.IsPositive() {
			odds = decimal.NewFromInt(1).DivRound(probability, 2)
		}
		os = append(os, &gobs.Outcome{
			ID:          fmt.Sprintf("%s-%d", m.ID, i),
			Label:       label,
			Odds:        odds,
			Probability: probability.Round(3),
		})
	}
	return os
}

// sportTagKeywords match specific sports, not the generic "sports" tag.
var sportTagKeywords = []string{
	"nba", "nfl", "mlb", "nhl", "soccer", "football", "basketball",
	"tennis", "mma", "boxing", "golf", "esports",
}

func (e *Event) sportTag() *Tag {
	for _, tag := range e.Tags {
		label := strings.ToLower(tag.Label)
		slug := strings.ToLower(tag.Slug)
		for _, kw := range sportTagKeywords {
			if strings.Contains(label, kw) || strings.Contains(slug, kw) {
				return tag
			}
		}
	}
	return nil
}

// GobMarket converts a catalog event into our market representation, using
// the event's first market for prices. Returns nil when the event carries
// nothing priceable.
func (e *Event) GobMarket() *gobs.Market {
	if len(e.Markets) == 0 {
		return nil
	}
	market := e.Markets[0]

	outcomes := market.outcomes()
	if len(outcomes) == 0 {
		return nil
	}

	sport, league := "Sports", "LIVE"
	if tag := e.sportTag(); tag != nil {
		sport = tag.Label
		league = strings.ToUpper(tag.Slug)
	}

	description := e.Description
	if description == "" {
		description = market.Question
	}

	status := "closed"
	if e.Active && !e.Closed {
		status = "open"
	}

	m := &gobs.Market{
		Title:       e.Title,
		Description: description,
		Category:    "sports",
		Sport:       sport,
		League:      league,
		Status:      status,
		Outcomes:    outcomes,
		Volume:      parseAmount(market.Volume),
		Liquidity:   parseAmount(market.Liquidity),
		ImageURL:    e.Image,
		CatalogID:   market.ID,
		ConditionID: market.ConditionID,
		TokenIDs:    market.TokenIDs(),
	}
	if t, err := time.Parse(time.RFC3339, e.StartDate); err == nil {
		m.StartTime = t
	}
	if t, err := time.Parse(time.RFC3339, e.EndDate); err == nil {
		m.EndTime = t
	}
	return m
}

func parseAmount(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return v
}
