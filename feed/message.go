// Copyright (c) 2025 BVK Chaitanya

package feed

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// initMessage is the handshake sent right after the websocket is opened. The
// venue expects it before any subscribe/unsubscribe operations.
type initMessage struct {
	AssetsIDs []string `json:"assets_ids"`
	Type      string   `json:"type"`
}

// operationMessage batches subscribe or unsubscribe requests for many
// instrument ids into a single wire message.
type operationMessage struct {
	Operation string   `json:"operation"`
	AssetsIDs []string `json:"assets_ids"`
}

type priceChange struct {
	AssetID string `json:"asset_id"`
	Price   string `json:"price"`
	BestAsk string `json:"best_ask"`
	BestBid string `json:"best_bid"`
}

type priceChangeEvent struct {
	EventType    string         `json:"event_type"`
	AssetID      string         `json:"asset_id"`
	Timestamp    string         `json:"timestamp"`
	PriceChanges []*priceChange `json:"price_changes"`
}

// parseEvents decodes an inbound frame, which can be a single event object
// or an array of them. Returns nil for frames this client doesn't care
// about; the caller drops undecodable frames without failing the session.
func parseEvents(data []byte) ([]*priceChangeEvent, error) {
	var events []*priceChangeEvent
	if err := json.Unmarshal(data, &events); err == nil {
		return events, nil
	}
	event := new(priceChangeEvent)
	if err := json.Unmarshal(data, event); err != nil {
		return nil, err
	}
	return []*priceChangeEvent{event}, nil
}

func (e *priceChangeEvent) eventTime() time.Time {
	var ms int64
	if err := json.Unmarshal([]byte(e.Timestamp), &ms); err != nil || ms <= 0 {
		return time.Now()
	}
	return time.UnixMilli(ms)
}

func (c *priceChange) livePrice(at time.Time) (*LivePrice, error) {
	ask, err := decimal.NewFromString(c.BestAsk)
	if err != nil {
		return nil, err
	}
	bid, err := decimal.NewFromString(c.BestBid)
	if err != nil {
		return nil, err
	}
	return &LivePrice{
		TokenID:   c.AssetID,
		BestAsk:   ask,
		BestBid:   bid,
		Timestamp: at,
	}, nil
}
