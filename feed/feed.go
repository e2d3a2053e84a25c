// Copyright (c) 2025 BVK Chaitanya

// Package feed implements a live price subscription client for the
// market-data venue's websocket endpoint.
//
// A single Client multiplexes price subscriptions for many instrument ids
// over one websocket session. Subscribe and unsubscribe calls only queue
// operations; a periodic flush coalesces them into batched wire messages,
// so rapid churn from scrolling terminal screens costs a bounded number of
// messages. Sessions reconnect automatically and re-announce every live
// subscription, because the venue keeps no subscription state across a
// dropped socket.
package feed

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bvk/predictbot/ctxutil"
	"github.com/bvk/predictbot/syncmap"
	"github.com/bvkgo/topic"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
)

// LivePrice is the most recent best bid/ask for one instrument id. Values
// are replaced wholesale on every update.
type LivePrice struct {
	TokenID   string
	BestAsk   decimal.Decimal
	BestBid   decimal.Decimal
	Timestamp time.Time
}

// subState tracks where one instrument id stands relative to the venue. An
// id missing from the state map is not of interest at all, so an id is in
// exactly one state at any instant.
type subState int

const (
	statePendingSubscribe subState = iota + 1
	stateSubscribed
	statePendingUnsubscribe
)

type Client struct {
	cg ctxutil.CloseGroup

	opts Options

	mu       sync.Mutex
	stateMap map[string]subState

	// kickCh wakes up the connection loop when new interest arrives while
	// no session is open.
	kickCh chan struct{}

	connected atomic.Bool

	priceMap syncmap.Map[string, *LivePrice]

	priceTopic *topic.Topic[*LivePrice]
}

// New creates a live price feed client. No connection is attempted till the
// first Subscribe call brings an id of interest.
func New(opts *Options) *Client {
	if opts == nil {
		opts = new(Options)
	}
	opts.setDefaults()

	c := &Client{
		opts:       *opts,
		stateMap:   make(map[string]subState),
		kickCh:     make(chan struct{}, 1),
		priceTopic: topic.New[*LivePrice](),
	}
	c.cg.Go(c.goConnect)
	return c
}

// Close tears down the client. All timers and the websocket session are
// stopped and the subscription state is cleared; no callbacks fire after
// Close returns.
func (c *Client) Close() {
	c.cg.Close()

	c.mu.Lock()
	c.stateMap = make(map[string]subState)
	c.mu.Unlock()
}

// Subscribe queues price subscriptions for the given instrument ids. It is
// idempotent per id; an id queued for removal is simply retained instead.
func (c *Client) Subscribe(tokenIDs []string) {
	if len(tokenIDs) == 0 {
		return
	}

	c.mu.Lock()
	for _, id := range tokenIDs {
		switch c.stateMap[id] {
		case statePendingUnsubscribe:
			// Cancel the queued removal; the venue still has this id live.
			c.stateMap[id] = stateSubscribed
		case stateSubscribed, statePendingSubscribe:
			// Nothing to do.
		default:
			c.stateMap[id] = statePendingSubscribe
		}
	}
	c.mu.Unlock()

	if !c.connected.Load() {
		select {
		case c.kickCh <- struct{}{}:
		default:
		}
	}
}

// Unsubscribe queues removal of the given instrument ids. Ids that were
// never flushed are canceled on the spot without any wire message.
func (c *Client) Unsubscribe(tokenIDs []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, id := range tokenIDs {
		switch c.stateMap[id] {
		case statePendingSubscribe:
			delete(c.stateMap, id)
		case stateSubscribed:
			c.stateMap[id] = statePendingUnsubscribe
		}
	}
}

// LastPrice returns the most recent price for the given instrument id.
func (c *Client) LastPrice(tokenID string) (*LivePrice, bool) {
	return c.priceMap.Load(tokenID)
}

// IsConnected reports whether a websocket session is currently open. False
// means prices may be stale; the client retries on its own.
func (c *Client) IsConnected() bool {
	return c.connected.Load()
}

// PriceUpdatesCh returns a channel carrying price updates as they arrive,
// along with a function to unsubscribe.
func (c *Client) PriceUpdatesCh() (<-chan *LivePrice, func()) {
	sub, ch, _ := c.priceTopic.Subscribe(1, true /* includeRecent */)
	return ch, sub.Unsubscribe
}

func (c *Client) hasInterest() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.stateMap) > 0
}

// goConnect runs websocket sessions as long as at least one id is of
// interest, and otherwise sleeps till a Subscribe call wakes it up.
func (c *Client) goConnect(ctx context.Context) {
	for ctx.Err() == nil {
		if !c.hasInterest() {
			select {
			case <-ctx.Done():
				return
			case <-c.kickCh:
			}
			continue
		}

		if err := c.session(ctx); err != nil && ctx.Err() == nil {
			slog.Warn("price feed session has failed (will retry)", "err", err)
		}
		c.demoteSubscribed()

		if c.hasInterest() {
			ctxutil.Sleep(ctx, c.opts.ReconnectInterval)
		}
	}
}

// demoteSubscribed moves every live subscription back into the pending set
// after a session is lost, so the next session re-announces them. Queued
// removals are dropped; they were on their way out anyway.
func (c *Client) demoteSubscribed() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, state := range c.stateMap {
		switch state {
		case stateSubscribed:
			c.stateMap[id] = statePendingSubscribe
		case statePendingUnsubscribe:
			delete(c.stateMap, id)
		}
	}
}

func (c *Client) session(ctx context.Context) error {
	dctx, dcancel := context.WithTimeout(ctx, c.opts.DialTimeout)
	conn, _, err := websocket.DefaultDialer.DialContext(dctx, c.opts.WebsocketURL, nil)
	dcancel()
	if err != nil {
		return err
	}
	defer conn.Close()

	// Unblock the read loop when the context is canceled.
	stop := context.AfterFunc(ctx, func() {
		conn.Close()
	})
	defer stop()

	init := &initMessage{AssetsIDs: []string{}, Type: "market"}
	if err := conn.WriteJSON(init); err != nil {
		return err
	}

	c.connected.Store(true)
	defer c.connected.Store(false)

	// Announce queued subscriptions right away instead of waiting for the
	// first timer tick.
	c.flush(conn)

	errCh := make(chan error, 1)
	go func() {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				errCh <- err
				return
			}
			c.handleFrame(data)
		}
	}()

	ticker := time.NewTicker(c.opts.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return context.Cause(ctx)
		case err := <-errCh:
			return err
		case <-ticker.C:
			c.flush(conn)
		}
	}
}

// flush drains queued operations into batched wire messages. Unsubscribes
// go out before subscribes so that an id queued for both directions is
// never transiently re-announced. State transitions are committed only
// after a successful write; a failed write leaves the queue intact for the
// next tick or session.
func (c *Client) flush(conn *websocket.Conn) {
	c.mu.Lock()
	var unsubs, subs []string
	for id, state := range c.stateMap {
		switch state {
		case statePendingUnsubscribe:
			unsubs = append(unsubs, id)
		case statePendingSubscribe:
			subs = append(subs, id)
		}
	}
	c.mu.Unlock()

	if len(unsubs) > 0 {
		msg := &operationMessage{Operation: "unsubscribe", AssetsIDs: unsubs}
		if err := conn.WriteJSON(msg); err != nil {
			slog.Warn("could not send unsubscribe message", "err", err)
		} else {
			c.mu.Lock()
			for _, id := range unsubs {
				if c.stateMap[id] == statePendingUnsubscribe {
					delete(c.stateMap, id)
				}
			}
			c.mu.Unlock()
			slog.Debug("unsubscribed from price feed instruments", "count", len(unsubs))
		}
	}

	if len(subs) > 0 {
		msg := &operationMessage{Operation: "subscribe", AssetsIDs: subs}
		if err := conn.WriteJSON(msg); err != nil {
			slog.Warn("could not send subscribe message", "err", err)
		} else {
			c.mu.Lock()
			for _, id := range subs {
				if c.stateMap[id] == statePendingSubscribe {
					c.stateMap[id] = stateSubscribed
				}
			}
			c.mu.Unlock()
			slog.Debug("subscribed to price feed instruments", "count", len(subs))
		}
	}
}

// handleFrame applies one inbound frame to the price map. Malformed frames
// are dropped; they must never take down the session or clear prices.
func (c *Client) handleFrame(data []byte) {
	events, err := parseEvents(data)
	if err != nil {
		slog.Warn("could not parse price feed message (ignored)", "err", err)
		return
	}

	for _, event := range events {
		if event.EventType != "price_change" {
			continue
		}
		at := event.eventTime()
		for _, change := range event.PriceChanges {
			if !c.isSubscribed(change.AssetID) {
				// A late update for an id that was unsubscribed before the
				// frame arrived.
				continue
			}
			price, err := change.livePrice(at)
			if err != nil {
				slog.Warn("could not parse price change (ignored)", "asset", change.AssetID, "err", err)
				continue
			}
			c.priceMap.Store(price.TokenID, price)
			c.priceTopic.Send(price)
		}
	}
}

func (c *Client) isSubscribed(tokenID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateMap[tokenID] == stateSubscribed
}
