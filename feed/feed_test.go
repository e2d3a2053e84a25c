// Copyright (c) 2025 BVK Chaitanya

package feed

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// testVenue is an in-process websocket endpoint standing in for the live
// market-data service. It records every message received from the client
// and lets tests push frames back or drop the connection.
type testVenue struct {
	t *testing.T

	server   *httptest.Server
	upgrader websocket.Upgrader

	connCh chan *websocket.Conn
	msgCh  chan map[string]any

	mu    sync.Mutex
	conns []*websocket.Conn
}

func newTestVenue(t *testing.T) *testVenue {
	v := &testVenue{
		t:      t,
		connCh: make(chan *websocket.Conn, 10),
		msgCh:  make(chan map[string]any, 100),
	}
	v.server = httptest.NewServer(http.HandlerFunc(v.serveWebsocket))
	t.Cleanup(v.close)
	return v
}

func (v *testVenue) close() {
	v.mu.Lock()
	for _, c := range v.conns {
		c.Close()
	}
	v.mu.Unlock()
	v.server.Close()
}

func (v *testVenue) url() string {
	return "ws" + strings.TrimPrefix(v.server.URL, "http")
}

func (v *testVenue) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := v.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	v.mu.Lock()
	v.conns = append(v.conns, conn)
	v.mu.Unlock()
	v.connCh <- conn

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		m := make(map[string]any)
		if err := json.Unmarshal(data, &m); err != nil {
			v.t.Errorf("venue received undecodable message: %v", err)
			return
		}
		v.msgCh <- m
	}
}

func (v *testVenue) waitConn() *websocket.Conn {
	select {
	case conn := <-v.connCh:
		return conn
	case <-time.After(5 * time.Second):
		v.t.Fatal("timed out waiting for a websocket connection")
		return nil
	}
}

func (v *testVenue) waitMessage() map[string]any {
	select {
	case m := <-v.msgCh:
		return m
	case <-time.After(5 * time.Second):
		v.t.Fatal("timed out waiting for a message from the client")
		return nil
	}
}

// waitOperation skips over handshake messages till an operation message of
// the wanted kind arrives and returns its instrument ids.
func (v *testVenue) waitOperation(op string) []string {
	for {
		m := v.waitMessage()
		got, ok := m["operation"].(string)
		if !ok {
			continue
		}
		if got != op {
			v.t.Fatalf("venue received operation %q, wanted %q", got, op)
		}
		return assetIDs(v.t, m)
	}
}

func assetIDs(t *testing.T, m map[string]any) []string {
	vs, ok := m["assets_ids"].([]any)
	if !ok {
		t.Fatalf("message %v carries no assets_ids", m)
	}
	var ids []string
	for _, v := range vs {
		ids = append(ids, v.(string))
	}
	slices.Sort(ids)
	return ids
}

func priceChangeFrame(tokenID, bid, ask string) string {
	return fmt.Sprintf(`{"event_type":"price_change","asset_id":%q,"timestamp":"1700000000000","price_changes":[{"asset_id":%q,"price":%q,"best_ask":%q,"best_bid":%q}]}`, tokenID, tokenID, bid, ask, bid)
}

func waitPrice(t *testing.T, c *Client, tokenID, bid string) *LivePrice {
	t.Helper()
	for deadline := time.Now().Add(5 * time.Second); time.Now().Before(deadline); {
		if p, ok := c.LastPrice(tokenID); ok && p.BestBid.String() == bid {
			return p
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for price %s on instrument %s", bid, tokenID)
	return nil
}

func testOptions(venue *testVenue) *Options {
	return &Options{
		WebsocketURL:      venue.url(),
		FlushInterval:     20 * time.Millisecond,
		ReconnectInterval: 20 * time.Millisecond,
	}
}

func TestSubscribePriceFlow(t *testing.T) {
	venue := newTestVenue(t)

	c := New(testOptions(venue))
	defer c.Close()

	if c.IsConnected() {
		t.Fatal("client must not connect before the first subscription")
	}

	c.Subscribe([]string{"aaa", "bbb"})

	conn := venue.waitConn()

	// The handshake must arrive before any operation.
	m := venue.waitMessage()
	if m["type"] != "market" {
		t.Fatalf("first message %v is not the handshake", m)
	}
	if ids, ok := m["assets_ids"].([]any); !ok || len(ids) != 0 {
		t.Fatalf("handshake %v must carry an empty assets_ids list", m)
	}

	ids := venue.waitOperation("subscribe")
	if want := []string{"aaa", "bbb"}; !slices.Equal(ids, want) {
		t.Fatalf("subscribed ids are %v, want %v", ids, want)
	}

	if !c.IsConnected() {
		t.Fatal("client must report connected with an open session")
	}

	ch, unsubscribe := c.PriceUpdatesCh()
	defer unsubscribe()

	if err := conn.WriteMessage(websocket.TextMessage, []byte(priceChangeFrame("aaa", "0.54", "0.56"))); err != nil {
		t.Fatal(err)
	}

	p := waitPrice(t, c, "aaa", "0.54")
	if p.BestAsk.String() != "0.56" {
		t.Fatalf("best ask is %s, want 0.56", p.BestAsk)
	}
	if want := time.UnixMilli(1700000000000); !p.Timestamp.Equal(want) {
		t.Fatalf("timestamp is %v, want %v", p.Timestamp, want)
	}

	select {
	case up := <-ch:
		if up.TokenID != "aaa" || up.BestBid.String() != "0.54" {
			t.Fatalf("unexpected price update %#v", up)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a price update")
	}

	if _, ok := c.LastPrice("bbb"); ok {
		t.Fatal("instrument bbb has no price yet")
	}
}

func TestUnsubscribeBeforeFlush(t *testing.T) {
	venue := newTestVenue(t)

	opts := testOptions(venue)
	opts.FlushInterval = 200 * time.Millisecond

	c := New(opts)
	defer c.Close()

	c.Subscribe([]string{"aaa"})
	venue.waitConn()
	venue.waitMessage() // handshake
	venue.waitOperation("subscribe")

	// An id canceled while still queued must produce no wire traffic.
	c.Subscribe([]string{"bbb"})
	c.Unsubscribe([]string{"bbb"})

	c.Subscribe([]string{"ccc"})
	ids := venue.waitOperation("subscribe")
	if want := []string{"ccc"}; !slices.Equal(ids, want) {
		t.Fatalf("subscribed ids are %v, want %v", ids, want)
	}
}

func TestUnsubscribeOrdering(t *testing.T) {
	venue := newTestVenue(t)

	opts := testOptions(venue)
	opts.FlushInterval = 200 * time.Millisecond

	c := New(opts)
	defer c.Close()

	c.Subscribe([]string{"aaa"})
	conn := venue.waitConn()
	venue.waitMessage() // handshake
	venue.waitOperation("subscribe")

	// Queue a removal and a new addition in the same flush window. The
	// removal must go out first.
	c.Unsubscribe([]string{"aaa"})
	c.Subscribe([]string{"bbb"})

	if ids := venue.waitOperation("unsubscribe"); !slices.Equal(ids, []string{"aaa"}) {
		t.Fatalf("unsubscribed ids are %v, want [aaa]", ids)
	}
	if ids := venue.waitOperation("subscribe"); !slices.Equal(ids, []string{"bbb"}) {
		t.Fatalf("subscribed ids are %v, want [bbb]", ids)
	}

	// Updates for the removed id must not land in the price map.
	if err := conn.WriteMessage(websocket.TextMessage, []byte(priceChangeFrame("aaa", "0.11", "0.12"))); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(priceChangeFrame("bbb", "0.21", "0.22"))); err != nil {
		t.Fatal(err)
	}
	waitPrice(t, c, "bbb", "0.21")
	if _, ok := c.LastPrice("aaa"); ok {
		t.Fatal("unsubscribed instrument must not receive price updates")
	}
}

func TestReconnectResubscribes(t *testing.T) {
	venue := newTestVenue(t)

	c := New(testOptions(venue))
	defer c.Close()

	c.Subscribe([]string{"aaa", "bbb"})
	conn := venue.waitConn()
	venue.waitMessage() // handshake
	venue.waitOperation("subscribe")

	// Drop the session; the client must redial and announce every live
	// subscription again.
	conn.Close()

	venue.waitConn()
	m := venue.waitMessage()
	if m["type"] != "market" {
		t.Fatalf("first message after reconnect %v is not the handshake", m)
	}
	ids := venue.waitOperation("subscribe")
	if want := []string{"aaa", "bbb"}; !slices.Equal(ids, want) {
		t.Fatalf("resubscribed ids are %v, want %v", ids, want)
	}
}

func TestMalformedFramesIgnored(t *testing.T) {
	venue := newTestVenue(t)

	c := New(testOptions(venue))
	defer c.Close()

	c.Subscribe([]string{"aaa"})
	conn := venue.waitConn()
	venue.waitMessage() // handshake
	venue.waitOperation("subscribe")

	if err := conn.WriteMessage(websocket.TextMessage, []byte(priceChangeFrame("aaa", "0.30", "0.32"))); err != nil {
		t.Fatal(err)
	}
	waitPrice(t, c, "aaa", "0.30")

	bad := []string{
		`this is not json`,
		`{"event_type":"price_change","asset_id":"aaa","price_changes":"oops"}`,
		priceChangeFrame("aaa", "not-a-number", "0.50"),
		`{"event_type":"book","asset_id":"aaa"}`,
	}
	for _, frame := range bad {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
			t.Fatal(err)
		}
	}

	// A good frame after the garbage proves the session survived and the
	// earlier price was never clobbered.
	if err := conn.WriteMessage(websocket.TextMessage, []byte(priceChangeFrame("aaa", "0.40", "0.42"))); err != nil {
		t.Fatal(err)
	}
	p := waitPrice(t, c, "aaa", "0.40")
	if p.BestAsk.String() != "0.42" {
		t.Fatalf("best ask is %s, want 0.42", p.BestAsk)
	}
}

func TestEventArrayFrame(t *testing.T) {
	venue := newTestVenue(t)

	c := New(testOptions(venue))
	defer c.Close()

	c.Subscribe([]string{"aaa", "bbb"})
	conn := venue.waitConn()
	venue.waitMessage() // handshake
	venue.waitOperation("subscribe")

	frame := "[" + priceChangeFrame("aaa", "0.61", "0.63") + "," + priceChangeFrame("bbb", "0.71", "0.73") + "]"
	if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
		t.Fatal(err)
	}
	waitPrice(t, c, "aaa", "0.61")
	waitPrice(t, c, "bbb", "0.71")
}
