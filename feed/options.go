// Copyright (c) 2025 BVK Chaitanya

package feed

import "time"

var WebsocketURL = "wss://ws-subscriptions-clob.polymarket.com/ws/market"

type Options struct {
	// WebsocketURL is the streaming endpoint of the market-data venue.
	WebsocketURL string

	// Timeout to use when dialing the websocket endpoint.
	DialTimeout time.Duration

	// FlushInterval is how often queued subscribe/unsubscribe operations are
	// coalesced into batched wire messages.
	FlushInterval time.Duration

	// ReconnectInterval is how long to wait before a new websocket session
	// is attempted after a failure.
	ReconnectInterval time.Duration
}

func (v *Options) setDefaults() {
	if v.WebsocketURL == "" {
		v.WebsocketURL = WebsocketURL
	}
	if v.DialTimeout == 0 {
		v.DialTimeout = 10 * time.Second
	}
	if v.FlushInterval == 0 {
		v.FlushInterval = 100 * time.Millisecond
	}
	if v.ReconnectInterval == 0 {
		v.ReconnectInterval = 5 * time.Second
	}
}
