// Copyright (c) 2025 BVK Chaitanya

package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

var feedUpgrader = websocket.Upgrader{
	// The terminal ui is served from a different origin during development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// feedControl is the client-to-server message on the live feed bridge.
type feedControl struct {
	Subscribe   []string `json:"subscribe"`
	Unsubscribe []string `json:"unsubscribe"`
}

// serveFeedLive bridges live price updates to a browser websocket. Clients
// may send control messages to adjust their token subscriptions; price
// updates flow in the other direction as JSON.
func (s *Server) serveFeedLive(w http.ResponseWriter, r *http.Request) {
	if s.feedClient == nil {
		http.Error(w, "live price feed is disabled", http.StatusServiceUnavailable)
		return
	}

	conn, err := feedUpgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("could not upgrade live feed connection", "err", err)
		return
	}
	defer conn.Close()

	updatesCh, closef := s.feedClient.PriceUpdatesCh()
	defer closef()

	readErrCh := make(chan error, 1)
	go func() {
		for {
			var msg feedControl
			if err := conn.ReadJSON(&msg); err != nil {
				readErrCh <- err
				return
			}
			if len(msg.Subscribe) != 0 {
				s.feedClient.Subscribe(msg.Subscribe)
			}
			if len(msg.Unsubscribe) != 0 {
				s.feedClient.Unsubscribe(msg.Unsubscribe)
			}
		}
	}()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-readErrCh:
			return
		case p, ok := <-updatesCh:
			if !ok {
				return
			}
			if err := conn.WriteJSON(p); err != nil {
				slog.Debug("could not write to live feed client", "err", err)
				return
			}
		}
	}
}
