// Copyright (c) 2025 BVK Chaitanya

package gamma

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	s := httptest.NewServer(handler)
	t.Cleanup(s.Close)

	u, err := url.Parse(s.URL)
	if err != nil {
		t.Fatal(err)
	}
	c := New(&Options{RestHostname: u.Host})
	// The test server has no TLS.
	c.scheme = "http"
	c.client = s.Client()
	return c
}

const eventJSON = `{
  "id": "evt1",
  "title": "Lakers vs Celtics",
  "description": "NBA Finals Game 7",
  "startDate": "2026-06-01T19:00:00Z",
  "active": true,
  "closed": false,
  "markets": [{
    "id": "mkt1",
    "question": "Who wins game 7?",
    "conditionId": "0xcond",
    "outcomes": "[\"Lakers\",\"Celtics\"]",
    "outcomePrices": "[\"0.465\",\"0.535\"]",
    "clobTokenIds": "[\"tok-a\",\"tok-b\"]",
    "volume": "847500",
    "liquidity": "325000",
    "active": true,
    "closed": false
  }],
  "tags": [{"id": "1", "label": "NBA", "slug": "nba"}]
}`

func TestTags(t *testing.T) {
	ctx := context.Background()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tags" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `[
			{"id":"1","label":"NBA","slug":"nba"},
			{"id":"2","label":"Politics","slug":"politics"},
			{"id":"3","label":"College Football","slug":"college-football"}
		]`)
	})

	tags, err := c.Tags(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(tags) != 2 {
		t.Fatalf("got %d tags, want 2", len(tags))
	}
	if tags[0].Slug != "nba" || tags[1].Slug != "college-football" {
		t.Fatalf("unexpected tags %+v", tags)
	}
}

func TestEvents(t *testing.T) {
	ctx := context.Background()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events" {
			http.NotFound(w, r)
			return
		}
		if v := r.URL.Query().Get("active"); v != "true" {
			t.Errorf("active query is %q", v)
		}
		// Both tags return the same event; one also returns an event with
		// no priceable market.
		fmt.Fprintf(w, `[%s, {"id":"evt2","title":"Empty","active":true,"markets":[]}]`, eventJSON)
	})

	events, err := c.Events(ctx, []string{"1", "2"})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].ID != "evt1" {
		t.Fatalf("unexpected event %+v", events[0])
	}
}

func TestGobMarket(t *testing.T) {
	ctx := context.Background()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[%s]`, eventJSON)
	})

	events, err := c.Events(ctx, []string{"1"})
	if err != nil {
		t.Fatal(err)
	}

	m := events[0].GobMarket()
	if m == nil {
		t.Fatal("event did not convert to a market")
	}
	if m.Title != "Lakers vs Celtics" || m.Status != "open" {
		t.Fatalf("unexpected market %+v", m)
	}
	if m.Sport != "NBA" || m.League != "NBA" {
		t.Fatalf("sport is %q, league is %q", m.Sport, m.League)
	}
	if len(m.Outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(m.Outcomes))
	}
	if m.Outcomes[0].Probability.String() != "0.465" {
		t.Fatalf("probability is %s", m.Outcomes[0].Probability)
	}
	// Decimal odds are the reciprocal of the implied probability.
	if m.Outcomes[0].Odds.String() != "2.15" {
		t.Fatalf("odds are %s, want 2.15", m.Outcomes[0].Odds)
	}
	if !slices.Equal(m.TokenIDs, []string{"tok-a", "tok-b"}) {
		t.Fatalf("token ids are %v", m.TokenIDs)
	}
	if m.ConditionID != "0xcond" || m.CatalogID != "mkt1" {
		t.Fatalf("catalog linkage is %q %q", m.CatalogID, m.ConditionID)
	}
}
