// Copyright (c) 2025 BVK Chaitanya

// Package gamma implements a read-only client for the prediction-market
// catalog api, which lists event tags and the active events under them.
package gamma

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// sportsKeywords pick out the tags the terminal cares about from the full
// catalog tag list.
var sportsKeywords = []string{
	"sports", "nba", "nfl", "mlb", "nhl", "soccer", "football",
	"basketball", "tennis", "mma", "boxing", "golf", "esports",
}

type Options struct {
	// RestHostname is the catalog api endpoint.
	RestHostname string

	HttpClientTimeout time.Duration

	// EventsPerTag limits how many events are fetched for each tag id.
	EventsPerTag int
}

func (v *Options) setDefaults() {
	if v.RestHostname == "" {
		v.RestHostname = "gamma-api.polymarket.com"
	}
	if v.HttpClientTimeout == 0 {
		v.HttpClientTimeout = 10 * time.Second
	}
	if v.EventsPerTag == 0 {
		v.EventsPerTag = 10
	}
}

type Client struct {
	opts Options

	client *http.Client

	limiter *rate.Limiter

	// scheme is "https" outside of tests.
	scheme string
}

func New(opts *Options) *Client {
	if opts == nil {
		opts = new(Options)
	}
	opts.setDefaults()

	return &Client{
		opts: *opts,
		client: &http.Client{
			Timeout: opts.HttpClientTimeout,
		},
		limiter: rate.NewLimiter(10, 1),
		scheme:  "https",
	}
}

func (c *Client) getJSON(ctx context.Context, url *url.URL, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url.String(), nil)
	if err != nil {
		slog.Error("could not create http get request with context", "url", url, "err", err)
		return err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not do http client request", "url", url, "err", err)
		}
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		slog.Error("http GET is unsuccessful", "status", resp.StatusCode, "url", url.String())
		return fmt.Errorf("http GET returned %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		slog.Error("could not decode response to json", "url", url, "err", err)
		return err
	}
	return nil
}

// Tags returns the catalog tags relevant to sports markets.
func (c *Client) Tags(ctx context.Context) ([]*Tag, error) {
	url := &url.URL{
		Scheme: c.scheme,
		Host:   c.opts.RestHostname,
		Path:   "/tags",
	}
	var tags []*Tag
	if err := c.getJSON(ctx, url, &tags); err != nil {
		return nil, fmt.Errorf("could not fetch catalog tags: %w", err)
	}

	var selected []*Tag
	for _, tag := range tags {
		if isSportsTag(tag) {
			selected = append(selected, tag)
		}
	}
	return selected, nil
}

func isSportsTag(tag *Tag) bool {
	label := strings.ToLower(tag.Label)
	slug := strings.ToLower(tag.Slug)
	for _, kw := range sportsKeywords {
		if strings.Contains(label, kw) || strings.Contains(slug, kw) {
			return true
		}
	}
	return false
}

// Events returns the active, still-open events under the given tag ids.
// Events with no priceable market are dropped and duplicates across tags
// are returned once.
func (c *Client) Events(ctx context.Context, tagIDs []string) ([]*Event, error) {
	var all []*Event
	var seen []string

	for _, tagID := range tagIDs {
		values := make(url.Values)
		values.Set("tag_id", tagID)
		values.Set("active", "true")
		values.Set("closed", "false")
		values.Set("limit", fmt.Sprintf("%d", c.opts.EventsPerTag))
		url := &url.URL{
			Scheme:   c.scheme,
			Host:     c.opts.RestHostname,
			Path:     "/events",
			RawQuery: values.Encode(),
		}

		var events []*Event
		if err := c.getJSON(ctx, url, &events); err != nil {
			return nil, fmt.Errorf("could not fetch events for tag %s: %w", tagID, err)
		}

		for _, event := range events {
			if len(event.Markets) == 0 {
				continue
			}
			if prices := event.Markets[0].outcomePrices(); len(prices) == 0 {
				continue
			}
			if slices.Contains(seen, event.ID) {
				continue
			}
			seen = append(seen, event.ID)
			all = append(all, event)
		}
	}
	return all, nil
}
