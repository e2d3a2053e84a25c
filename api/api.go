// Copyright (c) 2025 BVK Chaitanya

// Package api defines the request and response types for the predictbot
// daemon's POST-JSON endpoints.
package api

// FeeConfigPath serves the integrator fee configuration over a plain GET
// for browser clients.
const FeeConfigPath = "/fees/config"

// FeedLivePath serves live price updates over a websocket.
const FeedLivePath = "/feed/live"
