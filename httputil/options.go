// Copyright (c) 2025 BVK Chaitanya

package httputil

import (
	"time"
)

type Options struct {
	// ServerCheckTimeout holds the http client timeout when probing the
	// server for readiness after start.
	ServerCheckTimeout time.Duration

	// ServerCheckRetryInterval holds the amount of time to wait between
	// readiness probes.
	ServerCheckRetryInterval time.Duration
}

func (v *Options) setDefaults() {
	if v.ServerCheckTimeout == 0 {
		v.ServerCheckTimeout = 10 * time.Second
	}
	if v.ServerCheckRetryInterval == 0 {
		v.ServerCheckRetryInterval = time.Second
	}
}
