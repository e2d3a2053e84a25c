// Copyright (c) 2025 BVK Chaitanya

package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
)

// PostHandler adapts a request/response function into a http handler. The
// request body is decoded from JSON and the response is encoded back as
// JSON. Validation failures map to 400 and missing objects to 404.
func PostHandler[REQ, RESP any](fn func(context.Context, *REQ) (*RESP, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method must be POST", http.StatusMethodNotAllowed)
			return
		}
		req := new(REQ)
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resp, err := fn(r.Context(), req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, resp)
	})
}

// GetHandler adapts a response-only function into a http handler serving
// GET requests with a JSON response body.
func GetHandler[RESP any](fn func(context.Context) (*RESP, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method must be GET", http.StatusMethodNotAllowed)
			return
		}
		resp, err := fn(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, resp)
	})
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, os.ErrInvalid):
		code = http.StatusBadRequest
	case errors.Is(err, os.ErrNotExist):
		code = http.StatusNotFound
	case errors.Is(err, os.ErrExist):
		code = http.StatusConflict
	}
	slog.Warn("api request has failed", "path", r.URL.Path, "code", code, "err", err)
	http.Error(w, err.Error(), code)
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("content-type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("could not encode api response (ignored)", "path", r.URL.Path, "err", err)
	}
}
