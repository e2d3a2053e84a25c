// Copyright (c) 2025 BVK Chaitanya

package feesplit

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	ctx := context.Background()

	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"feeAddress":"0xfee","feeBps":250,"enabled":true,"wallets":[{"address":"0xaaa","percentage":33.5,"label":"ops"}]}`)
	}))
	defer s.Close()

	u, err := url.Parse(s.URL)
	if err != nil {
		t.Fatal(err)
	}
	c, err := LoadConfig(ctx, s.Client(), u)
	if err != nil {
		t.Fatal(err)
	}
	if c.FeeAddress != "0xfee" || c.FeeBps != 250 || !c.Enabled {
		t.Fatalf("unexpected config %+v", c)
	}
	if len(c.Wallets) != 1 || c.Wallets[0].Percentage.String() != "33.5" {
		t.Fatalf("unexpected wallets %+v", c.Wallets)
	}
}

func TestLoadConfigFailure(t *testing.T) {
	ctx := context.Background()

	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer s.Close()

	u, err := url.Parse(s.URL)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(ctx, s.Client(), u); err == nil {
		t.Fatal("load must fail on a non-200 response")
	}

	s2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"feeBps":20000,"enabled":true}`)
	}))
	defer s2.Close()

	u2, err := url.Parse(s2.URL)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(ctx, s2.Client(), u2); err == nil {
		t.Fatal("load must fail on an out-of-range fee rate")
	}
}
