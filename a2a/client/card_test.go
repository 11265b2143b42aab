// Copyright 2025 The sui-onekey-ai-trading Authors
// SPDX-License-Identifier: Apache-2.0

package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fabw222/sui-onekey-ai-trading/a2a"
	"github.com/fabw222/sui-onekey-ai-trading/a2a/client"
)

const testCardJSON = `{
	"name": "sui-trader",
	"description": "Executes trading strategies on Sui",
	"url": "https://agent.example",
	"version": "1.0.0",
	"capabilities": {"streaming": true, "pushNotifications": false},
	"skills": [{"id": "trade", "name": "Trade execution"}]
}`

func TestClient_AgentCardSingleFlight(t *testing.T) {
	var fetches atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != a2a.AgentCardWellKnownPath {
			t.Errorf("path = %q, want %q", r.URL.Path, a2a.AgentCardWellKnownPath)
		}
		fetches.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(testCardJSON))
	}))
	t.Cleanup(srv.Close)

	c, err := client.New(client.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			card, err := c.AgentCard(context.Background())
			if err != nil {
				t.Errorf("AgentCard: %v", err)
				return
			}
			if card.Name != "sui-trader" {
				t.Errorf("Name = %q, want sui-trader", card.Name)
			}
		}()
	}
	wg.Wait()

	// Sequential calls after the cache is warm must not refetch.
	if _, err := c.AgentCard(context.Background()); err != nil {
		t.Fatalf("AgentCard: %v", err)
	}

	if got := fetches.Load(); got != 1 {
		t.Errorf("card fetched %d times, want 1", got)
	}
}

func TestClient_Supports(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(testCardJSON))
	}))
	t.Cleanup(srv.Close)

	c, err := client.New(client.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}

	ctx := context.Background()
	tests := []struct {
		capability string
		want       bool
	}{
		{client.CapabilityStreaming, true},
		{client.CapabilityPushNotifications, false},
		{client.CapabilityStateTransitionHistory, false},
		{"teleportation", false},
	}
	for _, tt := range tests {
		if got := c.Supports(ctx, tt.capability); got != tt.want {
			t.Errorf("Supports(%q) = %t, want %t", tt.capability, got, tt.want)
		}
	}
}

func TestClient_SupportsFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c, err := client.New(client.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}

	if c.Supports(context.Background(), client.CapabilityStreaming) {
		t.Error("Supports = true against a failing card endpoint, want false")
	}
}

func TestClient_AgentCardFailureNotCached(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "warming up", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(testCardJSON))
	}))
	t.Cleanup(srv.Close)

	c, err := client.New(client.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}

	if _, err := c.AgentCard(context.Background()); err == nil {
		t.Fatal("expected error from first fetch")
	}

	card, err := c.AgentCard(context.Background())
	if err != nil {
		t.Fatalf("AgentCard after failure: %v", err)
	}
	if card.Name != "sui-trader" {
		t.Errorf("Name = %q, want sui-trader", card.Name)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("card endpoint hit %d times, want 2", got)
	}
}
