// Copyright 2025 The sui-onekey-ai-trading Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fabw222/sui-onekey-ai-trading/a2a"
)

// Capability names recognized by [Client.Supports].
const (
	CapabilityStreaming              = "streaming"
	CapabilityPushNotifications      = "pushNotifications"
	CapabilityStateTransitionHistory = "stateTransitionHistory"
)

// AgentCard returns the agent's card, fetching and caching it on first use.
//
// The fetch is single-flight: concurrent callers share one network request.
// A failed fetch is not cached; the next call retries.
func (c *Client) AgentCard(ctx context.Context) (*a2a.AgentCard, error) {
	c.cardMu.RLock()
	card := c.agentCard
	c.cardMu.RUnlock()
	if card != nil {
		return card, nil
	}

	v, err, _ := c.cardGroup.Do("card", func() (any, error) {
		// Re-check under the group: a previous flight may have already
		// populated the cache.
		c.cardMu.RLock()
		cached := c.agentCard
		c.cardMu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		fetched, err := c.fetchAgentCard(ctx)
		if err != nil {
			return nil, err
		}

		c.cardMu.Lock()
		c.agentCard = fetched
		c.cardMu.Unlock()
		return fetched, nil
	})
	if err != nil {
		return nil, NewErrorWithCause(a2a.InternalErrorCode, "fetch agent card", err)
	}

	return v.(*a2a.AgentCard), nil
}

// Supports reports whether the agent advertises the named capability.
//
// Probing is never fatal: when the card cannot be fetched, Supports returns
// false rather than an error.
func (c *Client) Supports(ctx context.Context, capability string) bool {
	card, err := c.AgentCard(ctx)
	if err != nil {
		c.logger.DebugContext(ctx, "capability probe failed", "capability", capability, "error", err)
		return false
	}
	if card.Capabilities == nil {
		return false
	}

	switch capability {
	case CapabilityStreaming:
		return card.Capabilities.Streaming
	case CapabilityPushNotifications:
		return card.Capabilities.PushNotifications
	case CapabilityStateTransitionHistory:
		return card.Capabilities.StateTransitionHistory
	default:
		return false
	}
}

// fetchAgentCard retrieves the card from the well-known path.
func (c *Client) fetchAgentCard(ctx context.Context) (*a2a.AgentCard, error) {
	targetURL := strings.TrimRight(c.transport.baseURL, "/") + a2a.AgentCardWellKnownPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.transport.userAgent)
	if c.transport.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.transport.authToken)
	}

	resp, err := c.transport.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch agent card: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch agent card from %s: HTTP %d", targetURL, resp.StatusCode)
	}

	var card a2a.AgentCard
	dec := jsontext.NewDecoder(resp.Body)
	if err := json.UnmarshalDecode(dec, &card); err != nil {
		return nil, fmt.Errorf("decode agent card: %w", err)
	}

	return &card, nil
}
