// Copyright 2025 The sui-onekey-ai-trading Authors
// SPDX-License-Identifier: Apache-2.0

package trading

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
)

// orderPayload is the canonical signing payload for an order instruction.
// Field order is fixed by the struct, so equal intents always encode to
// equal bytes.
type orderPayload struct {
	Version int     `json:"version"`
	Market  string  `json:"market"`
	Side    Side    `json:"side"`
	Amount  uint64  `json:"amount"`
	Limit   float64 `json:"limitPrice,omitempty"`
	Sender  string  `json:"sender"`
}

const orderPayloadVersion = 1

// OrderBuilder encodes order intents into the bytes the wallet signs. The
// signed instruction authenticates the order to the agent, which routes it
// on-chain.
type OrderBuilder struct{}

var _ TxBuilder = (*OrderBuilder)(nil)

// NewOrderBuilder creates an OrderBuilder.
func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{}
}

// Build validates the intent and returns its canonical encoding.
func (b *OrderBuilder) Build(ctx context.Context, intent Intent) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if intent.Market == "" {
		return nil, fmt.Errorf("order intent has no market")
	}
	if intent.Side != SideBuy && intent.Side != SideSell {
		return nil, fmt.Errorf("invalid order side %q", intent.Side)
	}
	if intent.Amount == 0 {
		return nil, fmt.Errorf("order amount must be positive")
	}
	if intent.SenderAddress == "" {
		return nil, fmt.Errorf("order intent has no sender address")
	}

	data, err := sonic.ConfigFastest.Marshal(orderPayload{
		Version: orderPayloadVersion,
		Market:  intent.Market,
		Side:    intent.Side,
		Amount:  intent.Amount,
		Limit:   intent.LimitPrice,
		Sender:  intent.SenderAddress,
	})
	if err != nil {
		return nil, fmt.Errorf("encode order payload: %w", err)
	}
	return data, nil
}
