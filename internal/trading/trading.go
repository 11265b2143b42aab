// Copyright 2025 The sui-onekey-ai-trading Authors
// SPDX-License-Identifier: Apache-2.0

// Package trading defines the boundary to the transaction-building and
// order-routing logic, plus the stateless scoring heuristic used for
// trading recommendations.
package trading

import (
	"context"
)

// Side is the direction of an order.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Intent describes an order the caller wants executed.
type Intent struct {
	// Market is the trading pair, e.g. "SUI/USDC".
	Market string

	Side Side

	// Amount is the base-asset quantity in its smallest unit.
	Amount uint64

	// LimitPrice is the worst acceptable price in quote units per base
	// unit; zero means a market order.
	LimitPrice float64

	// SenderAddress is the on-chain address funding the order.
	SenderAddress string
}

// TxBuilder turns an order intent into unsigned transaction bytes ready for
// the wallet to sign.
type TxBuilder interface {
	Build(ctx context.Context, intent Intent) ([]byte, error)
}
