// Copyright 2025 The sui-onekey-ai-trading Authors
// SPDX-License-Identifier: Apache-2.0

package trading

import (
	"math"
)

// Signal carries the market inputs the scorer consumes. All fields are
// point-in-time observations; the scorer keeps no state between calls.
type Signal struct {
	// Momentum is the price change over the lookback window, as a
	// fraction (0.05 means +5%).
	Momentum float64

	// VolumeRatio is current volume divided by the trailing average;
	// 1.0 means average volume.
	VolumeRatio float64

	// Volatility is the annualized standard deviation of returns, as a
	// fraction.
	Volatility float64
}

// Action is the recommendation bucket a score falls into.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionHold Action = "hold"
	ActionSell Action = "sell"
)

// Recommendation is the scorer's output.
type Recommendation struct {
	// Score is in [0, 100]; 50 is neutral.
	Score float64

	Action Action
}

// Scoring weights and bands.
const (
	momentumWeight   = 55.0
	volumeWeight     = 25.0
	volatilityWeight = 20.0

	buyThreshold  = 62.5
	sellThreshold = 37.5
)

// Score applies the recommendation heuristic to a signal. It is pure and
// deterministic: equal signals always produce equal recommendations.
//
// Momentum dominates. Above-average volume amplifies whichever direction
// momentum points; high volatility pulls the score toward neutral.
func Score(sig Signal) Recommendation {
	// Squash momentum into (-1, 1); ±10% momentum is already a strong move.
	momentum := math.Tanh(sig.Momentum * 10)

	// Volume confirmation in [0, 1]: 1x average is 0.5.
	volume := sig.VolumeRatio / 2
	if volume > 1 {
		volume = 1
	}
	if volume < 0 {
		volume = 0
	}

	// Volatility damping in [0, 1]: calm markets are 1, >=50% vol is 0.
	damping := 1 - sig.Volatility*(volatilityWeight/10)
	if damping > 1 {
		damping = 1
	}
	if damping < 0 {
		damping = 0
	}

	directional := momentum * (momentumWeight + volumeWeight*volume) * damping
	score := 50 + directional*(50/(momentumWeight+volumeWeight))

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	action := ActionHold
	switch {
	case score >= buyThreshold:
		action = ActionBuy
	case score <= sellThreshold:
		action = ActionSell
	}

	return Recommendation{Score: score, Action: action}
}
