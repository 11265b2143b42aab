// Copyright 2025 The sui-onekey-ai-trading Authors
// SPDX-License-Identifier: Apache-2.0

package wallet

import (
	"sync"
)

// EventKind identifies a device lifecycle event.
type EventKind string

const (
	// EventAttached is published when a device becomes available.
	EventAttached EventKind = "attached"

	// EventDetached is published when a device is unplugged or locked.
	EventDetached EventKind = "detached"
)

// Event describes a device lifecycle change.
type Event struct {
	Kind     EventKind
	DeviceID string
	Label    string
}

// Hub fans device events out to subscribers. Each subscription owns a
// bounded queue; a subscriber that stops draining loses the oldest events
// rather than blocking publishers.
type Hub struct {
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	closed bool
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[*Subscription]struct{}),
	}
}

// Subscribe registers a new subscriber. The returned handle must be closed
// when the subscriber is done; closing releases the queue and detaches the
// subscriber from the hub.
func (h *Hub) Subscribe(buffer int) *Subscription {
	if buffer <= 0 {
		buffer = 16
	}

	sub := &Subscription{
		hub: h,
		ch:  make(chan Event, buffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(sub.ch)
		sub.closed = true
		return sub
	}
	h.subs[sub] = struct{}{}
	return sub
}

// Publish delivers an event to every live subscriber. When a subscriber's
// queue is full the oldest queued event is dropped to make room.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		select {
		case sub.ch <- ev:
		default:
			select {
			case <-sub.ch:
			default:
			}
			sub.ch <- ev
		}
	}
}

// Close detaches and closes every subscription. Subsequent Subscribe calls
// return already-closed handles.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for sub := range h.subs {
		sub.markClosed()
		delete(h.subs, sub)
	}
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, sub)
}

// Subscription is a handle to a device event feed. It replaces
// callback-style listeners: the consumer pulls from Events and closes the
// handle to cancel, mirroring the scoped-resource pattern of the protocol
// client's event streams.
type Subscription struct {
	hub *Hub
	ch  chan Event

	closeMu sync.Mutex
	closed  bool
}

// Events returns the subscriber's event feed. The channel is closed when
// the subscription or hub is closed.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Close cancels the subscription and releases its queue. It is safe to call
// more than once and concurrently with [Hub.Close].
func (s *Subscription) Close() {
	s.closeMu.Lock()
	if s.closed {
		s.closeMu.Unlock()
		return
	}
	s.closed = true
	s.closeMu.Unlock()

	// Lock order is always hub then subscription, so closeMu must be
	// released before detaching. Detaching before closing the channel
	// keeps Publish from sending on a closed channel.
	s.hub.remove(s)
	close(s.ch)
}

func (s *Subscription) markClosed() {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
