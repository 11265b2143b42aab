// Copyright 2025 The sui-onekey-ai-trading Authors
// SPDX-License-Identifier: Apache-2.0

package wallet_test

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/fabw222/sui-onekey-ai-trading/internal/wallet"
)

func TestHub_PublishSubscribe(t *testing.T) {
	hub := wallet.NewHub()
	defer hub.Close()

	sub := hub.Subscribe(4)
	defer sub.Close()

	want := wallet.Event{Kind: wallet.EventAttached, DeviceID: "dev-1", Label: "OneKey Classic"}
	hub.Publish(want)

	select {
	case got := <-sub.Events():
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("event mismatch (-want +got):\n%s", diff)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestHub_Fanout(t *testing.T) {
	hub := wallet.NewHub()
	defer hub.Close()

	a := hub.Subscribe(4)
	defer a.Close()
	b := hub.Subscribe(4)
	defer b.Close()

	hub.Publish(wallet.Event{Kind: wallet.EventDetached, DeviceID: "dev-1"})

	for name, sub := range map[string]*wallet.Subscription{"a": a, "b": b} {
		select {
		case got := <-sub.Events():
			if got.Kind != wallet.EventDetached {
				t.Errorf("subscriber %s: Kind = %q, want detached", name, got.Kind)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %s: timed out", name)
		}
	}
}

func TestHub_DropsOldestWhenFull(t *testing.T) {
	hub := wallet.NewHub()
	defer hub.Close()

	sub := hub.Subscribe(2)
	defer sub.Close()

	for _, id := range []string{"dev-1", "dev-2", "dev-3"} {
		hub.Publish(wallet.Event{Kind: wallet.EventAttached, DeviceID: id})
	}

	// dev-1 was dropped to make room for dev-3.
	first := <-sub.Events()
	second := <-sub.Events()
	if first.DeviceID != "dev-2" || second.DeviceID != "dev-3" {
		t.Errorf("got %q then %q, want dev-2 then dev-3", first.DeviceID, second.DeviceID)
	}
}

func TestHub_SubscriptionClose(t *testing.T) {
	hub := wallet.NewHub()
	defer hub.Close()

	sub := hub.Subscribe(4)
	sub.Close()
	sub.Close() // idempotent

	if _, ok := <-sub.Events(); ok {
		t.Error("events channel still open after Close")
	}

	// Publishing after a subscriber detaches must not panic.
	hub.Publish(wallet.Event{Kind: wallet.EventAttached, DeviceID: "dev-1"})
}

func TestHub_ConcurrentClose(t *testing.T) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 100 {
			hub := wallet.NewHub()
			subs := make([]*wallet.Subscription, 4)
			for i := range subs {
				subs[i] = hub.Subscribe(1)
			}

			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				hub.Close()
			}()
			for _, sub := range subs {
				wg.Add(1)
				go func() {
					defer wg.Done()
					sub.Close()
				}()
			}
			wg.Wait()

			for _, sub := range subs {
				if _, ok := <-sub.Events(); ok {
					t.Error("events channel still open after concurrent close")
					return
				}
			}
		}
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("hub and subscription close deadlocked")
	}
}

func TestHub_Close(t *testing.T) {
	hub := wallet.NewHub()

	sub := hub.Subscribe(4)
	hub.Close()

	if _, ok := <-sub.Events(); ok {
		t.Error("events channel still open after hub Close")
	}

	late := hub.Subscribe(4)
	if _, ok := <-late.Events(); ok {
		t.Error("subscription created after hub Close is not closed")
	}

	// Closing a subscription whose hub is already closed must not panic.
	sub.Close()
}
