// Copyright 2025 The sui-onekey-ai-trading Authors
// SPDX-License-Identifier: Apache-2.0

package a2a_test

import (
	"testing"

	"github.com/fabw222/sui-onekey-ai-trading/a2a"
)

func TestTaskState_Normalize(t *testing.T) {
	tests := []struct {
		state a2a.TaskState
		want  a2a.TaskState
	}{
		{a2a.TaskStateSubmitted, a2a.TaskStateSubmitted},
		{a2a.TaskStateWorking, a2a.TaskStateWorking},
		{a2a.TaskStateInputRequired, a2a.TaskStateInputRequired},
		{a2a.TaskStateCompleted, a2a.TaskStateCompleted},
		{a2a.TaskStateCanceled, a2a.TaskStateCanceled},
		{a2a.TaskStateFailed, a2a.TaskStateFailed},
		{a2a.TaskStateUnknown, a2a.TaskStateUnknown},
		{a2a.TaskState("rejected"), a2a.TaskStateUnknown},
		{a2a.TaskState(""), a2a.TaskStateUnknown},
	}

	for _, tt := range tests {
		if got := tt.state.Normalize(); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestTaskState_Terminal(t *testing.T) {
	terminal := []a2a.TaskState{
		a2a.TaskStateCompleted,
		a2a.TaskStateCanceled,
		a2a.TaskStateFailed,
	}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("expected %q to be terminal", s)
		}
	}

	nonTerminal := []a2a.TaskState{
		a2a.TaskStateSubmitted,
		a2a.TaskStateWorking,
		a2a.TaskStateInputRequired,
		a2a.TaskStateUnknown,
	}
	for _, s := range nonTerminal {
		if s.Terminal() {
			t.Errorf("expected %q to be non-terminal", s)
		}
	}
}

func TestMessage_Text(t *testing.T) {
	msg := a2a.Message{
		Role: a2a.RoleAgent,
		Parts: []a2a.Part{
			a2a.NewTextPart("first"),
			a2a.NewDataPart(map[string]any{"momentum": 0.1}),
			a2a.NewTextPart("second"),
		},
	}

	if got, want := msg.Text(), "first\nsecond"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}

	empty := a2a.Message{Role: a2a.RoleUser}
	if got := empty.Text(); got != "" {
		t.Errorf("Text() on empty message = %q, want empty", got)
	}
}
