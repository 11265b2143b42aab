// Copyright 2025 The sui-onekey-ai-trading Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// TaskEvent is implemented by the incremental deltas delivered over a
// streaming subscription: [TaskStatusUpdateEvent] and
// [TaskArtifactUpdateEvent].
type TaskEvent interface {
	// GetTaskID returns the identifier of the task the event belongs to.
	GetTaskID() string

	taskEvent()
}

// TaskStatusUpdateEvent is sent by the server when a task's status changes.
type TaskStatusUpdateEvent struct {
	// TaskID ties the event to a task.
	TaskID string `json:"id"`

	Status TaskStatus `json:"status"`

	// Final indicates the end of the event stream for this task. The server
	// sets it alongside a terminal status.
	Final bool `json:"final,omitempty"`

	Metadata map[string]any `json:"metadata,omitempty"`
}

var _ TaskEvent = (*TaskStatusUpdateEvent)(nil)

// GetTaskID implements [TaskEvent].
func (e *TaskStatusUpdateEvent) GetTaskID() string { return e.TaskID }

func (*TaskStatusUpdateEvent) taskEvent() {}

// TaskArtifactUpdateEvent is sent by the server when a task produces or
// extends an artifact.
type TaskArtifactUpdateEvent struct {
	// TaskID ties the event to a task.
	TaskID string `json:"id"`

	Artifact Artifact `json:"artifact"`

	Metadata map[string]any `json:"metadata,omitempty"`
}

var _ TaskEvent = (*TaskArtifactUpdateEvent)(nil)

// GetTaskID implements [TaskEvent].
func (e *TaskArtifactUpdateEvent) GetTaskID() string { return e.TaskID }

func (*TaskArtifactUpdateEvent) taskEvent() {}

// DecodeTaskEvent parses a streamed result payload into the concrete event
// type. The two event shapes are distinguished by which of the "status" and
// "artifact" fields is populated.
func DecodeTaskEvent(data []byte) (TaskEvent, error) {
	var probe struct {
		Status   *TaskStatus `json:"status"`
		Artifact *Artifact   `json:"artifact"`
	}
	if err := sonic.ConfigFastest.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse task event: %w", err)
	}

	switch {
	case probe.Artifact != nil:
		var ev TaskArtifactUpdateEvent
		if err := sonic.ConfigFastest.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("parse artifact update event: %w", err)
		}
		return &ev, nil

	case probe.Status != nil:
		var ev TaskStatusUpdateEvent
		if err := sonic.ConfigFastest.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("parse status update event: %w", err)
		}
		ev.Status.State = ev.Status.State.Normalize()
		return &ev, nil

	default:
		return nil, fmt.Errorf("task event carries neither status nor artifact")
	}
}
