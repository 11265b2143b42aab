// Copyright 2025 The sui-onekey-ai-trading Authors
// SPDX-License-Identifier: Apache-2.0

// Package a2a defines the task-oriented agent protocol spoken by the trading
// terminal: the task lifecycle data model, the JSON-RPC envelope types, and
// the agent card used for capability negotiation.
package a2a

// Version is the protocol version stamped on every envelope.
const Version = "2.0"

// AgentCardWellKnownPath is the standard path for retrieving an agent's
// public AgentCard.
//
// Example usage: https://agent.example.com/.well-known/agent.json
const AgentCardWellKnownPath = "/.well-known/agent.json"

// TaskState represents the lifecycle state of a Task.
//
// Transitions are server-authoritative; the client only reports what the
// server sends and never enforces ordering locally.
type TaskState string

const (
	// TaskStateSubmitted indicates the task has been received by the agent.
	TaskStateSubmitted TaskState = "submitted"

	// TaskStateWorking indicates the agent is actively working on the task.
	TaskStateWorking TaskState = "working"

	// TaskStateInputRequired indicates the agent is waiting for additional
	// input from the caller.
	TaskStateInputRequired TaskState = "input-required"

	// TaskStateCompleted indicates the task finished successfully.
	TaskStateCompleted TaskState = "completed"

	// TaskStateCanceled indicates the task was canceled.
	TaskStateCanceled TaskState = "canceled"

	// TaskStateFailed indicates the task failed.
	TaskStateFailed TaskState = "failed"

	// TaskStateUnknown is the client-side fallback for a state the client
	// does not recognize. It is never terminal.
	TaskStateUnknown TaskState = "unknown"
)

// knownTaskStates holds every state the client recognizes.
var knownTaskStates = map[TaskState]bool{
	TaskStateSubmitted:     true,
	TaskStateWorking:       true,
	TaskStateInputRequired: true,
	TaskStateCompleted:     true,
	TaskStateCanceled:      true,
	TaskStateFailed:        true,
	TaskStateUnknown:       true,
}

// Normalize maps a server-reported state the client does not recognize to
// [TaskStateUnknown].
func (s TaskState) Normalize() TaskState {
	if knownTaskStates[s] {
		return s
	}
	return TaskStateUnknown
}

// Terminal reports whether the state ends a task's lifecycle. A terminal
// status update signals that a streaming subscription will produce no
// further events for the task.
func (s TaskState) Terminal() bool {
	switch s {
	case TaskStateCompleted, TaskStateCanceled, TaskStateFailed:
		return true
	default:
		return false
	}
}

// Role represents the role of a message sender.
type Role string

// Role constants for message senders.
const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Part represents a part of a message or artifact. It can be text, inline
// data, or a file reference.
type Part struct {
	Type     string         `json:"type"`
	Text     string         `json:"text,omitempty"`
	MimeType string         `json:"mimeType,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
	FileName string         `json:"fileName,omitempty"`
	FileURI  string         `json:"fileUri,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// NewTextPart returns a text [Part].
func NewTextPart(text string) Part {
	return Part{Type: "text", Text: text}
}

// NewDataPart returns a structured data [Part].
func NewDataPart(data map[string]any) Part {
	return Part{Type: "data", Data: data}
}

// Message represents a single exchange between the user and the agent.
type Message struct {
	Role     Role           `json:"role"`
	Parts    []Part         `json:"parts"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Text joins the text content of all text parts, separated by newlines.
func (m Message) Text() string {
	var out string
	for _, p := range m.Parts {
		if p.Type != "text" {
			continue
		}
		if out != "" {
			out += "\n"
		}
		out += p.Text
	}
	return out
}

// Artifact represents an output produced by the agent during a task.
type Artifact struct {
	Name        string         `json:"name,omitempty"`
	Description string         `json:"description,omitempty"`
	Parts       []Part         `json:"parts"`
	Index       int            `json:"index"`
	Append      bool           `json:"append,omitempty"`
	LastChunk   bool           `json:"lastChunk,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// TaskStatus is a TaskState with an optional accompanying message and the
// time the status was recorded.
type TaskStatus struct {
	State TaskState `json:"state"`

	// Message carries additional status detail for the caller.
	Message *Message `json:"message,omitempty"`

	// Timestamp is an ISO 8601 datetime string.
	Timestamp string `json:"timestamp,omitempty"`
}

// Task is a unit of work owned by the remote agent. The client only ever
// holds point-in-time snapshots returned by send/get/cancel.
type Task struct {
	// ID is caller-supplied and stable for the task's lifetime.
	ID string `json:"id"`

	// SessionID groups related tasks.
	SessionID string `json:"sessionId,omitempty"`

	// Status is the task status at the time of the snapshot.
	Status TaskStatus `json:"status"`

	// Artifacts produced so far, in order.
	Artifacts []Artifact `json:"artifacts,omitempty"`

	// History is the optional message history.
	History []Message `json:"history,omitempty"`

	Metadata map[string]any `json:"metadata,omitempty"`
}

// AgentCapabilities defines optional capabilities supported by an agent.
type AgentCapabilities struct {
	// Streaming is true if the agent supports SSE subscriptions.
	Streaming bool `json:"streaming,omitempty"`

	// PushNotifications is true if the agent can notify updates to the
	// client out of band.
	PushNotifications bool `json:"pushNotifications,omitempty"`

	// StateTransitionHistory is true if the agent exposes status change
	// history for tasks.
	StateTransitionHistory bool `json:"stateTransitionHistory,omitempty"`
}

// AgentSkill represents a unit of capability that an agent can perform.
type AgentSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Examples    []string `json:"examples,omitempty"`
}

// AgentProvider represents the service provider of an agent.
type AgentProvider struct {
	Organization string `json:"organization"`
	URL          string `json:"url,omitempty"`
}

// AgentCard conveys the agent's identity, endpoint and capability flags.
// It is static for the lifetime of the agent process and safe to cache.
type AgentCard struct {
	Name         string             `json:"name"`
	Description  string             `json:"description,omitempty"`
	URL          string             `json:"url"`
	Version      string             `json:"version"`
	Provider     *AgentProvider     `json:"provider,omitempty"`
	Capabilities *AgentCapabilities `json:"capabilities,omitempty"`
	Skills       []AgentSkill       `json:"skills,omitempty"`

	DefaultInputModes  []string `json:"defaultInputModes,omitempty"`
	DefaultOutputModes []string `json:"defaultOutputModes,omitempty"`
}

// PushNotificationAuthenticationInfo defines authentication details for
// push notifications.
type PushNotificationAuthenticationInfo struct {
	// Schemes lists supported authentication schemes, e.g. Bearer.
	Schemes []string `json:"schemes"`

	// Credentials holds optional opaque credentials.
	Credentials string `json:"credentials,omitempty"`
}

// PushNotificationConfig describes where and how the agent should deliver
// out-of-band task updates. It round-trips unchanged through set/get.
type PushNotificationConfig struct {
	// URL the agent POSTs notifications to.
	URL string `json:"url"`

	// Token unique to this task/session, echoed back on delivery.
	Token string `json:"token,omitempty"`

	Authentication *PushNotificationAuthenticationInfo `json:"authentication,omitempty"`
}

// TaskPushNotificationConfig ties a [PushNotificationConfig] to a task. The
// config is mandatory in set/get round trips, so it is carried by value.
type TaskPushNotificationConfig struct {
	TaskID                 string                 `json:"id"`
	PushNotificationConfig PushNotificationConfig `json:"pushNotificationConfig"`
}

// TaskSendParams are the parameters for tasks/send and tasks/sendSubscribe.
type TaskSendParams struct {
	// ID is the caller-supplied task identifier.
	ID string `json:"id"`

	SessionID string `json:"sessionId,omitempty"`

	// Message is the user message that initiates or continues the task.
	Message Message `json:"message"`

	AcceptedOutputModes []string `json:"acceptedOutputModes,omitempty"`

	PushNotification *PushNotificationConfig `json:"pushNotification,omitempty"`

	HistoryLength int `json:"historyLength,omitempty"`

	Metadata map[string]any `json:"metadata,omitempty"`
}

// TaskQueryParams are the parameters for tasks/get and tasks/resubscribe.
type TaskQueryParams struct {
	ID            string         `json:"id"`
	HistoryLength int            `json:"historyLength,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// TaskIDParams are the parameters for operations that address a task by ID
// alone.
type TaskIDParams struct {
	ID       string         `json:"id"`
	Metadata map[string]any `json:"metadata,omitempty"`
}
