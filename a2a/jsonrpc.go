// Copyright 2025 The sui-onekey-ai-trading Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"encoding/json"
	"fmt"
)

// A2A RPC method names.
const (
	// MethodTasksSend is the method name for sending a task.
	MethodTasksSend = "tasks/send"

	// MethodTasksGet is the method name for getting a task.
	MethodTasksGet = "tasks/get"

	// MethodTasksCancel is the method name for canceling a task.
	MethodTasksCancel = "tasks/cancel"

	// MethodTasksSendSubscribe is the method name for sending a task and
	// subscribing to updates.
	MethodTasksSendSubscribe = "tasks/sendSubscribe"

	// MethodTasksResubscribe is the method name for resubscribing to task
	// updates.
	MethodTasksResubscribe = "tasks/resubscribe"

	// MethodTasksPushNotificationSet is the method name for setting push
	// notification configuration.
	MethodTasksPushNotificationSet = "tasks/pushNotification/set"

	// MethodTasksPushNotificationGet is the method name for getting push
	// notification configuration.
	MethodTasksPushNotificationGet = "tasks/pushNotification/get"
)

// JSONRPCMessage is the base structure for all JSON-RPC 2.0 messages.
type JSONRPCMessage struct {
	// JSONRPC version, always "2.0".
	JSONRPC string `json:"jsonrpc"`

	// ID is a unique identifier for request/response correlation.
	ID string `json:"id,omitempty"`
}

// NewJSONRPCMessage creates a new [JSONRPCMessage] with the given id.
func NewJSONRPCMessage(id string) JSONRPCMessage {
	return JSONRPCMessage{
		JSONRPC: Version,
		ID:      id,
	}
}

// JSONRPCRequest represents a JSON-RPC 2.0 request.
type JSONRPCRequest struct {
	JSONRPCMessage

	// Method identifies the operation to perform.
	Method string `json:"method"`

	// Params contains parameters for the method.
	Params json.RawMessage `json:"params,omitempty"`
}

// JSONRPCError represents a JSON-RPC 2.0 error.
type JSONRPCError struct {
	// Code is the error code.
	Code int64 `json:"code"`

	// Message is a short description of the error.
	Message string `json:"message"`

	// Data contains optional additional error details.
	Data any `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *JSONRPCError) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}

// JSONRPCResponse represents a JSON-RPC 2.0 response. Exactly one of Result
// and Error is populated; a null Result on success is valid.
type JSONRPCResponse struct {
	JSONRPCMessage

	// Result contains the successful result data (can be null).
	// Mutually exclusive with Error.
	Result json.RawMessage `json:"result,omitempty"`

	// Error contains an error object if the request failed.
	// Mutually exclusive with Result.
	Error *JSONRPCError `json:"error,omitempty"`
}

// Standard JSON-RPC 2.0 error codes.
const (
	// JSONParseErrorCode indicates invalid JSON payload.
	JSONParseErrorCode = -32700

	// InvalidRequestErrorCode indicates request payload validation error.
	InvalidRequestErrorCode = -32600

	// MethodNotFoundErrorCode indicates the method does not exist.
	MethodNotFoundErrorCode = -32601

	// InvalidParamsErrorCode indicates invalid method parameters.
	InvalidParamsErrorCode = -32602

	// InternalErrorCode indicates an internal error. Transport-level
	// failures with no structured error body normalize to this code.
	InternalErrorCode = -32603
)

// A2A specific error codes.
const (
	// TaskNotFoundErrorCode indicates the specified task ID was not found.
	TaskNotFoundErrorCode = -32001

	// TaskNotCancelableErrorCode indicates the task is in a final state and
	// cannot be canceled.
	TaskNotCancelableErrorCode = -32002

	// PushNotificationNotSupportedErrorCode indicates the agent does not
	// support push notifications.
	PushNotificationNotSupportedErrorCode = -32003

	// UnsupportedOperationErrorCode indicates the requested operation is
	// not supported.
	UnsupportedOperationErrorCode = -32004

	// ContentTypeNotSupportedErrorCode indicates a mismatch in supported
	// content types.
	ContentTypeNotSupportedErrorCode = -32005
)
