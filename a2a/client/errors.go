// Copyright 2025 The sui-onekey-ai-trading Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"errors"
	"fmt"

	"github.com/fabw222/sui-onekey-ai-trading/a2a"
)

// ErrStreamClosed is returned when reading from a stream the caller already
// closed.
var ErrStreamClosed = errors.New("stream is closed")

// Error is the uniform error shape surfaced by every client operation.
// Server-reported codes are preserved verbatim so callers can branch on
// Code; transport-level failures with no structured error body normalize to
// [a2a.InternalErrorCode].
type Error struct {
	Code    int64
	Message string
	Data    any
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("a2a client error %d: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("a2a client error %d: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements [errors.Is] for Error by comparing codes.
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// NewError creates a new Error with the given code and message.
func NewError(code int64, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// NewErrorWithCause creates a new Error with the given code, message, and
// cause.
func NewErrorWithCause(code int64, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// fromJSONRPCError lifts a server-reported envelope error into the client
// error shape, preserving code, message and data verbatim.
func fromJSONRPCError(rpcErr *a2a.JSONRPCError) *Error {
	return &Error{
		Code:    rpcErr.Code,
		Message: rpcErr.Message,
		Data:    rpcErr.Data,
	}
}

// CodeOf returns the error code carried by err, or false when err is not a
// client [*Error].
func CodeOf(err error) (int64, bool) {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Code, true
	}
	return 0, false
}

// IsTaskNotFound reports whether err is the server's task-not-found error.
func IsTaskNotFound(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == a2a.TaskNotFoundErrorCode
}

// IsTaskNotCancelable reports whether err is the server's
// task-not-cancelable error.
func IsTaskNotCancelable(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == a2a.TaskNotCancelableErrorCode
}
