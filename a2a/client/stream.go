// Copyright 2025 The sui-onekey-ai-trading Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/bytedance/sonic"

	"github.com/fabw222/sui-onekey-ai-trading/a2a"
)

// EventStream is a lazy, single-pass sequence of task events decoded from a
// server-sent event stream. It is not restartable.
//
// Consumption is pull-based: each Next call reads at most one frame beyond
// the previous one, so the stream never buffers more than one
// partially-received frame on the caller's behalf. Callers that stop early
// must Close the stream to release the underlying response body.
type EventStream struct {
	taskID string
	reader *bufio.Reader
	closer io.Closer
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

// NewEventStream wraps an open event-stream body. Most callers obtain
// streams from [Client.SendTaskSubscribe] instead. A nil logger falls back
// to [slog.Default].
func NewEventStream(taskID string, rc io.ReadCloser, logger *slog.Logger) *EventStream {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventStream{
		taskID: taskID,
		reader: bufio.NewReader(rc),
		closer: rc,
		logger: logger,
	}
}

// TaskID returns the task identifier the subscription was opened for.
func (s *EventStream) TaskID() string {
	return s.taskID
}

// Close releases the underlying response body. It is safe to call more than
// once and after the stream has ended.
func (s *EventStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.closer.Close()
}

// Next blocks until the next event is available and returns it.
//
// It returns io.EOF when the server closes the stream (a trailing
// incomplete frame is discarded as benign truncation), [ErrStreamClosed]
// after Close, and an [*Error] carrying the server's code verbatim when the
// stream delivers an error envelope. An error return is terminal: the
// stream yields no further events.
func (s *EventStream) Next(ctx context.Context) (a2a.TaskEvent, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrStreamClosed
	}
	s.mu.Unlock()

	var data []byte

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		line, err := s.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				// Leftover bytes belong to an incomplete final frame.
				// That truncation is not a client-visible failure.
				s.Close()
				return nil, io.EOF
			}
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return nil, ErrStreamClosed
			}
			s.Close()
			return nil, NewErrorWithCause(a2a.InternalErrorCode, "read event stream", err)
		}

		line = strings.TrimRight(line, "\r\n")

		if line == "" {
			// Blank line terminates a frame.
			if len(data) == 0 {
				continue
			}
			ev, err := s.decodeFrame(ctx, data)
			data = nil
			if err != nil {
				s.Close()
				return nil, err
			}
			if ev != nil {
				return ev, nil
			}
			// Recoverable frame problem, keep reading.
			continue
		}

		if rest, ok := strings.CutPrefix(line, "data:"); ok {
			rest = strings.TrimPrefix(rest, " ")
			if len(data) > 0 {
				data = append(data, '\n')
			}
			data = append(data, rest...)
		}
		// Other SSE fields (event:, id:, retry:, comments) are ignored.
	}
}

// decodeFrame parses one complete frame. A nil, nil return means the frame
// was skipped: malformed payloads and frames with neither result nor error
// are protocol violations that must not abort the subscription.
func (s *EventStream) decodeFrame(ctx context.Context, data []byte) (a2a.TaskEvent, error) {
	var env struct {
		JSONRPC string            `json:"jsonrpc"`
		ID      string            `json:"id"`
		Result  json.RawMessage   `json:"result"`
		Error   *a2a.JSONRPCError `json:"error"`
	}
	if err := sonic.ConfigFastest.Unmarshal(data, &env); err != nil {
		s.logger.WarnContext(ctx, "skipping malformed stream frame", "task_id", s.taskID, "error", err)
		return nil, nil
	}

	// A streamed error envelope is fatal to the subscription, unlike a
	// malformed frame.
	if env.Error != nil {
		return nil, fromJSONRPCError(env.Error)
	}

	if len(env.Result) == 0 || string(env.Result) == "null" {
		s.logger.WarnContext(ctx, "skipping stream frame with no result", "task_id", s.taskID)
		return nil, nil
	}

	ev, err := a2a.DecodeTaskEvent(env.Result)
	if err != nil {
		s.logger.WarnContext(ctx, "skipping undecodable stream frame", "task_id", s.taskID, "error", err)
		return nil, nil
	}

	return ev, nil
}
