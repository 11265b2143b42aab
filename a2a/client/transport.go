// Copyright 2025 The sui-onekey-ai-trading Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/fabw222/sui-onekey-ai-trading/a2a"
	"github.com/fabw222/sui-onekey-ai-trading/internal/pool"
)

// transport issues HTTP requests to the agent's JSON-RPC endpoint and maps
// transport-level failures to the uniform [*Error] shape.
type transport struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	authToken  string
	logger     *slog.Logger
}

// newHTTPRequest builds a POST carrying the encoded envelope. The envelope
// is encoded into a pooled buffer; the caller must not release the buffer
// until the request has been sent. accept communicates whether the server
// should answer with a single envelope or a stream of framed events.
func (t *transport) newHTTPRequest(ctx context.Context, req *a2a.JSONRPCRequest, buf *bytes.Buffer, accept string) (*http.Request, error) {
	if err := sonic.ConfigFastest.NewEncoder(buf).Encode(req); err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("create HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", accept)
	httpReq.Header.Set("User-Agent", t.userAgent)
	if t.authToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+t.authToken)
	}

	return httpReq, nil
}

// call performs a single request/response round trip and returns the raw
// response body.
func (t *transport) call(ctx context.Context, req *a2a.JSONRPCRequest) ([]byte, error) {
	buf := pool.Bytes.Get()
	defer pool.Bytes.Put(buf)

	httpReq, err := t.newHTTPRequest(ctx, req, buf, "application/json")
	if err != nil {
		return nil, NewErrorWithCause(a2a.InternalErrorCode, "build request", err)
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		t.logger.ErrorContext(ctx, "send HTTP request", "method", req.Method, "error", err)
		return nil, NewErrorWithCause(a2a.InternalErrorCode, "send HTTP request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, t.errorFromStatus(ctx, resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewErrorWithCause(a2a.InternalErrorCode, "read response body", err)
	}

	return body, nil
}

// subscribe performs a streaming request and hands the open response body to
// the caller. The caller owns the body and must close it.
func (t *transport) subscribe(ctx context.Context, req *a2a.JSONRPCRequest) (io.ReadCloser, error) {
	// The request body is fully sent once Do returns, so the buffer can go
	// back to the pool even though the response body stays open.
	buf := pool.Bytes.Get()
	defer pool.Bytes.Put(buf)

	httpReq, err := t.newHTTPRequest(ctx, req, buf, "text/event-stream")
	if err != nil {
		return nil, NewErrorWithCause(a2a.InternalErrorCode, "build request", err)
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		t.logger.ErrorContext(ctx, "send stream request", "method", req.Method, "error", err)
		return nil, NewErrorWithCause(a2a.InternalErrorCode, "send stream request", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, t.errorFromStatus(ctx, resp)
	}

	return resp.Body, nil
}

// errorFromStatus maps a non-success HTTP status to an [*Error]. When the
// body parses as an error envelope, the server's code and message supersede
// the generic status-derived ones.
func (t *transport) errorFromStatus(ctx context.Context, resp *http.Response) *Error {
	body, readErr := io.ReadAll(resp.Body)
	if readErr == nil && len(body) > 0 {
		var env struct {
			Error *a2a.JSONRPCError `json:"error"`
		}
		if err := sonic.ConfigFastest.Unmarshal(body, &env); err == nil && env.Error != nil {
			return fromJSONRPCError(env.Error)
		}
	}

	t.logger.ErrorContext(ctx, "HTTP request failed", "status", resp.Status)
	return NewError(a2a.InternalErrorCode, "HTTP request failed with status "+resp.Status)
}
