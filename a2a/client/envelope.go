// Copyright 2025 The sui-onekey-ai-trading Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/fabw222/sui-onekey-ai-trading/a2a"
)

// newRequest builds a request envelope with a fresh identifier. Identifiers
// are random UUIDs and never reused within a client's lifetime.
func newRequest(method string, params any) (*a2a.JSONRPCRequest, error) {
	rawParams, err := sonic.ConfigFastest.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal %s params: %w", method, err)
	}

	return &a2a.JSONRPCRequest{
		JSONRPCMessage: a2a.NewJSONRPCMessage(uuid.NewString()),
		Method:         method,
		Params:         rawParams,
	}, nil
}

// decodeResponse parses a single response envelope, surfacing a populated
// error field verbatim and unmarshalling the result into out otherwise. A
// missing or null result is valid: out is left at its zero value.
func (c *Client) decodeResponse(ctx context.Context, req *a2a.JSONRPCRequest, body []byte, out any) error {
	var resp a2a.JSONRPCResponse
	if err := sonic.ConfigFastest.Unmarshal(body, &resp); err != nil {
		return NewErrorWithCause(a2a.InternalErrorCode, "parse response envelope", err)
	}

	if resp.JSONRPC != a2a.Version {
		return NewError(a2a.InternalErrorCode, fmt.Sprintf("unexpected protocol version %q", resp.JSONRPC))
	}

	// Advisory only: servers are expected to echo the request identifier,
	// but a mismatch does not reject the response.
	if resp.ID != "" && resp.ID != req.ID {
		c.logger.DebugContext(ctx, "response id does not match request id",
			"method", req.Method, "request_id", req.ID, "response_id", resp.ID)
	}

	if resp.Error != nil {
		return fromJSONRPCError(resp.Error)
	}

	if len(resp.Result) == 0 || string(resp.Result) == "null" {
		return nil
	}

	if err := sonic.ConfigFastest.Unmarshal(resp.Result, out); err != nil {
		return NewErrorWithCause(a2a.InternalErrorCode, "parse result", err)
	}

	return nil
}
