// Copyright 2025 The sui-onekey-ai-trading Authors
// SPDX-License-Identifier: Apache-2.0

// Package client implements the protocol client used to drive a remote
// trading agent: synchronous task operations over JSON-RPC and long-lived
// streaming subscriptions delivered as server-sent events.
package client

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/fabw222/sui-onekey-ai-trading/a2a"
)

const (
	version    = "0.1.0"
	tracerName = "github.com/fabw222/sui-onekey-ai-trading/a2a/client"
)

// Client is a client for the agent task protocol. It is safe for concurrent
// use; the agent card cache is the only shared mutable state.
type Client struct {
	transport *transport
	logger    *slog.Logger
	tracer    trace.Tracer

	cardMu    sync.RWMutex
	agentCard *a2a.AgentCard
	cardGroup singleflight.Group
}

// New creates a new Client. WithBaseURL is required.
func New(opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	if o.baseURL == "" {
		return nil, &ValidationError{Field: "baseURL", Message: "base URL is required"}
	}

	if o.httpClient == nil {
		o.httpClient = &http.Client{
			Timeout: o.timeout,
		}
	}

	return &Client{
		transport: &transport{
			baseURL:    o.baseURL,
			httpClient: o.httpClient,
			userAgent:  o.userAgent,
			authToken:  o.authToken,
			logger:     o.logger,
		},
		logger: o.logger,
		tracer: o.tracer,
	}, nil
}

// call performs one envelope round trip and decodes the result into out.
func (c *Client) call(ctx context.Context, method string, params, out any) error {
	req, err := newRequest(method, params)
	if err != nil {
		return NewErrorWithCause(a2a.InternalErrorCode, "encode request", err)
	}

	body, err := c.transport.call(ctx, req)
	if err != nil {
		return err
	}

	return c.decodeResponse(ctx, req, body, out)
}

// SendTask initiates or continues a task with a single round trip.
func (c *Client) SendTask(ctx context.Context, params a2a.TaskSendParams) (*a2a.Task, error) {
	ctx, span := c.tracer.Start(ctx, "a2a.client.SendTask",
		trace.WithAttributes(
			attribute.String("a2a.method", a2a.MethodTasksSend),
			attribute.String("a2a.task_id", params.ID),
		))
	defer span.End()

	var task *a2a.Task
	if err := c.call(ctx, a2a.MethodTasksSend, params, &task); err != nil {
		return nil, err
	}
	normalizeTask(task)
	return task, nil
}

// GetTask retrieves the current snapshot of a task. It is an idempotent
// read: repeated calls with no intervening server-side change return equal
// snapshots.
func (c *Client) GetTask(ctx context.Context, params a2a.TaskQueryParams) (*a2a.Task, error) {
	ctx, span := c.tracer.Start(ctx, "a2a.client.GetTask",
		trace.WithAttributes(
			attribute.String("a2a.method", a2a.MethodTasksGet),
			attribute.String("a2a.task_id", params.ID),
		))
	defer span.End()

	var task *a2a.Task
	if err := c.call(ctx, a2a.MethodTasksGet, params, &task); err != nil {
		return nil, err
	}
	normalizeTask(task)
	return task, nil
}

// CancelTask requests cancellation of a task. The returned snapshot
// reflects the post-cancellation status but is not guaranteed to already be
// terminal; the server may transition asynchronously.
func (c *Client) CancelTask(ctx context.Context, params a2a.TaskIDParams) (*a2a.Task, error) {
	ctx, span := c.tracer.Start(ctx, "a2a.client.CancelTask",
		trace.WithAttributes(
			attribute.String("a2a.method", a2a.MethodTasksCancel),
			attribute.String("a2a.task_id", params.ID),
		))
	defer span.End()

	var task *a2a.Task
	if err := c.call(ctx, a2a.MethodTasksCancel, params, &task); err != nil {
		return nil, err
	}
	normalizeTask(task)
	return task, nil
}

// SendTaskSubscribe sends a task and subscribes to its update events.
//
// The returned stream is lazy: events are decoded as the caller pulls them
// with Next. The caller must Close the stream when done.
func (c *Client) SendTaskSubscribe(ctx context.Context, params a2a.TaskSendParams) (*EventStream, error) {
	ctx, span := c.tracer.Start(ctx, "a2a.client.SendTaskSubscribe",
		trace.WithAttributes(
			attribute.String("a2a.method", a2a.MethodTasksSendSubscribe),
			attribute.String("a2a.task_id", params.ID),
		))
	defer span.End()

	return c.subscribe(ctx, a2a.MethodTasksSendSubscribe, params.ID, params)
}

// ResubscribeTask resumes observing a task whose earlier subscription ended
// (for example after a connection drop) without re-sending it.
func (c *Client) ResubscribeTask(ctx context.Context, params a2a.TaskQueryParams) (*EventStream, error) {
	ctx, span := c.tracer.Start(ctx, "a2a.client.ResubscribeTask",
		trace.WithAttributes(
			attribute.String("a2a.method", a2a.MethodTasksResubscribe),
			attribute.String("a2a.task_id", params.ID),
		))
	defer span.End()

	return c.subscribe(ctx, a2a.MethodTasksResubscribe, params.ID, params)
}

func (c *Client) subscribe(ctx context.Context, method, taskID string, params any) (*EventStream, error) {
	req, err := newRequest(method, params)
	if err != nil {
		return nil, NewErrorWithCause(a2a.InternalErrorCode, "encode request", err)
	}

	body, err := c.transport.subscribe(ctx, req)
	if err != nil {
		return nil, err
	}

	return NewEventStream(taskID, body, c.logger), nil
}

// SetTaskPushNotification configures push notification delivery for a task.
// The server echoes the accepted configuration.
func (c *Client) SetTaskPushNotification(ctx context.Context, params a2a.TaskPushNotificationConfig) (*a2a.TaskPushNotificationConfig, error) {
	ctx, span := c.tracer.Start(ctx, "a2a.client.SetTaskPushNotification",
		trace.WithAttributes(
			attribute.String("a2a.method", a2a.MethodTasksPushNotificationSet),
			attribute.String("a2a.task_id", params.TaskID),
		))
	defer span.End()

	var config *a2a.TaskPushNotificationConfig
	if err := c.call(ctx, a2a.MethodTasksPushNotificationSet, params, &config); err != nil {
		return nil, err
	}
	return config, nil
}

// GetTaskPushNotification retrieves the push notification configuration for
// a task.
func (c *Client) GetTaskPushNotification(ctx context.Context, params a2a.TaskIDParams) (*a2a.TaskPushNotificationConfig, error) {
	ctx, span := c.tracer.Start(ctx, "a2a.client.GetTaskPushNotification",
		trace.WithAttributes(
			attribute.String("a2a.method", a2a.MethodTasksPushNotificationGet),
			attribute.String("a2a.task_id", params.ID),
		))
	defer span.End()

	var config *a2a.TaskPushNotificationConfig
	if err := c.call(ctx, a2a.MethodTasksPushNotificationGet, params, &config); err != nil {
		return nil, err
	}
	return config, nil
}

// normalizeTask maps unrecognized server states to TaskStateUnknown.
func normalizeTask(task *a2a.Task) {
	if task == nil {
		return
	}
	task.Status.State = task.Status.State.Normalize()
}
