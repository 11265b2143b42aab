// Copyright 2025 The sui-onekey-ai-trading Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const defaultTimeout = 30 * time.Second

// Option configures a Client.
type Option func(*options) error

// options holds all configuration for a Client.
type options struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	authToken  string
	userAgent  string
	logger     *slog.Logger
	tracer     trace.Tracer
}

// defaultOptions returns default client options.
func defaultOptions() *options {
	return &options{
		timeout:   defaultTimeout,
		userAgent: "sui-onekey-ai-trading/a2a-client " + version,
		logger:    slog.Default(),
		tracer:    otel.GetTracerProvider().Tracer(tracerName),
	}
}

// WithBaseURL sets the base URL for the agent.
func WithBaseURL(url string) Option {
	return func(o *options) error {
		if url == "" {
			return &ValidationError{Field: "baseURL", Message: "base URL cannot be empty"}
		}
		o.baseURL = url
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) error {
		if client == nil {
			return &ValidationError{Field: "httpClient", Message: "HTTP client cannot be nil"}
		}
		o.httpClient = client
		return nil
	}
}

// WithTimeout sets the default timeout for single (non-streaming) requests.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) error {
		if timeout <= 0 {
			return &ValidationError{Field: "timeout", Message: "timeout must be positive"}
		}
		o.timeout = timeout
		return nil
	}
}

// WithAuthToken sets a static bearer token attached to every request.
func WithAuthToken(token string) Option {
	return func(o *options) error {
		o.authToken = token
		return nil
	}
}

// WithLogger sets the logger used for request and stream diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return &ValidationError{Field: "logger", Message: "logger cannot be nil"}
		}
		o.logger = logger
		return nil
	}
}

// WithTracer sets the OpenTelemetry tracer for client operations.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		if tracer == nil {
			return &ValidationError{Field: "tracer", Message: "tracer cannot be nil"}
		}
		o.tracer = tracer
		return nil
	}
}

// ValidationError represents a client configuration error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "validation error for field " + e.Field + ": " + e.Message
	}
	return "validation error: " + e.Message
}
