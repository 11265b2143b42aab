// Copyright 2025 The sui-onekey-ai-trading Authors
// SPDX-License-Identifier: Apache-2.0

// Package pushauth mints and validates the bearer tokens carried in push
// notification configs, so the terminal can tell genuine agent callbacks
// from stray traffic.
package pushauth

import (
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

const issuer = "sui-onekey-ai-trading"

// Issuer mints per-task callback tokens signed with a shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates an Issuer. The secret is shared out of band with the
// notification receiver.
func NewIssuer(secret []byte, ttl time.Duration) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("pushauth: secret is empty")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Issuer{secret: secret, ttl: ttl}, nil
}

// Mint returns a signed token binding the task to the callback URL.
func (i *Issuer) Mint(taskID, callbackURL string) (string, error) {
	now := time.Now()

	tok, err := jwt.NewBuilder().
		Issuer(issuer).
		Subject(taskID).
		Audience([]string{callbackURL}).
		IssuedAt(now).
		Expiration(now.Add(i.ttl)).
		Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256(), i.secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return string(signed), nil
}

// Verify validates a presented token and returns the task it was minted
// for. Expired tokens, wrong signatures and tokens minted for another
// audience all fail.
func (i *Issuer) Verify(token, callbackURL string) (string, error) {
	parsed, err := jwt.Parse([]byte(token),
		jwt.WithKey(jwa.HS256(), i.secret),
		jwt.WithValidate(true),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(callbackURL),
	)
	if err != nil {
		return "", fmt.Errorf("verify token: %w", err)
	}

	taskID, ok := parsed.Subject()
	if !ok || taskID == "" {
		return "", fmt.Errorf("token has no task subject")
	}

	return taskID, nil
}
