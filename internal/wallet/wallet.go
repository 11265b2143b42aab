// Copyright 2025 The sui-onekey-ai-trading Authors
// SPDX-License-Identifier: Apache-2.0

// Package wallet defines the boundary to the hardware-wallet device
// transport. Device discovery, address derivation and transaction signing
// live behind the [Signer] interface; this package carries no device
// protocol of its own.
package wallet

import (
	"context"
	"fmt"
)

// DefaultDerivationPath is the Sui derivation path used when the
// configuration does not override it.
const DefaultDerivationPath = "m/44'/784'/0'/0'/0'"

// Signer signs raw transaction bytes with a key derived on the device.
type Signer interface {
	// Sign produces a signature over rawTx using the key at the given
	// derivation path. It blocks until the user confirms on the device or
	// ctx is done.
	Sign(ctx context.Context, rawTx []byte, derivationPath string) ([]byte, error)

	// Address returns the address for the given derivation path.
	Address(ctx context.Context, derivationPath string) (string, error)
}

// Device error codes.
const (
	ErrCodeDeviceNotFound  = 1
	ErrCodeUserRejected    = 2
	ErrCodeDeviceBusy      = 3
	ErrCodeTransportFailed = 4
)

// DeviceError represents a failure reported by the device transport.
type DeviceError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *DeviceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("wallet device error %d: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("wallet device error %d: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *DeviceError) Unwrap() error {
	return e.Cause
}
