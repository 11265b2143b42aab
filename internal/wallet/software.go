// Copyright 2025 The sui-onekey-ai-trading Authors
// SPDX-License-Identifier: Apache-2.0

package wallet

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// schemeED25519 is the Sui signature scheme flag prefixed to addresses and
// serialized signatures.
const schemeED25519 = 0x00

// SoftwareSigner holds an in-process ed25519 key. It stands in for a
// hardware device during development and in environments without one; the
// derivation path is accepted for [Signer] compatibility and ignored, since
// the key is loaded directly from its seed.
type SoftwareSigner struct {
	key ed25519.PrivateKey
}

var _ Signer = (*SoftwareSigner)(nil)

// NewSoftwareSigner creates a signer from a raw ed25519 seed.
func NewSoftwareSigner(seed []byte) (*SoftwareSigner, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, &DeviceError{
			Code:    ErrCodeDeviceNotFound,
			Message: fmt.Sprintf("seed must be %d bytes, got %d", ed25519.SeedSize, len(seed)),
		}
	}
	return &SoftwareSigner{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// Sign produces a Sui serialized signature (scheme flag, signature, public
// key) over the blake2b-256 digest of rawTx.
func (s *SoftwareSigner) Sign(ctx context.Context, rawTx []byte, derivationPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	digest := blake2b.Sum256(rawTx)
	sig := ed25519.Sign(s.key, digest[:])
	pub := s.key.Public().(ed25519.PublicKey)

	out := make([]byte, 0, 1+len(sig)+len(pub))
	out = append(out, schemeED25519)
	out = append(out, sig...)
	out = append(out, pub...)
	return out, nil
}

// Address returns the Sui address for the key: the blake2b-256 digest of
// the scheme flag followed by the public key.
func (s *SoftwareSigner) Address(ctx context.Context, derivationPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pub := s.key.Public().(ed25519.PublicKey)
	data := make([]byte, 0, 1+len(pub))
	data = append(data, schemeED25519)
	data = append(data, pub...)
	digest := blake2b.Sum256(data)
	return "0x" + hex.EncodeToString(digest[:]), nil
}
