// Copyright 2025 The sui-onekey-ai-trading Authors
// SPDX-License-Identifier: Apache-2.0

package wallet_test

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/blake2b"

	"github.com/fabw222/sui-onekey-ai-trading/internal/wallet"
)

func testSeed() []byte {
	return bytes.Repeat([]byte{0x42}, ed25519.SeedSize)
}

func TestSoftwareSigner_Sign(t *testing.T) {
	signer, err := wallet.NewSoftwareSigner(testSeed())
	if err != nil {
		t.Fatalf("NewSoftwareSigner: %v", err)
	}

	rawTx := []byte("unsigned transaction bytes")
	sig, err := signer.Sign(context.Background(), rawTx, wallet.DefaultDerivationPath)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	// Serialized form is flag || signature || public key.
	if want := 1 + ed25519.SignatureSize + ed25519.PublicKeySize; len(sig) != want {
		t.Fatalf("signature length = %d, want %d", len(sig), want)
	}
	if sig[0] != 0x00 {
		t.Errorf("scheme flag = %#x, want 0x00", sig[0])
	}

	pub := ed25519.PublicKey(sig[1+ed25519.SignatureSize:])
	digest := blake2b.Sum256(rawTx)
	if !ed25519.Verify(pub, digest[:], sig[1:1+ed25519.SignatureSize]) {
		t.Error("signature does not verify against embedded public key")
	}
}

func TestSoftwareSigner_Address(t *testing.T) {
	signer, err := wallet.NewSoftwareSigner(testSeed())
	if err != nil {
		t.Fatalf("NewSoftwareSigner: %v", err)
	}

	addr, err := signer.Address(context.Background(), wallet.DefaultDerivationPath)
	if err != nil {
		t.Fatalf("Address: %v", err)
	}
	if !strings.HasPrefix(addr, "0x") || len(addr) != 2+64 {
		t.Errorf("address = %q, want 0x-prefixed 32-byte hex", addr)
	}

	// Same seed, same address.
	again, err := signer.Address(context.Background(), wallet.DefaultDerivationPath)
	if err != nil {
		t.Fatalf("Address: %v", err)
	}
	if addr != again {
		t.Errorf("address not stable: %q then %q", addr, again)
	}
}

func TestSoftwareSigner_BadSeed(t *testing.T) {
	_, err := wallet.NewSoftwareSigner([]byte("short"))
	var derr *wallet.DeviceError
	if !errors.As(err, &derr) {
		t.Fatalf("error = %v, want *DeviceError", err)
	}
	if derr.Code != wallet.ErrCodeDeviceNotFound {
		t.Errorf("Code = %d, want %d", derr.Code, wallet.ErrCodeDeviceNotFound)
	}
}

func TestSoftwareSigner_ContextCanceled(t *testing.T) {
	signer, err := wallet.NewSoftwareSigner(testSeed())
	if err != nil {
		t.Fatalf("NewSoftwareSigner: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := signer.Sign(ctx, []byte("tx"), wallet.DefaultDerivationPath); !errors.Is(err, context.Canceled) {
		t.Errorf("Sign = %v, want context.Canceled", err)
	}
	if _, err := signer.Address(ctx, wallet.DefaultDerivationPath); !errors.Is(err, context.Canceled) {
		t.Errorf("Address = %v, want context.Canceled", err)
	}
}
