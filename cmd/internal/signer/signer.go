// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

// Package signer loads a secp256k1 signing key from disk and produces the
// detached signatures TxoInput and Delegation.Principal carry, using the
// same curve and hash the crypto package's default Ops verifies against.
package signer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// Key is a loaded secp256k1 keypair usable to sign spend authorizations.
type Key struct {
	priv *secp256k1.PrivateKey
}

// Load reads a hex-encoded secp256k1 private key from path, trimming
// surrounding whitespace the way a key file edited by hand typically has.
func Load(path string) (Key, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Key{}, fmt.Errorf("signer: reading key file: %w", err)
	}
	b, err := hex.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		return Key{}, fmt.Errorf("signer: decoding key file: %w", err)
	}
	priv := secp256k1.PrivKeyFromBytes(b)
	return Key{priv: priv}, nil
}

// PubKey returns the compressed public key bytes this Key signs for.
func (k Key) PubKey() []byte {
	return k.priv.PubKey().SerializeCompressed()
}

// Sign returns a detached DER signature over msg, matching
// crypto.Ops.VerifySignature's sha256-then-ecdsa contract.
func (k Key) Sign(msg []byte) []byte {
	hash := sha256.Sum256(msg)
	sig := ecdsa.Sign(k.priv, hash[:])
	return sig.Serialize()
}
