// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package crypto_test

import (
	"crypto/sha256"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/require"

	"github.com/findora-network/ledgercore/crypto"
	"github.com/findora-network/ledgercore/ids"
)

func TestVerifySignature(t *testing.T) {
	require := require.New(t)

	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(err)

	msg := []byte("transfer 100 AAAA")
	hash := sha256.Sum256(msg)
	sig := ecdsa.Sign(priv, hash[:])

	ops := crypto.New()
	require.True(ops.VerifySignature(priv.PubKey().SerializeCompressed(), msg, sig.Serialize()))
	require.False(ops.VerifySignature(priv.PubKey().SerializeCompressed(), []byte("tampered"), sig.Serialize()))
}

func TestDeriveNullifierDeterministic(t *testing.T) {
	require := require.New(t)

	ops := crypto.New()
	key := []byte("randomized-key")
	asset := ids.AssetTypeCode(ids.GenerateTestID())

	a := ops.DeriveNullifier(key, 100, asset, 7)
	b := ops.DeriveNullifier(key, 100, asset, 7)
	require.Equal(a, b)

	c := ops.DeriveNullifier(key, 100, asset, 8)
	require.NotEqual(a, c)
}

func TestVerifyAbarNoteRejectsDuplicateNullifiers(t *testing.T) {
	ops := crypto.New()
	var n crypto.Nullifier
	note := crypto.AbarTransferNote{
		InputNullifiers: []crypto.Nullifier{n, n},
		Proof:           []byte("proof"),
	}
	require.ErrorIs(t, ops.VerifyAbarNote(note), crypto.ErrProofInvalid)
}
