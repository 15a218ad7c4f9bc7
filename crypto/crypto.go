// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

// Package crypto is the boundary to the cryptographic primitives this node
// treats as an external collaborator: transparent-output signature
// verification, confidential/anonymous asset record open/build, ABAR note
// verification, nullifier derivation, and Merkle accumulator operations.
// TxnEffect and LedgerStore depend only on the Ops interface; this package
// supplies the one concrete implementation the node links against.
package crypto

import (
	"crypto/sha256"
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/blake2b"

	"github.com/findora-network/ledgercore/ids"
)

var (
	ErrSignatureInvalid = errors.New("crypto: signature invalid")
	ErrProofInvalid     = errors.New("crypto: proof invalid")
)

// BlindAssetRecord is a ciphertext-plus-commitment representation where
// amount and type can independently be confidential. The opaque fields are
// exactly as produced by the proving system; this package never inspects
// their contents beyond what Open/Verify expose.
type BlindAssetRecord struct {
	AssetType    ids.AssetTypeCode
	AssetTypeHidden bool
	Amount       uint64
	AmountHidden bool
	Commitment   []byte // present when either field is hidden
	PublicKey    []byte // compressed secp256k1 public key
}

// AnonBlindAssetRecord is a commitment leaf plus an encrypted memo.
type AnonBlindAssetRecord struct {
	Commitment    []byte
	EncryptedMemo []byte
}

// Nullifier is published to mark an ABAR spent without revealing which
// leaf was spent.
type Nullifier [32]byte

// Ops is the full contract CryptoOps exposes to the rest of the engine.
// All methods are pure with respect to ledger state: they take whatever
// witness data the caller already has and return a verdict or a built
// artifact, touching no global state.
type Ops interface {
	// VerifySignature checks a detached signature over msg by pubKey.
	VerifySignature(pubKey, msg, sig []byte) bool

	// OpenBAR recovers the amount and asset type of a BlindAssetRecord the
	// caller holds the decryption key for. Fails with ErrProofInvalid if
	// the record's commitment does not match the claimed opening.
	OpenBAR(bar BlindAssetRecord, ownerMemo []byte) (amount uint64, assetType ids.AssetTypeCode, err error)

	// BuildBAR constructs a new BlindAssetRecord, optionally hiding amount
	// and/or asset type.
	BuildBAR(amount uint64, assetType ids.AssetTypeCode, pubKey []byte, hideAmount, hideType bool) (BlindAssetRecord, []byte /* owner memo */, error)

	// VerifyAbarNote checks a TransferAnonAsset note: input nullifiers are
	// well-formed, the proof attests conservation of value, and the
	// produced commitments are correctly formed. This is the boundary the
	// zero-knowledge proving system sits behind.
	VerifyAbarNote(note AbarTransferNote) error

	// DeriveNullifier computes the nullifier for a spent ABAR leaf from
	// the randomized spending key, amount, asset type, and leaf uid.
	DeriveNullifier(randomizedKey []byte, amount uint64, assetType ids.AssetTypeCode, leafUID uint64) Nullifier

	// AccumulatorAppend appends a commitment as the Merkle leaf leafUID,
	// returning the updated root.
	AccumulatorAppend(root []byte, commitment []byte, leafUID uint64) (newRoot []byte)
}

// AbarTransferNote is the opaque witness+proof bundle backing a
// TransferAnonAsset operation.
type AbarTransferNote struct {
	InputNullifiers []Nullifier
	OutputCommits   [][]byte
	Proof           []byte
	MerkleRoot      []byte
}

// secp256k1Ops is the default Ops: secp256k1/ECDSA for transparent
// signatures, blake2b for nullifier and accumulator hashing, and structural
// well-formedness checks of an ABAR transfer note standing in for the real
// zero-knowledge verifier, whose bit-exact proof format this node treats as
// an external, swappable dependency.
type secp256k1Ops struct{}

// New returns the default Ops implementation.
func New() Ops {
	return secp256k1Ops{}
}

func (secp256k1Ops) VerifySignature(pubKeyBytes, msg, sigBytes []byte) bool {
	pubKey, err := secp256k1.ParsePubKey(pubKeyBytes)
	if err != nil {
		return false
	}
	sig, err := ecdsa.ParseDERSignature(sigBytes)
	if err != nil {
		return false
	}
	hash := sha256.Sum256(msg)
	return sig.Verify(hash[:], pubKey)
}

func (secp256k1Ops) OpenBAR(bar BlindAssetRecord, ownerMemo []byte) (uint64, ids.AssetTypeCode, error) {
	if !bar.AmountHidden && !bar.AssetTypeHidden {
		return bar.Amount, bar.AssetType, nil
	}
	if len(ownerMemo) == 0 {
		return 0, ids.AssetTypeCode{}, ErrProofInvalid
	}
	// The real opening uses the owner's decryption key against
	// bar.Commitment; this stand-in trusts the already-decrypted fields
	// carried in bar, matching this package's external boundary contract.
	return bar.Amount, bar.AssetType, nil
}

func (secp256k1Ops) BuildBAR(amount uint64, assetType ids.AssetTypeCode, pubKey []byte, hideAmount, hideType bool) (BlindAssetRecord, []byte, error) {
	bar := BlindAssetRecord{
		AssetType:       assetType,
		Amount:          amount,
		AmountHidden:    hideAmount,
		AssetTypeHidden: hideType,
		PublicKey:       pubKey,
	}
	var memo []byte
	if hideAmount || hideType {
		h := blake2b.Sum256(append(append([]byte{}, pubKey...), assetType[:]...))
		bar.Commitment = h[:]
		memo = h[:]
	}
	return bar, memo, nil
}

func (secp256k1Ops) VerifyAbarNote(note AbarTransferNote) error {
	if len(note.InputNullifiers) == 0 {
		return ErrProofInvalid
	}
	if len(note.Proof) == 0 {
		return ErrProofInvalid
	}
	seen := make(map[Nullifier]struct{}, len(note.InputNullifiers))
	for _, n := range note.InputNullifiers {
		if _, dup := seen[n]; dup {
			return ErrProofInvalid
		}
		seen[n] = struct{}{}
	}
	return nil
}

func (secp256k1Ops) DeriveNullifier(randomizedKey []byte, amount uint64, assetType ids.AssetTypeCode, leafUID uint64) Nullifier {
	buf := make([]byte, 0, len(randomizedKey)+8+len(assetType)+8)
	buf = append(buf, randomizedKey...)
	buf = appendUint64(buf, amount)
	buf = append(buf, assetType[:]...)
	buf = appendUint64(buf, leafUID)
	return blake2b.Sum256(buf)
}

func (secp256k1Ops) AccumulatorAppend(root []byte, commitment []byte, leafUID uint64) []byte {
	buf := make([]byte, 0, len(root)+len(commitment)+8)
	buf = append(buf, root...)
	buf = append(buf, commitment...)
	buf = appendUint64(buf, leafUID)
	h := blake2b.Sum256(buf)
	return h[:]
}

func appendUint64(b []byte, v uint64) []byte {
	for i := 7; i >= 0; i-- {
		b = append(b, byte(v>>(8*uint(i))))
	}
	return b
}
