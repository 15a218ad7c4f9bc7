// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ids defines the fixed-width identifiers used throughout the
// ledger: transaction and output sequence numbers, public-key hashes, and
// the monotone sequence ids assigned at commit time.
package ids

import (
	"encoding/binary"
	"errors"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"
)

const (
	IDLen      = 32
	ShortIDLen = 20
)

var errBadLen = errors.New("ids: wrong byte length")

// ID is a 32-byte identifier, used for transaction hashes, asset type
// codes, and Merkle accumulator roots.
type ID [IDLen]byte

// Empty is the zero-value ID.
var Empty = ID{}

func (id ID) String() string {
	return base58.Encode(id[:])
}

func (id ID) Bytes() []byte {
	b := make([]byte, IDLen)
	copy(b, id[:])
	return b
}

// ToID copies b into a new ID, failing if the length does not match.
func ToID(b []byte) (ID, error) {
	var id ID
	if len(b) != IDLen {
		return id, errBadLen
	}
	copy(id[:], b)
	return id, nil
}

// FromHash derives an ID by hashing arbitrary-length content, used to turn
// canonical transaction encodings into stable identifiers.
func FromHash(data []byte) ID {
	return ID(sha3.Sum256(data))
}

// ShortID is a 20-byte identifier, used for public-key hashes (addresses).
type ShortID [ShortIDLen]byte

func (id ShortID) String() string {
	return base58.Encode(id[:])
}

func (id ShortID) Bytes() []byte {
	b := make([]byte, ShortIDLen)
	copy(b, id[:])
	return b
}

func ToShortID(b []byte) (ShortID, error) {
	var id ShortID
	if len(b) != ShortIDLen {
		return id, errBadLen
	}
	copy(id[:], b)
	return id, nil
}

// ShortIDFromPubKey derives the address (short id) of a compressed
// secp256k1 public key, matching the teacher's address-hash convention.
func ShortIDFromPubKey(pubKey []byte) ShortID {
	h := sha3.Sum256(pubKey)
	var out ShortID
	copy(out[:], h[IDLen-ShortIDLen:])
	return out
}

// NodeID identifies a validator, distinct by type from ShortID even though
// it shares the same width, so validator addresses and user addresses are
// never accidentally interchanged.
type NodeID ShortID

func (id NodeID) String() string { return ShortID(id).String() }

// Sequence ids. Each is a distinct type even though all are uint64, so the
// compiler catches a TxoSID passed where a TxnSID is expected.

type TxnSID uint64
type TxoSID uint64
type ATxoSID uint64
type TempSID uint64 // in-block placeholder, resolved to a TxnSID/TxoSID at end_block

func (s TxnSID) Bytes() []byte  { return uint64Bytes(uint64(s)) }
func (s TxoSID) Bytes() []byte  { return uint64Bytes(uint64(s)) }
func (s ATxoSID) Bytes() []byte { return uint64Bytes(uint64(s)) }

func uint64Bytes(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// AssetTypeCode is the fixed-width opaque code identifying an asset type.
type AssetTypeCode ID

func (c AssetTypeCode) String() string { return ID(c).String() }
