// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

// Package txs defines the transaction data model: the tagged variant of
// operations a Transaction carries, and TxnEffect, the pure function that
// maps a signed transaction to its intended ledger deltas. Nothing in this
// package touches committed state or performs I/O; it is called from both
// check_tx (against a snapshot) and block replay.
package txs

import (
	"github.com/findora-network/ledgercore/crypto"
	"github.com/findora-network/ledgercore/ids"
)

// OpType tags the concrete kind of an Operation, one case per entry in
// this module's transaction catalogue.
type OpType uint8

const (
	OpDefineAsset OpType = iota
	OpIssueAsset
	OpTransferAsset
	OpBarToAbar
	OpAbarToBar
	OpTransferAnonAsset
	OpUpdateStaker
	OpDelegation
	OpUnDelegation
	OpClaim
	OpUpdateValidator
	OpGovernance
	OpFraDistribution
	OpMintFra
	OpUpdateMemo
	OpConvertAccount
)

func (t OpType) String() string {
	switch t {
	case OpDefineAsset:
		return "DefineAsset"
	case OpIssueAsset:
		return "IssueAsset"
	case OpTransferAsset:
		return "TransferAsset"
	case OpBarToAbar:
		return "BarToAbar"
	case OpAbarToBar:
		return "AbarToBar"
	case OpTransferAnonAsset:
		return "TransferAnonAsset"
	case OpUpdateStaker:
		return "UpdateStaker"
	case OpDelegation:
		return "Delegation"
	case OpUnDelegation:
		return "UnDelegation"
	case OpClaim:
		return "Claim"
	case OpUpdateValidator:
		return "UpdateValidator"
	case OpGovernance:
		return "Governance"
	case OpFraDistribution:
		return "FraDistribution"
	case OpMintFra:
		return "MintFra"
	case OpUpdateMemo:
		return "UpdateMemo"
	case OpConvertAccount:
		return "ConvertAccount"
	default:
		return "Unknown"
	}
}

// Operation is the interface every transaction operation variant
// implements: its own body plus the two contract methods every consumer
// (ApiCache, TxnEffect) needs regardless of the concrete kind.
type Operation interface {
	OpType() OpType

	// RelatedPubKeys returns the set of participant public keys, per a
	// per-operation rule ApiCache indexing relies on.
	RelatedPubKeys() [][]byte
}

// TxOutput is a transparent output: a blind asset record plus the public
// key authorized to spend it.
type TxOutput struct {
	Record crypto.BlindAssetRecord
}

func (o TxOutput) PubKey() []byte { return o.Record.PublicKey }

// AssetRules governs how an asset type may be issued and transferred.
type AssetRules struct {
	Decimals       uint8
	MaxUnits       uint64 // 0 means uncapped
	Transferable   bool
	UpdatableMemo  bool
}

// AnonOutput describes a newly produced ABAR: the commitment appended to
// the Merkle accumulator plus its encrypted memo.
type AnonOutput struct {
	Record crypto.AnonBlindAssetRecord
}
