// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import "github.com/findora-network/ledgercore/ids"

// UpdateStaker changes a validator's commission rate and/or memo,
// effective from the next block. Related key: the
// validator's staking public key.
type UpdateStaker struct {
	Validator      ids.NodeID
	StakerPubKey   []byte
	CommissionRate uint32 // numerator over 10000
	Memo           string
}

func (UpdateStaker) OpType() OpType { return OpUpdateStaker }

func (op UpdateStaker) RelatedPubKeys() [][]byte {
	return [][]byte{op.StakerPubKey}
}

// Delegation locks principal to a validator by requiring a matching
// transparent transfer to the staking sink address.
// Related keys: delegator and validator.
type Delegation struct {
	Delegator       []byte
	Validator       ids.NodeID
	ValidatorPubKey []byte
	Principal       TxoInput // must target BLACK_HOLE_PUBKEY_STAKING
	Amount          uint64
}

func (Delegation) OpType() OpType { return OpDelegation }

func (op Delegation) RelatedPubKeys() [][]byte {
	return [][]byte{op.Delegator, op.ValidatorPubKey}
}

// UnDelegation withdraws a delegation, in full or in part. A partial
// undelegation carries a non-zero Amount and a fresh HoldingPubKey the
// withdrawn remainder is credited to; a full undelegation
// leaves both zero/nil and is subject to a maturation period.
type UnDelegation struct {
	Delegator       []byte
	Validator       ids.NodeID
	ValidatorPubKey []byte
	Amount          uint64 // 0 means full undelegation
	HoldingPubKey   []byte // set only for partial undelegation
}

func (UnDelegation) OpType() OpType { return OpUnDelegation }

func (op UnDelegation) IsPartial() bool { return op.Amount > 0 }

func (op UnDelegation) RelatedPubKeys() [][]byte {
	return [][]byte{op.Delegator, op.ValidatorPubKey}
}

// Claim withdraws accrued pending reward for a delegation. Related key:
// the delegator.
type Claim struct {
	Delegator       []byte
	Validator       ids.NodeID
	ValidatorPubKey []byte
	Amount          uint64
}

func (Claim) OpType() OpType { return OpClaim }

func (op Claim) RelatedPubKeys() [][]byte {
	return [][]byte{op.Delegator}
}

// UpdateValidator replaces the validator set for the next block.
// Related keys: every incoming validator's staking public key.
type UpdateValidator struct {
	Validators []ValidatorEntry
}

// ValidatorEntry is one member of the proposed next validator set.
type ValidatorEntry struct {
	NodeID   ids.NodeID
	PubKey   []byte
	Power    uint64
}

func (UpdateValidator) OpType() OpType { return OpUpdateValidator }

func (op UpdateValidator) RelatedPubKeys() [][]byte {
	keys := make([][]byte, 0, len(op.Validators))
	for _, v := range op.Validators {
		keys = append(keys, v.PubKey)
	}
	return keys
}

// GovernanceKind distinguishes a power adjustment from a slash.
type GovernanceKind uint8

const (
	GovernancePowerUpdate GovernanceKind = iota
	GovernanceSlash
)

// Governance alters a validator's power, or slashes its self-delegation by
// a fixed fraction. Related key: the target validator.
type Governance struct {
	Target        ids.NodeID
	TargetPubKey  []byte
	Kind          GovernanceKind
	NewPower      uint64 // used when Kind == GovernancePowerUpdate
	SlashFraction uint32 // numerator over 10000, used when Kind == GovernanceSlash
}

func (Governance) OpType() OpType { return OpGovernance }

func (op Governance) RelatedPubKeys() [][]byte {
	return [][]byte{op.TargetPubKey}
}
