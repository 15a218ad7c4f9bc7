// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package staking

import "github.com/findora-network/ledgercore/ids"

// BondEntry records one historical bonding event against a validator's
// self-delegation, kept for audit/history purposes.
type BondEntry struct {
	Height uint64
	Amount uint64
}

// Validator is a validator's bookkeeping record, keyed by Tendermint-style
// NodeID.
type Validator struct {
	NodeID         ids.NodeID
	PubKey         []byte
	CommissionRate uint32 // numerator over 10000
	Memo           string
	SelfDelegation uint64
	Power          uint64
	BondEntries    []BondEntry

	// DelegateeReward accrues the validator's commission share of every
	// delegator's reward, claimable the same way a delegator claims.
	DelegateeReward uint64
}

// pendingStakerUpdate holds an UpdateStaker that takes effect from the
// next block.
type pendingStakerUpdate struct {
	CommissionRate uint32
	Memo           string
	HasRate        bool
	HasMemo        bool
}

// Delegation is a delegator's bond to one validator.
type Delegation struct {
	Delegator  []byte
	Validator  ids.NodeID
	Principal  uint64
	Pending    uint64 // accrued, unclaimed reward
	Claimed    uint64

	// EligibleFromHeight is the first height at which Principal accrues
	// reward: delegations become eligible the block after they are made.
	EligibleFromHeight uint64
}

func delegationKey(delegator []byte, validator ids.NodeID) string {
	return string(delegator) + "|" + string(validator[:])
}

// Withdrawal is a matured-or-maturing balance released by an UnDelegation,
// keyed by the holding key a partial undelegation generates or by the delegator's own key for a full
// undelegation.
type Withdrawal struct {
	HoldingKey []byte
	Amount     uint64
	ReadyAt    uint64 // height at which the maturation period elapses
}

// Config parameterizes engine-wide policy knobs left open upstream
// (MinDelegation: see DESIGN.md Open Question log).
type Config struct {
	MinDelegation          uint64
	UndelegationMaturity   uint64 // blocks
	SlashDenominator       uint32 // SlashFraction is numerator over this
	TotalSupply            uint64
}

// DefaultConfig matches the magnitudes exercised by the reward-accrual tests.
func DefaultConfig() Config {
	return Config{
		MinDelegation:        1,
		UndelegationMaturity: 21 * 14400, // ~21 days at 6s blocks, the teacher's unbonding-period order of magnitude
		SlashDenominator:     10000,
		TotalSupply:          21_000_000_000_000, // FRA's fixed max supply, units of the smallest denomination
	}
}
