// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package staking_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/findora-network/ledgercore/ids"
	"github.com/findora-network/ledgercore/staking"
	"github.com/findora-network/ledgercore/staking/reward"
	"github.com/findora-network/ledgercore/txs"
)

func TestDelegationAccruesRewardOverTenBlocks(t *testing.T) {
	require := require.New(t)

	cfg := staking.DefaultConfig()
	cfg.MinDelegation = 1
	e := staking.NewEngine(cfg, reward.Fixed{RateNum: 1000}) // 0.001

	validator := ids.GenerateTestNodeID()
	require.NoError(e.Apply(txs.UpdateValidator{Validators: []txs.ValidatorEntry{
		{NodeID: validator, PubKey: []byte("vpub"), Power: 100},
	}}, 0))

	delegator := []byte("delegator")
	require.NoError(e.Apply(txs.Delegation{
		Delegator:       delegator,
		Validator:       validator,
		ValidatorPubKey: []byte("vpub"),
		Amount:          1_000_000,
	}, 0))
	require.NoError(e.Apply(txs.UpdateStaker{
		Validator:      validator,
		CommissionRate: 1000, // 0.10
	}, 0))

	for h := uint64(1); h <= 10; h++ {
		e.EndOfBlock(h)
	}

	require.Equal(uint64(1_000_000), e.DelegationAmount(delegator, validator))

	// pending reward lives on the internal delegation record; exercised
	// indirectly via a Claim of 9000, which succeeds only if that much has
	// accrued: 1000 at height 1, before the commission change binds, then
	// 900 for each of heights 2-10, 9100 in all.
	require.NoError(e.Apply(txs.Claim{
		Delegator: delegator,
		Validator: validator,
		Amount:    9000,
	}, 10))
}

func TestUnDelegationRejectsOverPrincipal(t *testing.T) {
	e := staking.NewEngine(staking.DefaultConfig(), reward.Fixed{RateNum: 0})
	validator := ids.GenerateTestNodeID()
	delegator := []byte("delegator")

	require.NoError(t, e.Apply(txs.UpdateValidator{Validators: []txs.ValidatorEntry{{NodeID: validator, PubKey: []byte("v")}}}, 0))
	require.NoError(t, e.Apply(txs.Delegation{Delegator: delegator, Validator: validator, Amount: 100}, 0))

	err := e.Apply(txs.UnDelegation{Delegator: delegator, Validator: validator, Amount: 200}, 1)
	require.ErrorIs(t, err, staking.ErrInsufficientDelegation)
}

func TestClaimRejectsExceedingPending(t *testing.T) {
	e := staking.NewEngine(staking.DefaultConfig(), reward.Fixed{RateNum: 1000})
	validator := ids.GenerateTestNodeID()
	delegator := []byte("delegator")

	require.NoError(t, e.Apply(txs.UpdateValidator{Validators: []txs.ValidatorEntry{{NodeID: validator, PubKey: []byte("v")}}}, 0))
	require.NoError(t, e.Apply(txs.Delegation{Delegator: delegator, Validator: validator, Amount: 1000}, 0))
	e.EndOfBlock(1)

	err := e.Apply(txs.Claim{Delegator: delegator, Validator: validator, Amount: 1_000_000}, 2)
	require.ErrorIs(t, err, staking.ErrInsufficientReward)
}

// TestCommissionChangeTakesEffectNextBlockOnly commits an UpdateStaker
// changing commission to 0.20 and ends the same block it was submitted
// in: that block's reward must still be computed at the old (zero)
// commission rate. Only the following block's EndOfBlock sees the new
// rate.
func TestCommissionChangeTakesEffectNextBlockOnly(t *testing.T) {
	require := require.New(t)

	e := staking.NewEngine(staking.DefaultConfig(), reward.Fixed{RateNum: 1000}) // 0.001
	validator := ids.GenerateTestNodeID()
	delegator := []byte("delegator")

	require.NoError(e.Apply(txs.UpdateValidator{Validators: []txs.ValidatorEntry{
		{NodeID: validator, PubKey: []byte("vpub"), Power: 100},
	}}, 0))
	require.NoError(e.Apply(txs.Delegation{
		Delegator:       delegator,
		Validator:       validator,
		ValidatorPubKey: []byte("vpub"),
		Amount:          1_000_000,
	}, 0))

	// Both land in the same block: the delegation is already live, and the
	// commission change is submitted before this block's EndOfBlock call.
	require.NoError(e.Apply(txs.UpdateStaker{
		Validator:      validator,
		StakerPubKey:   []byte("vpub"),
		CommissionRate: 2000, // 0.20
	}, 1))
	e.EndOfBlock(1)
	e.EndOfBlock(2)

	entries := e.History().DrainRewardDetail()
	require.Len(entries, 2)

	// height 1: gross = 1,000,000 * 0.001 = 1000, commission still 0 -> full 1000 to delegator.
	require.Equal(uint64(1), entries[0].Height)
	require.Equal(uint64(1000), entries[0].Amount)

	// height 2: commission is now 0.20 -> delegator gets 1000 * 0.80 = 800.
	require.Equal(uint64(2), entries[1].Height)
	require.Equal(uint64(800), entries[1].Amount)
}
