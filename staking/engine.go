// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package staking

import (
	"fmt"
	"math/big"

	"github.com/findora-network/ledgercore/ids"
	"github.com/findora-network/ledgercore/staking/reward"
	"github.com/findora-network/ledgercore/txs"
)

// Engine is the per-block staking control loop: validator and
// delegation bookkeeping, reward accrual, governance and slashing.
// LedgerStore owns one Engine and answers txs.Snapshot's staking-related
// methods by delegating to it; Engine never reaches back into txs.Snapshot,
// so the dependency runs one way (staking -> txs), avoiding an import cycle
// with LedgerStore in the middle.
type Engine struct {
	cfg   Config
	calc  reward.Calculator
	hist  *History

	validators map[ids.NodeID]*Validator
	pending    map[ids.NodeID]pendingStakerUpdate
	delegs     map[string]*Delegation
	withdrawals map[string][]Withdrawal

	totalDelegated map[ids.NodeID]uint64
}

// NewEngine constructs an Engine with no validators; callers seed the
// initial set via SeedGenesis during genesis bootstrap.
func NewEngine(cfg Config, calc reward.Calculator) *Engine {
	return &Engine{
		cfg:            cfg,
		calc:           calc,
		hist:           NewHistory(DefaultHistoryDepth),
		validators:     make(map[ids.NodeID]*Validator),
		pending:        make(map[ids.NodeID]pendingStakerUpdate),
		delegs:         make(map[string]*Delegation),
		withdrawals:    make(map[string][]Withdrawal),
		totalDelegated: make(map[ids.NodeID]uint64),
	}
}

// History returns the engine's bounded in-memory history channels, read by
// ApiCache's post-commit hook.
func (e *Engine) History() *History { return e.hist }

// SeedGenesis registers one genesis-only validator self-delegation per
// allocation, deriving the validator's NodeID from its public key with
// ids.ShortIDFromPubKey. It must only be
// called for a FraDistribution already accepted by TxnEffect at height 0.
func (e *Engine) SeedGenesis(allocations []txs.FraAllocation) {
	for _, a := range allocations {
		nodeID := ids.NodeID(ids.ShortIDFromPubKey(a.Recipient))
		v, ok := e.validators[nodeID]
		if !ok {
			v = &Validator{NodeID: nodeID, PubKey: a.Recipient, Power: a.Amount}
			e.validators[nodeID] = v
		}
		key := delegationKey(a.Recipient, nodeID)
		d, ok := e.delegs[key]
		if !ok {
			d = &Delegation{Delegator: a.Recipient, Validator: nodeID, EligibleFromHeight: 1}
			e.delegs[key] = d
		}
		d.Principal += a.Amount
		e.totalDelegated[nodeID] += a.Amount
		v.SelfDelegation = e.selfDelegationOf(v)
	}
}

// --- txs.Snapshot staking surface ---

func (e *Engine) GetValidatorPubKey(n ids.NodeID) ([]byte, bool) {
	v, ok := e.validators[n]
	if !ok {
		return nil, false
	}
	return v.PubKey, true
}

func (e *Engine) HasDelegation(delegator []byte, validator ids.NodeID) bool {
	_, ok := e.delegs[delegationKey(delegator, validator)]
	return ok
}

func (e *Engine) DelegationAmount(delegator []byte, validator ids.NodeID) uint64 {
	d, ok := e.delegs[delegationKey(delegator, validator)]
	if !ok {
		return 0
	}
	return d.Principal
}

func (e *Engine) MinDelegationAmount() uint64 { return e.cfg.MinDelegation }

// TotalStaked sums every validator's delegated stake, for the metrics
// gauge tracking network-wide staked supply.
func (e *Engine) TotalStaked() uint64 {
	var total uint64
	for _, amt := range e.totalDelegated {
		total += amt
	}
	return total
}

// ValidatorCount reports how many validators are currently registered.
func (e *Engine) ValidatorCount() int { return len(e.validators) }

// --- block-level apply, called by LedgerStore in the staking-ops apply
// pass ---

// Apply commits one already-TxnEffect-validated staking operation at the
// given height. Operations arriving here are assumed well-formed; Engine
// only enforces the invariants TxnEffect cannot check without engine state
// (over-delegation against updated balances, claim sufficiency).
func (e *Engine) Apply(op txs.Operation, height uint64) error {
	switch o := op.(type) {
	case txs.UpdateStaker:
		e.pending[o.Validator] = pendingStakerUpdate{
			CommissionRate: o.CommissionRate,
			Memo:           o.Memo,
			HasRate:        true,
			HasMemo:        o.Memo != "",
		}
	case txs.Delegation:
		key := delegationKey(o.Delegator, o.Validator)
		d, ok := e.delegs[key]
		if !ok {
			d = &Delegation{Delegator: o.Delegator, Validator: o.Validator, EligibleFromHeight: height + 1}
			e.delegs[key] = d
		}
		d.Principal += o.Amount
		e.totalDelegated[o.Validator] += o.Amount
		if v, ok := e.validators[o.Validator]; ok {
			v.SelfDelegation = e.selfDelegationOf(v)
			v.BondEntries = append(v.BondEntries, BondEntry{Height: height, Amount: o.Amount})
		}
	case txs.UnDelegation:
		key := delegationKey(o.Delegator, o.Validator)
		d, ok := e.delegs[key]
		if !ok {
			return fmt.Errorf("%w: %x/%s", ErrNotADelegator, o.Delegator, o.Validator)
		}
		amount := o.Amount
		if !o.IsPartial() {
			amount = d.Principal
		}
		if amount > d.Principal {
			return fmt.Errorf("%w: undelegating %d exceeds principal %d", ErrInsufficientDelegation, amount, d.Principal)
		}
		d.Principal -= amount
		if e.totalDelegated[o.Validator] >= amount {
			e.totalDelegated[o.Validator] -= amount
		}
		holdingKey := o.HoldingPubKey
		if !o.IsPartial() {
			holdingKey = o.Delegator
		}
		e.withdrawals[string(holdingKey)] = append(e.withdrawals[string(holdingKey)], Withdrawal{
			HoldingKey: holdingKey,
			Amount:     amount,
			ReadyAt:    height + e.cfg.UndelegationMaturity,
		})
		if d.Principal == 0 && d.Pending == 0 {
			delete(e.delegs, key)
		}
	case txs.Claim:
		key := delegationKey(o.Delegator, o.Validator)
		d, ok := e.delegs[key]
		if !ok {
			return fmt.Errorf("%w: %x/%s", ErrNotADelegator, o.Delegator, o.Validator)
		}
		if o.Amount > d.Pending {
			return fmt.Errorf("%w: claim %d exceeds pending %d", ErrInsufficientReward, o.Amount, d.Pending)
		}
		d.Pending -= o.Amount
		d.Claimed += o.Amount
	case txs.UpdateValidator:
		next := make(map[ids.NodeID]*Validator, len(o.Validators))
		for _, ve := range o.Validators {
			if existing, ok := e.validators[ve.NodeID]; ok {
				existing.Power = ve.Power
				next[ve.NodeID] = existing
				continue
			}
			next[ve.NodeID] = &Validator{NodeID: ve.NodeID, PubKey: ve.PubKey, Power: ve.Power}
		}
		e.validators = next
	case txs.Governance:
		v, ok := e.validators[o.Target]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownValidator, o.Target)
		}
		switch o.Kind {
		case txs.GovernancePowerUpdate:
			v.Power = o.NewPower
		case txs.GovernanceSlash:
			cut := mulFraction(v.SelfDelegation, o.SlashFraction, e.cfg.SlashDenominator)
			v.SelfDelegation -= cut
			e.totalDelegated[o.Target] -= min64(cut, e.totalDelegated[o.Target])
		}
	default:
		return fmt.Errorf("staking: unrecognized operation type %T", op)
	}
	return nil
}

// EndOfBlock performs the reward-accrual pass and emits the four history
// tuples for the given height, then rolls pending UpdateStaker changes
// into the live validator table. Rewards for this height are computed
// against the commission rate in effect before any UpdateStaker submitted
// in this same block — a commission change only binds starting the next
// height's accrual, never retroactively on the block that submitted it.
func (e *Engine) EndOfBlock(height uint64) {
	var totalStaked uint64
	for _, amt := range e.totalDelegated {
		totalStaked += amt
	}
	rate := e.calc.GlobalRate(totalStaked, e.cfg.TotalSupply)
	e.hist.PushGlobalRate(height, rate)

	for _, d := range e.delegs {
		if d.EligibleFromHeight > height || d.Principal == 0 {
			continue
		}
		v, ok := e.validators[d.Validator]
		var commissionNum uint32
		if ok {
			commissionNum = v.CommissionRate
		}
		gross := ratMulUint64(rate, d.Principal)
		commission := mulFraction(gross, commissionNum, 10000)
		delegatorShare := gross - commission
		d.Pending += delegatorShare
		if ok {
			v.DelegateeReward += commission
		}
		e.hist.PushRewardDetail(d.Delegator, height, delegatorShare)
	}

	for nodeID, v := range e.validators {
		e.hist.PushSelfDelegation(v.PubKey, height, v.SelfDelegation)
		e.hist.PushTotalDelegation(v.PubKey, height, e.totalDelegated[nodeID])
	}

	for validator, upd := range e.pending {
		v, ok := e.validators[validator]
		if !ok {
			continue
		}
		if upd.HasRate {
			v.CommissionRate = upd.CommissionRate
		}
		if upd.HasMemo {
			v.Memo = upd.Memo
		}
	}
	e.pending = make(map[ids.NodeID]pendingStakerUpdate)
}

func (e *Engine) selfDelegationOf(v *Validator) uint64 {
	return e.delegs[delegationKey(v.PubKey, v.NodeID)].principalOrZero()
}

func (d *Delegation) principalOrZero() uint64 {
	if d == nil {
		return 0
	}
	return d.Principal
}

func mulFraction(amount uint64, num, denom uint32) uint64 {
	if denom == 0 {
		return 0
	}
	return uint64(new(big.Int).Div(
		new(big.Int).Mul(big.NewInt(int64(amount)), big.NewInt(int64(num))),
		big.NewInt(int64(denom)),
	).Int64())
}

func ratMulUint64(r *big.Rat, amount uint64) uint64 {
	product := new(big.Rat).Mul(r, new(big.Rat).SetUint64(amount))
	return new(big.Int).Div(product.Num(), product.Denom()).Uint64()
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
