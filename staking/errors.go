// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

// Package staking implements StakingEngine: the per-block control loop
// tracking validators, delegations, rewards, governance and slashing.
package staking

import "errors"

var (
	ErrInsufficientDelegation  = errors.New("staking: insufficient delegation")
	ErrInsufficientReward      = errors.New("staking: insufficient reward")
	ErrNotADelegator           = errors.New("staking: not a delegator")
	ErrUnknownValidator        = errors.New("staking: unknown validator")
	ErrCommissionRateOutOfRange = errors.New("staking: commission rate out of range")
	ErrBelowMinDelegation      = errors.New("staking: delegation below configured minimum")
)
