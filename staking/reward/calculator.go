// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

// Package reward computes the per-block global return rate R_h, a
// function of the total staked fraction of supply.
package reward

import "math/big"

// Config parameterizes the global rate curve: a maximum rate paid when
// nothing is staked, linearly decaying towards a floor rate as the staked
// fraction of supply approaches 1.
type Config struct {
	MaxRateNum   int64 // numerator over RateDenominator, rate when staked fraction is 0
	MinRateNum   int64 // numerator over RateDenominator, rate when staked fraction is 1
}

// RateDenominator is the fixed-point denominator every rate numerator in
// this package is expressed over.
const RateDenominator = 1_000_000

// Calculator is the GlobalRate contract the staking engine depends on.
// Kept as an interface, matching the teacher's reward package, so tests
// can substitute Fixed for deterministic scenario checks.
type Calculator interface {
	// GlobalRate returns R_h as a rational number for the given staked
	// fraction of total supply.
	GlobalRate(totalStaked, totalSupply uint64) *big.Rat
}

type calculator struct {
	maxRate *big.Rat
	minRate *big.Rat
}

// NewCalculator returns the default linear-decay Calculator.
func NewCalculator(cfg Config) Calculator {
	return &calculator{
		maxRate: big.NewRat(cfg.MaxRateNum, RateDenominator),
		minRate: big.NewRat(cfg.MinRateNum, RateDenominator),
	}
}

func (c *calculator) GlobalRate(totalStaked, totalSupply uint64) *big.Rat {
	if totalSupply == 0 {
		return new(big.Rat).Set(c.maxRate)
	}
	fraction := big.NewRat(int64(min64(totalStaked, totalSupply)), int64(totalSupply))
	// rate = max - fraction*(max-min)
	span := new(big.Rat).Sub(c.maxRate, c.minRate)
	delta := new(big.Rat).Mul(fraction, span)
	return new(big.Rat).Sub(c.maxRate, delta)
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

// Fixed is a Calculator that always returns the same rate, used in tests
// that assert an exact reward amount rather than exercise
// the decay curve.
type Fixed struct {
	RateNum int64
}

func (f Fixed) GlobalRate(uint64, uint64) *big.Rat {
	return big.NewRat(f.RateNum, RateDenominator)
}
