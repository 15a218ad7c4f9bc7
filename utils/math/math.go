// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

// Package math provides saturating and checked arithmetic for amounts,
// where a silent overflow would otherwise corrupt ledger balances.
package math

import "errors"

var ErrOverflow = errors.New("math: overflow")

// Add64 returns a+b, or ErrOverflow if the sum does not fit in a uint64.
func Add64(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, ErrOverflow
	}
	return sum, nil
}

// Sub64 returns a-b, or ErrOverflow if b > a.
func Sub64(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrOverflow
	}
	return a - b, nil
}

// Mul64 returns a*b, or ErrOverflow if the product does not fit in a uint64.
func Mul64(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	product := a * b
	if product/a != b {
		return 0, ErrOverflow
	}
	return product, nil
}

func Min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

func Max64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}
