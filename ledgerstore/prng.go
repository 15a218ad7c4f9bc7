// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgerstore

import "golang.org/x/crypto/blake2b"

// heightPRNG is the deterministic randomness source get_prng promises:
// seeded purely from ledger height, so replaying a block against identical
// prior state reproduces identical derived values.
type heightPRNG struct {
	seed    [32]byte
	counter uint64
}

func newHeightPRNG(height uint64) *heightPRNG {
	buf := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		buf[i] = byte(height)
		height >>= 8
	}
	return &heightPRNG{seed: blake2b.Sum256(buf)}
}

func (p *heightPRNG) Read(b []byte) (int, error) {
	n := 0
	for n < len(b) {
		ctr := make([]byte, 8)
		c := p.counter
		for i := 7; i >= 0; i-- {
			ctr[i] = byte(c)
			c >>= 8
		}
		p.counter++
		block := blake2b.Sum256(append(append([]byte{}, p.seed[:]...), ctr...))
		n += copy(b[n:], block[:])
	}
	return n, nil
}
