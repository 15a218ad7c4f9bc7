// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ledgerstore implements LedgerStore: the durable and in-memory
// representation of committed state — UTXO set, spent-UTXO
// archive, asset registry, ABAR accumulator, nullifier set, block index —
// plus the staking engine it embeds. Readers acquire a shared lock;
// apply_block and the staking mutations it drives hold the exclusive lock
// for the duration of a commit.
package ledgerstore

import "errors"

// ErrStateCorruption is returned by ApplyBlock when an invariant check
// fails mid-apply. This is treated as fatal: the caller
// is expected to halt rather than continue serving from a half-applied
// block.
var ErrStateCorruption = errors.New("ledgerstore: state corruption")

var (
	ErrUnknownTxnSID = errors.New("ledgerstore: unknown transaction sid")
	ErrUnknownAsset  = errors.New("ledgerstore: unknown asset type")
)
