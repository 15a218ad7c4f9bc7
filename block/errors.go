// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

// Package block implements BlockBuilder: the in-flight block a node builds
// for the next height, buffering candidate transactions, enforcing
// within-block conflict rules, and finalizing a committable block in
// deterministic order.
package block

import "errors"

var (
	ErrDuplicateInput     = errors.New("block: duplicate input")
	ErrDuplicateNullifier = errors.New("block: duplicate nullifier")
	ErrDuplicateTxn       = errors.New("block: duplicate transaction")
	ErrBlockFull          = errors.New("block: at capacity")
	ErrNoBlockInProgress  = errors.New("block: no block in progress")
	ErrCommitInProgress   = errors.New("block: commit in progress, no new transactions accepted")
)
