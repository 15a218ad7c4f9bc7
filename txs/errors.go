// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import "errors"

// The fixed TxnEffect error taxonomy.
var (
	ErrSignatureInvalid        = errors.New("txn effect: signature invalid")
	ErrAssetRulesViolated      = errors.New("txn effect: asset rules violated")
	ErrAmountMismatch          = errors.New("txn effect: amount mismatch")
	ErrDuplicateInputWithinTxn = errors.New("txn effect: duplicate input within transaction")
	ErrStaleSeqID              = errors.New("txn effect: stale seq id")
	ErrProofInvalid            = errors.New("txn effect: proof invalid")
	ErrInputsError             = errors.New("txn effect: malformed inputs")
)
