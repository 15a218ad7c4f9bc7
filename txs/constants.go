// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

// BlackHolePubKeyStaking is the sink address a Delegation's principal
// transfer must target. It has no known private key: funds
// sent here are only ever released by the staking control loop.
var BlackHolePubKeyStaking = []byte("~BLACK_HOLE_PUBKEY_STAKING~~~~~~")

// SeqIDWindow is the number of ledger heights a transaction's seq_id stays
// valid for after being bound, absent an explicit
// per-deployment override.
const SeqIDWindow = 8

// MaxValidatorMemoLen bounds a validator's memo (name/website/description
// triple, joined) the way the original implementation's staker-update path
// does.
const MaxValidatorMemoLen = 1024
