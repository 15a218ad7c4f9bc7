// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"github.com/findora-network/ledgercore/crypto"
	"github.com/findora-network/ledgercore/ids"
)

// Snapshot is the read-only view of committed state that TxnEffect checks
// operations against. LedgerStore implements it; BlockBuilder passes it to
// TxnEffect unchanged and detects within-block conflicts in its own
// bookkeeping.
type Snapshot interface {
	GetUTXO(ids.TxoSID) (TxOutput, bool)
	GetAssetRules(ids.AssetTypeCode) (AssetRules, bool)
	AssetIssuer(ids.AssetTypeCode) ([]byte, bool)
	HasNullifier(crypto.Nullifier) bool
	HasABAR(ids.ATxoSID) bool
	CurrentHeight() uint64

	// GetValidatorPubKey and HasDelegation let staking operations be
	// pre-validated without StakingEngine being reachable from txs
	// (avoiding an import cycle): LedgerStore answers on its behalf.
	GetValidatorPubKey(ids.NodeID) ([]byte, bool)
	HasDelegation(delegator []byte, validator ids.NodeID) bool
	DelegationAmount(delegator []byte, validator ids.NodeID) uint64
	MinDelegationAmount() uint64
}

// PRNG is the structured-randomness source TxnEffect draws on for
// operations that need fresh derived values during replay — e.g. the
// holding key generated for a partial undelegation. Deterministic across
// replay when seeded identically, so replay is deterministic.
type PRNG interface {
	Read(b []byte) (int, error)
}
