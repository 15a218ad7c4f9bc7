// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package block

import (
	"github.com/findora-network/ledgercore/ids"
	"github.com/findora-network/ledgercore/txs"
)

// CommittedTxn is one transaction that survived a finalized block, with
// its sequence ids assigned.
type CommittedTxn struct {
	TxnSID     ids.TxnSID
	Tx         txs.Transaction
	Effect     *txs.Effect
	OutputSids []ids.TxoSID  // parallel to Effect.ProducedOutputs
	AnonSids   []ids.ATxoSID // parallel to Effect.ProducedAnon
	Hash       ids.ID
}

// Block is a finalized, committable set of transactions in deterministic
// apply order: transaction order within the block, operation order within
// a transaction, output order within an operation.
type Block struct {
	Height uint64
	Txns   []CommittedTxn
}

// Result is what end_block reports back per accepted transaction, letting
// the submission server resolve pending handles to their committed
// position.
type Result struct {
	TxnSID  ids.TxnSID
	Outputs []ids.TxoSID
}
