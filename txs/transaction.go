// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"github.com/findora-network/ledgercore/codec"
	"github.com/findora-network/ledgercore/ids"
)

// Transaction is a sequence of operations sharing one SeqID, the ledger
// height window the client built it against.
type Transaction struct {
	SeqID      uint64
	Operations []Operation
}

// Handle is the opaque string issued at submission time, used to poll
// status. It is derived from the canonical serialization of the
// transaction, so resubmitting byte-identical content always yields the
// same handle.
type Handle string

// Hash returns the transaction's content-addressed id: the hash of its
// canonical serialization. Two transactions with identical operations and
// SeqID hash identically, which is what lets BlockBuilder collapse
// duplicate submissions.
func (t Transaction) Hash(m codec.Manager, version uint16) (ids.ID, error) {
	b, err := m.Marshal(version, &t)
	if err != nil {
		return ids.ID{}, err
	}
	return ids.FromHash(b), nil
}

// HandleFor derives the submission handle for a transaction from its hash.
func HandleFor(txHash ids.ID) Handle {
	return Handle(txHash.String())
}

// StaleSeqID reports whether a transaction's seq_id falls outside the
// window [currentHeight-window, currentHeight+1], the acceptance window a
// submission server enforces. currentHeight is the last committed height,
// so currentHeight+1 is the height of the block being built.
func StaleSeqID(seqID, currentHeight, window uint64) bool {
	if seqID > currentHeight+1 {
		return true
	}
	return seqID+window < currentHeight
}
