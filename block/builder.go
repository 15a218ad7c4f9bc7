// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package block

import (
	"fmt"
	"sync"

	"github.com/findora-network/ledgercore/crypto"
	"github.com/findora-network/ledgercore/ids"
	"github.com/findora-network/ledgercore/txs"
)

// DefaultCapacity is the default bound C on in-flight transactions a
// Builder holds before new submissions are rejected.
const DefaultCapacity = 8

type pendingTxn struct {
	temp   ids.TempSID
	tx     txs.Transaction
	effect *txs.Effect
	hash   ids.ID
}

// Builder is the in-flight block being assembled for the next height. Every
// method takes the Builder's own mutex, so concurrent calls are serialized.
type Builder struct {
	mu sync.Mutex

	capacity int
	height   uint64
	started  bool
	commitLk bool

	pending []pendingTxn
	nextTmp ids.TempSID

	consumedTxos       map[ids.TxoSID]struct{}
	consumedNullifiers map[crypto.Nullifier]struct{}
	seenContent        map[ids.ID]ids.TempSID // (seq_id, content) -> first acceptance
}

// NewBuilder returns an empty Builder with the given in-flight capacity.
// A capacity of 0 uses DefaultCapacity.
func NewBuilder(capacity int) *Builder {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	b := &Builder{capacity: capacity}
	b.reset()
	return b
}

func (b *Builder) reset() {
	b.pending = nil
	b.nextTmp = 0
	b.consumedTxos = make(map[ids.TxoSID]struct{})
	b.consumedNullifiers = make(map[crypto.Nullifier]struct{})
	b.seenContent = make(map[ids.ID]ids.TempSID)
}

// BeginBlock snapshots the committed height and resets conflict sets.
// Idempotent if called again without an intervening EndCommit, matching
// the ConsensusAdapter's begin_block contract.
func (b *Builder) BeginBlock(height uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.height = height
	b.started = true
	b.reset()
}

// CacheTransaction runs TxnEffect against snap and, on success, checks the
// transaction against every other transaction already cached in this
// block before appending it. Returns the TempSID handle for later
// resolution by EndBlock.
func (b *Builder) CacheTransaction(tx txs.Transaction, snap txs.Snapshot, ops crypto.Ops, prng txs.PRNG, contentHash ids.ID) (ids.TempSID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.started {
		return 0, ErrNoBlockInProgress
	}
	if b.commitLk {
		return 0, ErrCommitInProgress
	}
	if len(b.pending) >= b.capacity {
		return 0, ErrBlockFull
	}

	if temp, dup := b.seenContent[contentHash]; dup {
		return temp, fmt.Errorf("%w: identical transaction already accepted as temp id %d", ErrDuplicateTxn, temp)
	}

	effect, err := txs.ComputeEffect(tx, snap, ops, prng)
	if err != nil {
		return 0, err
	}

	for _, sid := range effect.ConsumedTxos {
		if _, dup := b.consumedTxos[sid]; dup {
			return 0, fmt.Errorf("%w: txo %d", ErrDuplicateInput, sid)
		}
	}
	for _, n := range effect.ConsumedNullifiers {
		if _, dup := b.consumedNullifiers[n]; dup {
			return 0, fmt.Errorf("%w", ErrDuplicateNullifier)
		}
	}

	temp := b.nextTmp
	b.nextTmp++

	for _, sid := range effect.ConsumedTxos {
		b.consumedTxos[sid] = struct{}{}
	}
	for _, n := range effect.ConsumedNullifiers {
		b.consumedNullifiers[n] = struct{}{}
	}
	b.seenContent[contentHash] = temp
	b.pending = append(b.pending, pendingTxn{temp: temp, tx: tx, effect: effect, hash: contentHash})

	return temp, nil
}

// EndBlock finalizes the block: it assigns TxnSIDs and TxoSIDs/ATxoSIDs in
// deterministic order starting from the given next-available counters, and
// returns the finalized Block plus the TempSID -> Result mapping the
// submission server uses to resolve pending handles.
func (b *Builder) EndBlock(nextTxnSID ids.TxnSID, nextTxoSID ids.TxoSID, nextATxoSID ids.ATxoSID) (*Block, map[ids.TempSID]Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.started {
		return nil, nil, ErrNoBlockInProgress
	}

	blk := &Block{Height: b.height}
	results := make(map[ids.TempSID]Result, len(b.pending))

	for _, p := range b.pending {
		txnSID := nextTxnSID
		nextTxnSID++

		outSids := make([]ids.TxoSID, len(p.effect.ProducedOutputs))
		for i := range p.effect.ProducedOutputs {
			outSids[i] = nextTxoSID
			nextTxoSID++
		}
		anonSids := make([]ids.ATxoSID, len(p.effect.ProducedAnon))
		for i := range p.effect.ProducedAnon {
			anonSids[i] = nextATxoSID
			nextATxoSID++
		}

		blk.Txns = append(blk.Txns, CommittedTxn{
			TxnSID:     txnSID,
			Tx:         p.tx,
			Effect:     p.effect,
			OutputSids: outSids,
			AnonSids:   anonSids,
			Hash:       p.hash,
		})
		results[p.temp] = Result{TxnSID: txnSID, Outputs: outSids}
	}

	b.started = false
	return blk, results, nil
}

// BeginCommit brackets the apply-to-store phase: between BeginCommit and
// EndCommit, no new transactions are accepted.
func (b *Builder) BeginCommit() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.commitLk = true
}

// EndCommit releases the lock BeginCommit took and clears state for the
// next block.
func (b *Builder) EndCommit() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.commitLk = false
	b.reset()
}

// PendingCount reports how many transactions are cached in the in-flight
// block, used by the HTTP force_end_block handler to report outcome.
func (b *Builder) PendingCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}
