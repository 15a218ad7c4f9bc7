// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

// Package submission implements SubmissionServer: the facade in front of
// LedgerStore and BlockBuilder that buffers, deduplicates, and tracks
// per-transaction status through block lifecycle events.
package submission

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/findora-network/ledgercore/apicache"
	"github.com/findora-network/ledgercore/block"
	"github.com/findora-network/ledgercore/codec"
	"github.com/findora-network/ledgercore/crypto"
	"github.com/findora-network/ledgercore/ids"
	"github.com/findora-network/ledgercore/ledgerstore"
	"github.com/findora-network/ledgercore/txs"
)

// Status is the lifecycle state of a submitted transaction, polled by
// handle.
type Status struct {
	State   State
	TxnSID  ids.TxnSID
	Outputs []ids.TxoSID
	Reason  string
}

type State uint8

const (
	StatePending State = iota
	StateCommitted
	StateRejected
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "Pending"
	case StateCommitted:
		return "Committed"
	case StateRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// Server is the concrete SubmissionServer. It owns the
// BlockBuilder and forwards finalized blocks to a LedgerStore; status is
// tracked by handle with no retention cutoff.
type Server struct {
	mu sync.RWMutex

	log          *zap.Logger
	builder      *block.Builder
	store        *ledgerstore.Store
	cache        *apicache.Cache
	cryptoOps    crypto.Ops
	codecManager codec.Manager
	codecVersion uint16

	statuses map[txs.Handle]Status
	temps    map[ids.TempSID]txs.Handle
}

// SetCache wires the ApiCache EndBlock updates post-commit, inside the
// same writer critical section apply_block ran in. It is optional: with no
// cache wired, the query routes that read it answer 503.
func (s *Server) SetCache(c *apicache.Cache) { s.cache = c }

// New returns a Server with a fresh BlockBuilder of the given capacity (0
// for the default).
func New(store *ledgerstore.Store, codecManager codec.Manager, codecVersion uint16, capacity int, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		log:          log,
		builder:      block.NewBuilder(capacity),
		store:        store,
		cryptoOps:    crypto.New(),
		codecManager: codecManager,
		codecVersion: codecVersion,
		statuses:     make(map[txs.Handle]Status),
		temps:        make(map[ids.TempSID]txs.Handle),
	}
}

// BeginBlock opens a new in-flight block, mirroring the ConsensusAdapter's
// begin_block callback.
func (s *Server) BeginBlock(height uint64) {
	s.builder.BeginBlock(height)
}

// HandleTransaction runs TxnEffect against the current committed snapshot
// and, on success, inserts the transaction into the in-flight block,
// recording Pending status under the handle derived from its content hash.
func (s *Server) HandleTransaction(tx txs.Transaction) (txs.Handle, error) {
	hash, err := tx.Hash(s.codecManager, s.codecVersion)
	if err != nil {
		return "", fmt.Errorf("submission: hashing transaction: %w", err)
	}
	handle := txs.HandleFor(hash)

	temp, err := s.builder.CacheTransaction(tx, s.store, s.cryptoOps, s.store.GetPRNG(), hash)
	if err != nil {
		s.mu.Lock()
		s.statuses[handle] = Status{State: StateRejected, Reason: err.Error()}
		s.mu.Unlock()
		return handle, err
	}

	s.mu.Lock()
	s.statuses[handle] = Status{State: StatePending}
	s.temps[temp] = handle
	s.mu.Unlock()

	s.log.Debug("transaction cached", zap.String("handle", string(handle)), zap.Uint64("temp_sid", uint64(temp)))
	return handle, nil
}

// EndBlock finalizes the in-flight block, applies it to the store, and
// transitions every pending handle in it to Committed or Rejected. Callable
// by the consensus adapter's deliver_tx sequence end, or administratively
// via the force_end_block HTTP hook.
func (s *Server) EndBlock() (*ledgerstore.ApplyResult, error) {
	txnSID, txoSID, atxoSID := s.store.NextSIDs()
	blk, results, err := s.builder.EndBlock(txnSID, txoSID, atxoSID)
	if err != nil {
		return nil, fmt.Errorf("submission: finalizing block: %w", err)
	}

	s.builder.BeginCommit()
	defer s.builder.EndCommit()

	// ApplyBlockAndThen keeps the store's writer lock held across both the
	// apply and the cache update, so a concurrent reader can never observe
	// a committed transaction before its ApiCache entries exist.
	applyResult, err := s.store.ApplyBlockAndThen(blk, func(*ledgerstore.ApplyResult) {
		if s.cache != nil {
			s.cache.ApplyBlock(blk, s.store.StakingEngine().History())
		}
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	for temp, handle := range s.temps {
		res, ok := results[temp]
		if !ok {
			continue
		}
		if err != nil {
			s.statuses[handle] = Status{State: StateRejected, Reason: err.Error()}
			continue
		}
		s.statuses[handle] = Status{State: StateCommitted, TxnSID: res.TxnSID, Outputs: res.Outputs}
	}
	s.temps = make(map[ids.TempSID]txs.Handle)

	if err != nil {
		s.log.Error("apply_block failed", zap.Error(err))
		return nil, err
	}
	return applyResult, nil
}

// GetTxnStatus returns the status recorded for handle, or false if the
// handle was never seen.
func (s *Server) GetTxnStatus(handle txs.Handle) (Status, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.statuses[handle]
	return st, ok
}

// PendingCount reports how many transactions are cached in the in-flight
// block, for the force_end_block HTTP hook's human-readable outcome.
func (s *Server) PendingCount() int {
	return s.builder.PendingCount()
}

// Store returns the underlying LedgerStore, for the query HTTP surface.
func (s *Server) Store() *ledgerstore.Store { return s.store }
