// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package consensus

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/findora-network/ledgercore/crypto"
	"github.com/findora-network/ledgercore/ledgerstore"
	"github.com/findora-network/ledgercore/metrics"
	"github.com/findora-network/ledgercore/submission"
	"github.com/findora-network/ledgercore/txs"
)

// codeCheckRejected and codeDeliverRejected are the RPC-style status codes
// an adapter reports back to the driving consensus engine, mirroring the
// teacher's rpcchainvm error-code tables for its own plugin boundary.
const (
	codeCheckRejected   uint32 = 1
	codeDeliverRejected uint32 = 2
)

// InProcess is the reference Adapter implementation: it drives
// submission.Server directly, in the same process, with no network hop.
// It exists so a single-node deployment or an integration test can exercise
// the full check_tx/deliver_tx/begin_block/end_block/commit lifecycle
// without standing up a separate consensus engine; a production deployment
// replaces this with a real ABCI/gRPC bridge implementing the same Adapter
// interface.
type InProcess struct {
	mu      sync.Mutex
	log     *zap.Logger
	codec   Codec
	sub     *submission.Server
	store   *ledgerstore.Store
	metrics metrics.Metrics
}

// NewInProcess returns an Adapter wired to an already-constructed
// submission.Server and its backing ledgerstore.Store. A nil m records
// nothing, via metrics.Noop.
func NewInProcess(sub *submission.Server, store *ledgerstore.Store, codec Codec, log *zap.Logger, m metrics.Metrics) *InProcess {
	if log == nil {
		log = zap.NewNop()
	}
	if m == nil {
		m = metrics.Noop{}
	}
	return &InProcess{log: log, codec: codec, sub: sub, store: store, metrics: m}
}

// CheckTx decodes raw and runs txs.ComputeEffect on it against the last
// committed snapshot. It neither inserts the transaction into the
// in-flight block nor records a status in submission.Server, so the
// returned CheckResult carries no Handle.
func (a *InProcess) CheckTx(raw []byte) (CheckResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	tx, err := a.codec.Unmarshal(raw)
	if err != nil {
		return CheckResult{OK: false, Code: codeCheckRejected, Log: err.Error()}, nil
	}
	if _, err := txs.ComputeEffect(tx, a.store, crypto.New(), a.store.GetPRNG()); err != nil {
		a.log.Debug("check_tx rejected", zap.Error(err))
		a.metrics.IncTransactionsRejected("check_tx")
		return CheckResult{OK: false, Code: codeCheckRejected, Log: err.Error()}, nil
	}
	return CheckResult{OK: true}, nil
}

// DeliverTx runs the transaction through HandleTransaction, which inserts
// it into the in-flight block on success.
func (a *InProcess) DeliverTx(raw []byte) (DeliverResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	tx, err := a.codec.Unmarshal(raw)
	if err != nil {
		return DeliverResult{OK: false, Code: codeDeliverRejected, Log: err.Error()}, nil
	}
	if _, err := a.sub.HandleTransaction(tx); err != nil {
		a.metrics.IncTransactionsRejected("deliver_tx")
		return DeliverResult{OK: false, Code: codeDeliverRejected, Log: err.Error()}, nil
	}
	a.metrics.IncTransactionsCommitted()
	return DeliverResult{OK: true}, nil
}

// BeginBlock opens a new in-flight block at height.
func (a *InProcess) BeginBlock(height uint64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sub.BeginBlock(height)
	return nil
}

// EndBlock finalizes and applies the in-flight block, returning the height
// just closed. Unlike a split ABCI end_block/commit pair, this adapter
// applies the block to LedgerStore here rather than deferring to Commit,
// because submission.Server.EndBlock already runs both under one writer
// critical section; Commit below only
// reports the resulting root.
func (a *InProcess) EndBlock() (uint64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	result, err := a.sub.EndBlock()
	if err != nil {
		return 0, fmt.Errorf("consensus: end_block: %w", err)
	}
	a.log.Info("block applied",
		zap.Uint64("height", result.Height),
		zap.Int("transactions", len(result.Applied)))
	a.metrics.IncBlocksCommitted()
	a.metrics.ObserveBlockHeight(result.Height)
	a.metrics.SetStakedSupply(a.store.StakingEngine().TotalStaked())
	a.metrics.SetValidatorCount(a.store.StakingEngine().ValidatorCount())
	return result.Height, nil
}

// Commit returns the state root LedgerStore computed for the height
// EndBlock just closed. It performs no further mutation: the apply already
// happened in EndBlock.
func (a *InProcess) Commit() ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.StateRoot(), nil
}

var _ Adapter = (*InProcess)(nil)
