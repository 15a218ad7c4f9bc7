// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

// Package consensus defines the ConsensusAdapter boundary: the five
// lifecycle callbacks an external consensus engine drives this node
// through (check_tx, deliver_tx, begin_block, end_block, commit), and an
// in-process implementation wiring them to submission.Server. Consensus
// internals (leader election, voting, networking) are explicitly out of
// scope; this package only shapes the boundary, the way the teacher's
// vms/rpcchainvm package shapes a ChainVM boundary for its own external
// driver without implementing consensus itself.
package consensus

import "github.com/findora-network/ledgercore/txs"

// CheckResult is the outcome of check_tx: a mempool-admission decision
// against the last committed snapshot, never against in-flight state.
type CheckResult struct {
	OK     bool
	Code   uint32
	Log    string
	Handle txs.Handle
}

// DeliverResult is the outcome of deliver_tx: acceptance into the
// in-flight block being built for the current height.
type DeliverResult struct {
	OK   bool
	Code uint32
	Log  string
}

// Adapter is the boundary contract between this node and an external
// consensus engine, matching the check_tx/deliver_tx/begin_block/end_block/
// commit callback list one-to-one. A
// production deployment wires this to whatever BFT engine drives block
// production (Tendermint-style ABCI, or the teacher's own snowman
// consensus); this package supplies only the Go-shaped interface plus an
// in-process reference implementation for tests and single-node setups.
type Adapter interface {
	// CheckTx runs stateless-plus-snapshot validation without touching the
	// in-flight block; used by the consensus engine's mempool gossip.
	CheckTx(raw []byte) (CheckResult, error)

	// DeliverTx admits a transaction into the block currently being built
	// for BeginBlock's height.
	DeliverTx(raw []byte) (DeliverResult, error)

	// BeginBlock opens a new in-flight block at height.
	BeginBlock(height uint64) error

	// EndBlock finalizes the in-flight block without yet persisting it,
	// returning the height just closed.
	EndBlock() (uint64, error)

	// Commit durably applies the finalized block and returns the new
	// ledger state root consumers can gossip for cross-validator
	// agreement.
	Commit() ([]byte, error)
}

// Codec decodes the consensus engine's raw transaction bytes into a
// txs.Transaction. Kept as a narrow interface so callers can swap the
// wire codec without the Adapter depending on any one encoding.
type Codec interface {
	Unmarshal(raw []byte) (txs.Transaction, error)
}
