// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgerstore

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/google/btree"
	"golang.org/x/crypto/blake2b"

	"github.com/findora-network/ledgercore/block"
	"github.com/findora-network/ledgercore/codec"
	"github.com/findora-network/ledgercore/crypto"
	"github.com/findora-network/ledgercore/database"
	"github.com/findora-network/ledgercore/ids"
	"github.com/findora-network/ledgercore/staking"
	"github.com/findora-network/ledgercore/staking/reward"
	"github.com/findora-network/ledgercore/txs"
	"github.com/findora-network/ledgercore/utils/wrappers"
)

var (
	utxoPrefix      = []byte("u")
	spentPrefix     = []byte("s")
	assetPrefix     = []byte("a")
	abarPrefix      = []byte("b")
	nullifierPrefix = []byte("n")
	heightKey       = []byte("height")
)

type assetEntry struct {
	Rules  txs.AssetRules
	Issuer []byte
	Memo   string
}

const abarLeafTreeDegree = 32

// abarLeaf is the ordered btree.BTreeG item backing leaf-range scans over
// committed ABARs. A light client rebuilding its own accumulator witness
// needs every leaf since some known sid in ascending order; the abars map
// gives O(1) point lookups but no ordering, so this tree is the secondary
// index that makes the range scan possible without sorting on every call.
type abarLeaf struct {
	sid ids.ATxoSID
	rec crypto.AnonBlindAssetRecord
}

func (a *abarLeaf) Less(other *abarLeaf) bool { return a.sid < other.sid }

// Store is the concrete LedgerStore. In-memory maps are the
// source of truth for reads; ApplyBlock also writes each block's UTXO,
// asset, ABAR, nullifier and height changes into db. New does not read db
// back, so a Store always starts empty at height 0.
type Store struct {
	mu sync.RWMutex

	db           database.Database
	codecManager codec.Manager
	codecVersion uint16
	cryptoOps    crypto.Ops

	height            uint64
	nextTxnSID        ids.TxnSID
	nextTxoSID        ids.TxoSID
	nextATxoSID       ids.ATxoSID
	blockCommitCount  uint64

	utxos       map[ids.TxoSID]txs.TxOutput
	spentUtxos  map[ids.TxoSID]txs.TxOutput
	assets      map[ids.AssetTypeCode]assetEntry
	abars       map[ids.ATxoSID]crypto.AnonBlindAssetRecord
	abarLeaves  *btree.BTreeG[*abarLeaf]
	nullifiers  map[crypto.Nullifier]struct{}
	accumulator []byte

	txnByHash map[ids.ID]ids.TxnSID
	txnByID   map[ids.TxnSID]block.CommittedTxn

	// accounts holds the EVM-style balances ConvertAccount moves transparent
	// value into. AccountBalance is their only reader; there is no EVM
	// execution layer here that spends them.
	accounts map[string]uint64

	staking *staking.Engine
}

// New returns an empty Store at height 0. db backs durability for the
// primary indexes; it may be a memdb for tests or pebbledb/leveldb in
// production.
func New(db database.Database, codecManager codec.Manager, codecVersion uint16, stakingCfg staking.Config, calc reward.Calculator) *Store {
	return &Store{
		db:           db,
		codecManager: codecManager,
		codecVersion: codecVersion,
		cryptoOps:    crypto.New(),

		utxos:      make(map[ids.TxoSID]txs.TxOutput),
		spentUtxos: make(map[ids.TxoSID]txs.TxOutput),
		assets:     make(map[ids.AssetTypeCode]assetEntry),
		abars:      make(map[ids.ATxoSID]crypto.AnonBlindAssetRecord),
		abarLeaves: btree.NewG(abarLeafTreeDegree, (*abarLeaf).Less),
		nullifiers: make(map[crypto.Nullifier]struct{}),

		txnByHash: make(map[ids.ID]ids.TxnSID),
		txnByID:   make(map[ids.TxnSID]block.CommittedTxn),
		accounts:  make(map[string]uint64),

		staking: staking.NewEngine(stakingCfg, calc),
	}
}

// --- txs.Snapshot, held under the reader lock ---

func (s *Store) GetUTXO(sid ids.TxoSID) (txs.TxOutput, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.utxos[sid]
	return o, ok
}

func (s *Store) GetAssetRules(code ids.AssetTypeCode) (txs.AssetRules, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.assets[code]
	return e.Rules, ok
}

func (s *Store) AssetIssuer(code ids.AssetTypeCode) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.assets[code]
	return e.Issuer, ok
}

func (s *Store) HasNullifier(n crypto.Nullifier) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.nullifiers[n]
	return ok
}

func (s *Store) HasABAR(sid ids.ATxoSID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.abars[sid]
	return ok
}

func (s *Store) GetABAR(sid ids.ATxoSID) (crypto.AnonBlindAssetRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.abars[sid]
	return rec, ok
}

// ABARLeavesSince returns every committed ABAR with sid >= from, in
// ascending sid order, so a light client can replay leaves into its own
// accumulator starting from the last leaf it already holds.
func (s *Store) ABARLeavesSince(from ids.ATxoSID) []crypto.AnonBlindAssetRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []crypto.AnonBlindAssetRecord
	s.abarLeaves.AscendGreaterOrEqual(&abarLeaf{sid: from}, func(item *abarLeaf) bool {
		out = append(out, item.rec)
		return true
	})
	return out
}

func (s *Store) CurrentHeight() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.height
}

func (s *Store) GetValidatorPubKey(n ids.NodeID) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.staking.GetValidatorPubKey(n)
}

func (s *Store) HasDelegation(delegator []byte, v ids.NodeID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.staking.HasDelegation(delegator, v)
}

func (s *Store) DelegationAmount(delegator []byte, v ids.NodeID) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.staking.DelegationAmount(delegator, v)
}

func (s *Store) MinDelegationAmount() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.staking.MinDelegationAmount()
}

// --- other read-only queries ---

func (s *Store) GetSpentUTXO(sid ids.TxoSID) (txs.TxOutput, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.spentUtxos[sid]
	return o, ok
}

func (s *Store) GetAssetType(code ids.AssetTypeCode) (txs.AssetRules, []byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.assets[code]
	return e.Rules, e.Issuer, e.Memo, ok
}

func (s *Store) GetBlockCommitCount() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.blockCommitCount
}

func (s *Store) GetTransaction(sid ids.TxnSID) (block.CommittedTxn, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.txnByID[sid]
	return t, ok
}

func (s *Store) GetTransactionByHash(hash ids.ID) (block.CommittedTxn, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sid, ok := s.txnByHash[hash]
	if !ok {
		return block.CommittedTxn{}, false
	}
	return s.txnByID[sid], true
}

// GetPRNG returns a PRNG deterministically seeded from the current ledger
// height.
func (s *Store) GetPRNG() txs.PRNG {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newHeightPRNG(s.height)
}

// NextSIDs reports the counters BlockBuilder.EndBlock needs to assign
// sequence ids starting from the store's current committed position.
func (s *Store) NextSIDs() (ids.TxnSID, ids.TxoSID, ids.ATxoSID) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextTxnSID, s.nextTxoSID, s.nextATxoSID
}

// StakingEngine exposes the embedded engine for history draining and
// validator-set bootstrap; callers must not mutate it outside ApplyBlock.
func (s *Store) StakingEngine() *staking.Engine { return s.staking }

// AccountBalance returns the EVM-style balance ConvertAccount operations
// have moved into account, 0 if none.
func (s *Store) AccountBalance(account []byte) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts[string(account)]
}

// StateRoot returns a deterministic fingerprint of committed state at the
// current height, folding in the ABAR accumulator root. A ConsensusAdapter
// implementation gossips this after Commit so validators can detect
// divergence without re-executing every block.
func (s *Store) StateRoot() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	buf := make([]byte, 16)
	binary.BigEndian.PutUint64(buf[0:8], s.height)
	binary.BigEndian.PutUint64(buf[8:16], s.blockCommitCount)
	buf = append(buf, s.accumulator...)
	h := blake2b.Sum256(buf)
	return h[:]
}

// ApplyResult summarizes a successful apply_block, letting the submission
// server resolve pending handles via ctx.TxnSID for every transaction that
// survived.
type ApplyResult struct {
	Height      uint64
	CommitCount uint64
	Applied     []block.CommittedTxn
}

// ApplyBlock atomically applies every transaction in a finalized block,
// in deterministic order: (1) define/issue, (2) transfer/conversion/anon,
// (2b) system operations (genesis bootstrap, account conversion),
// (3) staking, (4) post-hooks. Readers see either the pre- or post-apply
// state, never a partial one, because the whole pass runs under the
// single writer lock.
func (s *Store) ApplyBlock(blk *block.Block) (*ApplyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyBlockLocked(blk)
}

// ApplyBlockAndThen applies blk and, only once it has committed
// successfully, invokes after while the writer lock from the apply is
// still held. This gives a caller-supplied post-commit hook — ApiCache's
// update pass, in particular — the same writer critical section
// applyBlockLocked runs in, so a concurrent reader can never observe a
// committed transaction before its cache entries exist. after is not
// called if the apply fails.
func (s *Store) ApplyBlockAndThen(blk *block.Block, after func(*ApplyResult)) (*ApplyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result, err := s.applyBlockLocked(blk)
	if err != nil {
		return nil, err
	}
	if after != nil {
		after(result)
	}
	return result, nil
}

func (s *Store) applyBlockLocked(blk *block.Block) (*ApplyResult, error) {
	batch := s.db.NewBatch()
	var errs wrappers.Errs

	// Phase 1: define/issue asset operations.
	for _, ctx := range blk.Txns {
		for _, def := range ctx.Effect.DefinedAssets {
			if _, exists := s.assets[def.Code]; exists {
				return nil, fmt.Errorf("%w: asset %s redefined at height %d", ErrStateCorruption, def.Code, blk.Height)
			}
			s.assets[def.Code] = assetEntry{Rules: def.Rules, Issuer: def.Issuer, Memo: def.Memo}
			errs.Add(s.putAsset(batch, def.Code))
		}
		for _, upd := range ctx.Effect.MemoUpdates {
			e, ok := s.assets[upd.Code]
			if !ok {
				return nil, fmt.Errorf("%w: memo update for unknown asset %s", ErrStateCorruption, upd.Code)
			}
			e.Memo = upd.NewMemo
			s.assets[upd.Code] = e
			errs.Add(s.putAsset(batch, upd.Code))
		}
	}
	if errs.Errored() {
		return nil, fmt.Errorf("%w: %v", ErrStateCorruption, errs.Err)
	}

	// Phase 2: transfer, conversion, and anonymous-asset operations. Spent
	// inputs move to the archive; produced outputs and ABARs land at the
	// sequence ids BlockBuilder.EndBlock already assigned.
	for _, ctx := range blk.Txns {
		for _, sid := range ctx.Effect.ConsumedTxos {
			out, ok := s.utxos[sid]
			if !ok {
				return nil, fmt.Errorf("%w: consuming unknown txo %d", ErrStateCorruption, sid)
			}
			delete(s.utxos, sid)
			s.spentUtxos[sid] = out
			errs.Add(batch.Delete(utxoKey(sid)), s.putSpentUTXO(batch, sid, out))
		}
		for i, out := range ctx.Effect.ProducedOutputs {
			sid := ctx.OutputSids[i]
			s.utxos[sid] = out
			errs.Add(s.putUTXO(batch, sid, out))
			if sid >= s.nextTxoSID {
				s.nextTxoSID = sid + 1
			}
		}
		for _, n := range ctx.Effect.ConsumedNullifiers {
			if _, dup := s.nullifiers[n]; dup {
				return nil, fmt.Errorf("%w: nullifier reused across blocks", ErrStateCorruption)
			}
			s.nullifiers[n] = struct{}{}
			errs.Add(batch.Put(nullifierKey(n), []byte{1}))
		}
		for i, anon := range ctx.Effect.ProducedAnon {
			sid := ctx.AnonSids[i]
			s.abars[sid] = anon.Record
			s.abarLeaves.ReplaceOrInsert(&abarLeaf{sid: sid, rec: anon.Record})
			s.accumulator = s.cryptoOps.AccumulatorAppend(s.accumulator, anon.Record.Commitment, uint64(sid))
			errs.Add(s.putABAR(batch, sid, anon.Record))
			if sid >= s.nextATxoSID {
				s.nextATxoSID = sid + 1
			}
		}
	}
	if errs.Errored() {
		return nil, fmt.Errorf("%w: %v", ErrStateCorruption, errs.Err)
	}

	// Phase 2b: system operations (genesis bootstrap, account conversion).
	// These ride between the transfer pass, whose ConsumedTxos they share,
	// and the staking pass, which FraDistribution seeds.
	for _, ctx := range blk.Txns {
		for _, op := range ctx.Effect.SystemOps {
			switch o := op.(type) {
			case txs.FraDistribution:
				if blk.Height != 0 {
					return nil, fmt.Errorf("%w: FraDistribution replayed past genesis", ErrStateCorruption)
				}
				s.staking.SeedGenesis(o.Allocations)
			case txs.ConvertAccount:
				s.accounts[string(o.Account)] += o.Amount
			case txs.MintFra:
				// Recorded by ApiCache's coinbase history; LedgerStore already
				// materialized o.Output as a transparent UTXO in phase 2.
			}
		}
	}

	// Phase 3: staking operations.
	for _, ctx := range blk.Txns {
		for _, op := range ctx.Effect.StakingOps {
			if err := s.staking.Apply(op, blk.Height); err != nil {
				return nil, fmt.Errorf("%w: staking apply: %v", ErrStateCorruption, err)
			}
		}
	}

	// Phase 4: post-hooks — reward accrual, history emission, block index.
	s.staking.EndOfBlock(blk.Height)

	for _, ctx := range blk.Txns {
		s.txnByID[ctx.TxnSID] = ctx
		s.txnByHash[ctx.Hash] = ctx.TxnSID
		if ctx.TxnSID >= s.nextTxnSID {
			s.nextTxnSID = ctx.TxnSID + 1
		}
	}
	s.height = blk.Height
	s.blockCommitCount++
	errs.Add(database.PutUInt64(batch, heightKey, s.height))

	if errs.Errored() {
		return nil, fmt.Errorf("%w: %v", ErrStateCorruption, errs.Err)
	}
	if err := batch.Write(); err != nil {
		return nil, fmt.Errorf("%w: durable write: %v", ErrStateCorruption, err)
	}

	return &ApplyResult{Height: s.height, CommitCount: s.blockCommitCount, Applied: blk.Txns}, nil
}

func (s *Store) putUTXO(w database.KeyValueWriter, sid ids.TxoSID, out txs.TxOutput) error {
	b, err := s.codecManager.Marshal(s.codecVersion, &out)
	if err != nil {
		return err
	}
	return w.Put(utxoKey(sid), b)
}

func (s *Store) putSpentUTXO(w database.KeyValueWriter, sid ids.TxoSID, out txs.TxOutput) error {
	b, err := s.codecManager.Marshal(s.codecVersion, &out)
	if err != nil {
		return err
	}
	return w.Put(spentKey(sid), b)
}

func (s *Store) putABAR(w database.KeyValueWriter, sid ids.ATxoSID, rec crypto.AnonBlindAssetRecord) error {
	b, err := s.codecManager.Marshal(s.codecVersion, &rec)
	if err != nil {
		return err
	}
	return w.Put(abarKey(sid), b)
}

func (s *Store) putAsset(w database.KeyValueWriter, code ids.AssetTypeCode) error {
	e := s.assets[code]
	b, err := s.codecManager.Marshal(s.codecVersion, &e)
	if err != nil {
		return err
	}
	return w.Put(append(append([]byte{}, assetPrefix...), code[:]...), b)
}

func utxoKey(sid ids.TxoSID) []byte  { return append(append([]byte{}, utxoPrefix...), sid.Bytes()...) }
func spentKey(sid ids.TxoSID) []byte { return append(append([]byte{}, spentPrefix...), sid.Bytes()...) }
func abarKey(sid ids.ATxoSID) []byte { return append(append([]byte{}, abarPrefix...), sid.Bytes()...) }
func nullifierKey(n crypto.Nullifier) []byte {
	return append(append([]byte{}, nullifierPrefix...), n[:]...)
}
