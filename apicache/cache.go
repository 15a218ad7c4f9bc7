// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

// Package apicache implements ApiCache: a denormalized projection of
// committed transactions into address-, asset-, and height-keyed secondary
// indexes. It is not authoritative — every index here can be
// rebuilt by replaying the block index from LedgerStore — and every update
// is applied strictly post-commit, inside the same writer critical section
// apply_block runs in, so no reader ever observes a committed transaction
// without its cache entries.
package apicache

import (
	"sync"

	"github.com/findora-network/ledgercore/block"
	"github.com/findora-network/ledgercore/ids"
	"github.com/findora-network/ledgercore/staking"
	"github.com/findora-network/ledgercore/txs"
)

// MintEntry records one coinbase-style FRA mint against a recipient at a
// given height.
type MintEntry struct {
	Height uint64
	Amount uint64
}

// IssuanceEntry pairs a produced output with its memo, for the
// issuer-indexed and asset-indexed issuance lists.
type IssuanceEntry struct {
	Output ids.TxoSID
	Memo   string
}

// TxnRef identifies a committed transaction by both its assigned sequence
// id and content hash, the pair txo_to_txnid/atxo_to_txnid index on.
type TxnRef struct {
	TxnSID ids.TxnSID
	Hash   ids.ID
}

// Cache is the full set of secondary indexes this node serves reads from.
type Cache struct {
	mu sync.RWMutex

	relatedTransactions map[string][]ids.TxnSID // address (string pubkey) -> ordered TxnSIDs
	relatedTransfers    map[ids.AssetTypeCode][]ids.TxnSID
	claimHistTxns       map[string][]ids.TxnSID
	coinbaseOperHist    map[string]map[uint64]MintEntry

	createdAssets map[string]map[ids.AssetTypeCode]txs.DefineAsset // issuer -> asset -> definition
	issuances     map[string][]IssuanceEntry                       // issuer -> issuance list
	tokenIssuances map[ids.AssetTypeCode][]IssuanceEntry

	ownerMemos map[ids.TxoSID]string
	abarMemos  map[ids.ATxoSID]string

	utxoToAddress map[ids.TxoSID]string
	// abarToAddress stays empty: an AnonBlindAssetRecord carries no public
	// key, so there is no owner address to index until the output is
	// later revealed via AbarToBar.
	abarToAddress map[ids.ATxoSID]string

	txoToTxnID  map[ids.TxoSID]TxnRef
	abarToTxnID map[ids.ATxoSID]TxnRef

	txnSIDToHash map[ids.TxnSID]ids.ID
	txnHashToSID map[ids.ID]ids.TxnSID

	globalRateHist      []staking.GlobalRateEntry
	selfDelegationHist  map[string][]staking.DelegationEntry
	totalDelegationHist map[string][]staking.DelegationEntry
	rewardDetailHist    map[string][]staking.RewardEntry
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{
		relatedTransactions: make(map[string][]ids.TxnSID),
		relatedTransfers:    make(map[ids.AssetTypeCode][]ids.TxnSID),
		claimHistTxns:       make(map[string][]ids.TxnSID),
		coinbaseOperHist:    make(map[string]map[uint64]MintEntry),
		createdAssets:       make(map[string]map[ids.AssetTypeCode]txs.DefineAsset),
		issuances:           make(map[string][]IssuanceEntry),
		tokenIssuances:      make(map[ids.AssetTypeCode][]IssuanceEntry),
		ownerMemos:          make(map[ids.TxoSID]string),
		abarMemos:           make(map[ids.ATxoSID]string),
		utxoToAddress:       make(map[ids.TxoSID]string),
		abarToAddress:       make(map[ids.ATxoSID]string),
		txoToTxnID:          make(map[ids.TxoSID]TxnRef),
		abarToTxnID:         make(map[ids.ATxoSID]TxnRef),
		txnSIDToHash:        make(map[ids.TxnSID]ids.ID),
		txnHashToSID:        make(map[ids.ID]ids.TxnSID),
		selfDelegationHist:  make(map[string][]staking.DelegationEntry),
		totalDelegationHist: make(map[string][]staking.DelegationEntry),
		rewardDetailHist:    make(map[string][]staking.RewardEntry),
	}
}

// ApplyBlock folds every committed transaction of blk into the indexes.
// Idempotent on re-apply of the same block: a transaction whose TxnSID is
// already indexed is skipped.
func (c *Cache) ApplyBlock(blk *block.Block, hist *staking.History) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ctx := range blk.Txns {
		if _, seen := c.txnSIDToHash[ctx.TxnSID]; seen {
			continue
		}
		c.txnSIDToHash[ctx.TxnSID] = ctx.Hash
		c.txnHashToSID[ctx.Hash] = ctx.TxnSID

		for i, out := range ctx.Effect.ProducedOutputs {
			sid := ctx.OutputSids[i]
			addr := string(out.PubKey())
			c.utxoToAddress[sid] = addr
			c.txoToTxnID[sid] = TxnRef{TxnSID: ctx.TxnSID, Hash: ctx.Hash}
		}
		for i, anon := range ctx.Effect.ProducedAnon {
			sid := ctx.AnonSids[i]
			c.abarToTxnID[sid] = TxnRef{TxnSID: ctx.TxnSID, Hash: ctx.Hash}
			if len(anon.Record.EncryptedMemo) > 0 {
				c.abarMemos[sid] = string(anon.Record.EncryptedMemo)
			}
		}

		for _, def := range ctx.Effect.DefinedAssets {
			issuer := string(def.Issuer)
			if c.createdAssets[issuer] == nil {
				c.createdAssets[issuer] = make(map[ids.AssetTypeCode]txs.DefineAsset)
			}
			c.createdAssets[issuer][def.Code] = def
		}
		for _, issue := range ctx.Effect.IssuedAssets {
			issuer := string(issue.Issuer)
			for j := range issue.Outputs {
				entry := IssuanceEntry{}
				if j < len(ctx.OutputSids) {
					entry.Output = ctx.OutputSids[j]
				}
				c.issuances[issuer] = append(c.issuances[issuer], entry)
				c.tokenIssuances[issue.Code] = append(c.tokenIssuances[issue.Code], entry)
			}
		}

		for _, op := range ctx.Effect.SystemOps {
			if mint, ok := op.(txs.MintFra); ok {
				recipient := string(mint.Recipient)
				if c.coinbaseOperHist[recipient] == nil {
					c.coinbaseOperHist[recipient] = make(map[uint64]MintEntry)
				}
				c.coinbaseOperHist[recipient][mint.Height] = MintEntry{Height: mint.Height, Amount: mint.Amount}
			}
		}

		for _, op := range ctx.Effect.StakingOps {
			if _, ok := op.(txs.Claim); ok {
				for _, key := range op.RelatedPubKeys() {
					addr := string(key)
					c.claimHistTxns[addr] = append(c.claimHistTxns[addr], ctx.TxnSID)
				}
			}
		}

		related := relatedAddressesFor(ctx)
		for _, addr := range related {
			c.relatedTransactions[addr] = append(c.relatedTransactions[addr], ctx.TxnSID)
		}
		if isTransfer(ctx) {
			for _, out := range ctx.Effect.ProducedOutputs {
				c.relatedTransfers[out.Record.AssetType] = append(c.relatedTransfers[out.Record.AssetType], ctx.TxnSID)
			}
		}
	}

	if hist != nil {
		c.globalRateHist = append(c.globalRateHist, hist.DrainGlobalRate()...)
		for _, e := range hist.DrainSelfDelegation() {
			key := string(e.PubKey)
			c.selfDelegationHist[key] = append(c.selfDelegationHist[key], e)
		}
		for _, e := range hist.DrainTotalDelegation() {
			key := string(e.PubKey)
			c.totalDelegationHist[key] = append(c.totalDelegationHist[key], e)
		}
		for _, e := range hist.DrainRewardDetail() {
			key := string(e.Delegator)
			c.rewardDetailHist[key] = append(c.rewardDetailHist[key], e)
		}
	}
}

// relatedAddressesFor collects the related public keys of every operation
// in the transaction, deduplicated within the transaction.
func relatedAddressesFor(ctx block.CommittedTxn) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(keys [][]byte) {
		for _, k := range keys {
			if len(k) == 0 {
				continue
			}
			addr := string(k)
			if _, dup := seen[addr]; dup {
				continue
			}
			seen[addr] = struct{}{}
			out = append(out, addr)
		}
	}
	for _, op := range ctx.Tx.Operations {
		add(op.RelatedPubKeys())
	}
	return out
}

func isTransfer(ctx block.CommittedTxn) bool {
	for _, op := range ctx.Tx.Operations {
		if op.OpType() == txs.OpTransferAsset {
			return true
		}
	}
	return false
}

// --- query surface ---

func (c *Cache) RelatedTransactions(address []byte) []ids.TxnSID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]ids.TxnSID(nil), c.relatedTransactions[string(address)]...)
}

func (c *Cache) RelatedTransfers(asset ids.AssetTypeCode) []ids.TxnSID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]ids.TxnSID(nil), c.relatedTransfers[asset]...)
}

func (c *Cache) ClaimHistory(address []byte) []ids.TxnSID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]ids.TxnSID(nil), c.claimHistTxns[string(address)]...)
}

func (c *Cache) CoinbaseHistory(address []byte) map[uint64]MintEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[uint64]MintEntry, len(c.coinbaseOperHist[string(address)]))
	for h, e := range c.coinbaseOperHist[string(address)] {
		out[h] = e
	}
	return out
}

func (c *Cache) CreatedAssets(issuer []byte) map[ids.AssetTypeCode]txs.DefineAsset {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[ids.AssetTypeCode]txs.DefineAsset, len(c.createdAssets[string(issuer)]))
	for k, v := range c.createdAssets[string(issuer)] {
		out[k] = v
	}
	return out
}

func (c *Cache) Issuances(issuer []byte) []IssuanceEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]IssuanceEntry(nil), c.issuances[string(issuer)]...)
}

func (c *Cache) TokenIssuances(asset ids.AssetTypeCode) []IssuanceEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]IssuanceEntry(nil), c.tokenIssuances[asset]...)
}

func (c *Cache) OwnerAddress(sid ids.TxoSID) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.utxoToAddress[sid]
	return a, ok
}

func (c *Cache) AbarOwnerAddress(sid ids.ATxoSID) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.abarToAddress[sid]
	return a, ok
}

func (c *Cache) AbarMemo(sid ids.ATxoSID) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.abarMemos[sid]
	return m, ok
}

func (c *Cache) TxnByHash(hash ids.ID) (ids.TxnSID, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sid, ok := c.txnHashToSID[hash]
	return sid, ok
}
