// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgerstore_test

import (
	"crypto/sha256"
	"errors"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/findora-network/ledgercore/block"
	"github.com/findora-network/ledgercore/crypto"
	"github.com/findora-network/ledgercore/ids"
	"github.com/findora-network/ledgercore/ledgerstore"
	"github.com/findora-network/ledgercore/txs"
)

// TestMintAndTransferChainNeverDoubleSpends builds a random-length chain
// of issue-then-transfer blocks and checks that every spent TxoSID ends up
// in the archive exactly once and never remains live in the UTXO set,
// regardless of chain length.
func TestMintAndTransferChainNeverDoubleSpends(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 40
	properties := gopter.NewProperties(parameters)

	properties.Property("every transferred output is archived exactly once, never left live", prop.ForAll(
		func(chainLen uint8) bool {
			if chainLen == 0 {
				return true
			}
			store := newTestStore(t)
			b := block.NewBuilder(block.DefaultCapacity)

			issuerPriv, _ := secp256k1.GeneratePrivateKey()
			issuer := issuerPriv.PubKey().SerializeCompressed()
			asset := ids.AssetTypeCode(ids.GenerateTestID())

			b.BeginBlock(0)
			ops := crypto.New()
			holderPriv, _ := secp256k1.GeneratePrivateKey()
			holder := holderPriv.PubKey().SerializeCompressed()

			genesisTx := txs.Transaction{Operations: []txs.Operation{
				txs.DefineAsset{Code: asset, Issuer: issuer, Rules: txs.AssetRules{Transferable: true}},
				txs.IssueAsset{Code: asset, Issuer: issuer, Outputs: []txs.TxOutput{{Record: crypto.BlindAssetRecord{
					AssetType: asset, Amount: 1000, PublicKey: holder,
				}}}},
			}}
			if _, err := b.CacheTransaction(genesisTx, store, ops, store.GetPRNG(), ids.GenerateTestID()); err != nil {
				return false
			}
			txnSID, txoSID, atxoSID := store.NextSIDs()
			blk, _, err := b.EndBlock(txnSID, txoSID, atxoSID)
			if err != nil {
				return false
			}
			if _, err := store.ApplyBlock(blk); err != nil {
				return false
			}

			currentSID := blk.Txns[0].OutputSids[0]
			currentHolder := holder
			currentPriv := holderPriv

			var archived []ids.TxoSID
			for i := uint8(0); i < chainLen; i++ {
				nextPriv, _ := secp256k1.GeneratePrivateKey()
				nextHolder := nextPriv.PubKey().SerializeCompressed()

				b.BeginBlock(uint64(i) + 1)
				tx := txs.Transaction{
					SeqID: uint64(i) + 1,
					Operations: []txs.Operation{
						txs.TransferAsset{
							Inputs:      []txs.TxoInput{{Sid: currentSID, Signature: signSID(currentPriv, currentSID)}},
							InputOwners: [][]byte{currentHolder},
							Outputs:     []txs.TxOutput{{Record: crypto.BlindAssetRecord{AssetType: asset, Amount: 1000, PublicKey: nextHolder}}},
						},
					},
				}
				if _, err := b.CacheTransaction(tx, store, ops, store.GetPRNG(), ids.GenerateTestID()); err != nil {
					return false
				}
				txnSID, txoSID, atxoSID := store.NextSIDs()
				blk, _, err := b.EndBlock(txnSID, txoSID, atxoSID)
				if err != nil {
					return false
				}
				if _, err := store.ApplyBlock(blk); err != nil {
					return false
				}
				archived = append(archived, currentSID)
				currentSID = blk.Txns[0].OutputSids[0]
				currentHolder = nextHolder
				currentPriv = nextPriv
			}

			for _, sid := range archived {
				if _, stillLive := store.GetUTXO(sid); stillLive {
					return false
				}
				if _, ok := store.GetSpentUTXO(sid); !ok {
					return false
				}
			}
			return true
		},
		gen.UInt8Range(0, 6),
	))

	properties.TestingRun(t)
}

// TestReplayingACommittedBlockIsFatal checks that re-applying a block
// whose assets were already defined is always reported as state
// corruption, never silently accepted, regardless of how many operations
// the block carries.
func TestReplayingACommittedBlockIsFatal(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	properties.Property("re-applying a committed block always surfaces ErrStateCorruption", prop.ForAll(
		func(assetCount uint8) bool {
			if assetCount == 0 {
				assetCount = 1
			}
			store := newTestStore(t)
			b := block.NewBuilder(block.DefaultCapacity)
			ops := crypto.New()

			issuerPriv, _ := secp256k1.GeneratePrivateKey()
			issuer := issuerPriv.PubKey().SerializeCompressed()

			var operations []txs.Operation
			for i := uint8(0); i < assetCount; i++ {
				operations = append(operations, txs.DefineAsset{
					Code:   ids.AssetTypeCode(ids.GenerateTestID()),
					Issuer: issuer,
					Rules:  txs.AssetRules{Transferable: true},
				})
			}

			b.BeginBlock(0)
			if _, err := b.CacheTransaction(txs.Transaction{Operations: operations}, store, ops, store.GetPRNG(), ids.GenerateTestID()); err != nil {
				return false
			}
			txnSID, txoSID, atxoSID := store.NextSIDs()
			blk, _, err := b.EndBlock(txnSID, txoSID, atxoSID)
			if err != nil {
				return false
			}
			if _, err := store.ApplyBlock(blk); err != nil {
				return false
			}

			_, err = store.ApplyBlock(blk)
			return errors.Is(err, ledgerstore.ErrStateCorruption)
		},
		gen.UInt8Range(1, 5),
	))

	properties.TestingRun(t)
}

func signSID(priv *secp256k1.PrivateKey, sid ids.TxoSID) []byte {
	hash := sha256.Sum256(sid.Bytes())
	return ecdsa.Sign(priv, hash[:]).Serialize()
}
