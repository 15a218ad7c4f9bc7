// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgerstore_test

import (
	"crypto/sha256"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/require"

	"github.com/findora-network/ledgercore/block"
	"github.com/findora-network/ledgercore/crypto"
	"github.com/findora-network/ledgercore/database/memdb"
	"github.com/findora-network/ledgercore/ids"
	"github.com/findora-network/ledgercore/ledgerstore"
	"github.com/findora-network/ledgercore/staking"
	"github.com/findora-network/ledgercore/staking/reward"
	"github.com/findora-network/ledgercore/txs"
)

const testCodecVersion = txs.CodecVersion

func newTestStore(t *testing.T) *ledgerstore.Store {
	t.Helper()
	m, err := txs.NewCodec()
	require.NoError(t, err)

	cfg := staking.DefaultConfig()
	cfg.MinDelegation = 1
	return ledgerstore.New(memdb.New(), m, testCodecVersion, cfg, reward.Fixed{RateNum: 0})
}

func TestApplyBlockDefineIssueAndTransfer(t *testing.T) {
	require := require.New(t)

	store := newTestStore(t)

	issuerPriv, err := secp256k1.GeneratePrivateKey()
	require.NoError(err)
	issuer := issuerPriv.PubKey().SerializeCompressed()
	holderPriv, err := secp256k1.GeneratePrivateKey()
	require.NoError(err)
	holder := holderPriv.PubKey().SerializeCompressed()

	asset := ids.AssetTypeCode(ids.GenerateTestID())

	tx := txs.Transaction{Operations: []txs.Operation{
		txs.DefineAsset{Code: asset, Issuer: issuer, Rules: txs.AssetRules{Transferable: true}},
		txs.IssueAsset{
			Code:   asset,
			Issuer: issuer,
			Outputs: []txs.TxOutput{{Record: crypto.BlindAssetRecord{
				AssetType: asset, Amount: 500, PublicKey: holder,
			}}},
		},
	}}

	b := block.NewBuilder(block.DefaultCapacity)
	b.BeginBlock(0)
	ops := crypto.New()
	_, err = b.CacheTransaction(tx, store, ops, store.GetPRNG(), ids.GenerateTestID())
	require.NoError(err)

	txnSID, txoSID, atxoSID := store.NextSIDs()
	blk, results, err := b.EndBlock(txnSID, txoSID, atxoSID)
	require.NoError(err)
	require.Len(results, 1)

	res, err := store.ApplyBlock(blk)
	require.NoError(err)
	require.Equal(uint64(1), res.CommitCount)

	rules, ok := store.GetAssetRules(asset)
	require.True(ok)
	require.True(rules.Transferable)

	issuedSid := blk.Txns[0].OutputSids[0]
	out, ok := store.GetUTXO(issuedSid)
	require.True(ok)
	require.Equal(uint64(500), out.Record.Amount)

	// Second block: spend the issued output.
	b.BeginBlock(1)
	transferTx := txs.Transaction{
		SeqID: 1,
		Operations: []txs.Operation{
			txs.TransferAsset{
				Inputs: []txs.TxoInput{{Sid: issuedSid, Signature: sign(holderPriv, issuedSid)}},
				InputOwners: [][]byte{holder},
				Outputs: []txs.TxOutput{{Record: crypto.BlindAssetRecord{
					AssetType: asset, Amount: 500, PublicKey: issuer,
				}}},
			},
		},
	}
	_, err = b.CacheTransaction(transferTx, store, ops, store.GetPRNG(), ids.GenerateTestID())
	require.NoError(err)

	txnSID, txoSID, atxoSID = store.NextSIDs()
	blk2, _, err := b.EndBlock(txnSID, txoSID, atxoSID)
	require.NoError(err)
	_, err = store.ApplyBlock(blk2)
	require.NoError(err)

	_, stillUTXO := store.GetUTXO(issuedSid)
	require.False(stillUTXO)
	spent, ok := store.GetSpentUTXO(issuedSid)
	require.True(ok)
	require.Equal(uint64(500), spent.Record.Amount)
}

func sign(priv *secp256k1.PrivateKey, sid ids.TxoSID) []byte {
	hash := sha256.Sum256(sid.Bytes())
	return ecdsa.Sign(priv, hash[:]).Serialize()
}
