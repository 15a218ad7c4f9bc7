// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgerstore_test

import (
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"

	"github.com/findora-network/ledgercore/block"
	"github.com/findora-network/ledgercore/crypto"
	"github.com/findora-network/ledgercore/ids"
	"github.com/findora-network/ledgercore/txs"
)

// TestBarToAbarThenAnonTransferRejectsReplayedNullifier converts a
// transparent output into an anonymous one, spends the resulting ABAR
// with a TransferAnonAsset, and confirms a second attempt to spend it
// with the same nullifier is rejected rather than accepted twice.
func TestBarToAbarThenAnonTransferRejectsReplayedNullifier(t *testing.T) {
	require := require.New(t)

	store := newTestStore(t)
	ops := crypto.New()
	b := block.NewBuilder(block.DefaultCapacity)

	issuerPriv, err := secp256k1.GeneratePrivateKey()
	require.NoError(err)
	issuer := issuerPriv.PubKey().SerializeCompressed()
	holderPriv, err := secp256k1.GeneratePrivateKey()
	require.NoError(err)
	holder := holderPriv.PubKey().SerializeCompressed()
	asset := ids.AssetTypeCode(ids.GenerateTestID())

	// Block 0: define and issue a transparent output owned by holder.
	b.BeginBlock(0)
	issueTx := txs.Transaction{Operations: []txs.Operation{
		txs.DefineAsset{Code: asset, Issuer: issuer, Rules: txs.AssetRules{Transferable: true}},
		txs.IssueAsset{Code: asset, Issuer: issuer, Outputs: []txs.TxOutput{{Record: crypto.BlindAssetRecord{
			AssetType: asset, Amount: 750, PublicKey: holder,
		}}}},
	}}
	_, err = b.CacheTransaction(issueTx, store, ops, store.GetPRNG(), ids.GenerateTestID())
	require.NoError(err)
	txnSID, txoSID, atxoSID := store.NextSIDs()
	blk0, _, err := b.EndBlock(txnSID, txoSID, atxoSID)
	require.NoError(err)
	_, err = store.ApplyBlock(blk0)
	require.NoError(err)
	issuedSid := blk0.Txns[0].OutputSids[0]

	// Block 1: BarToAbar converts that output into an anonymous one.
	b.BeginBlock(1)
	barToAbarTx := txs.Transaction{
		SeqID: 1,
		Operations: []txs.Operation{
			txs.BarToAbar{
				Input:      txs.TxoInput{Sid: issuedSid, Signature: sign(holderPriv, issuedSid)},
				InputOwner: holder,
				Output:     txs.AnonOutput{Record: crypto.AnonBlindAssetRecord{Commitment: []byte("leaf-commitment")}},
			},
		},
	}
	_, err = b.CacheTransaction(barToAbarTx, store, ops, store.GetPRNG(), ids.GenerateTestID())
	require.NoError(err)
	txnSID, txoSID, atxoSID = store.NextSIDs()
	blk1, _, err := b.EndBlock(txnSID, txoSID, atxoSID)
	require.NoError(err)
	_, err = store.ApplyBlock(blk1)
	require.NoError(err)
	require.Len(blk1.Txns[0].AnonSids, 1)
	abarSid := blk1.Txns[0].AnonSids[0]
	require.True(store.HasABAR(abarSid))

	nullifier := ops.DeriveNullifier(holder, 750, asset, uint64(abarSid))
	transferOp := txs.TransferAnonAsset{
		InputSids: []ids.ATxoSID{abarSid},
		Note: crypto.AbarTransferNote{
			InputNullifiers: []crypto.Nullifier{nullifier},
			OutputCommits:   [][]byte{[]byte("out-commitment")},
			Proof:           []byte{0x01},
		},
		Outputs: []txs.AnonOutput{{Record: crypto.AnonBlindAssetRecord{Commitment: []byte("out-commitment")}}},
	}

	// Block 2: spend the ABAR. Its nullifier is now published.
	b.BeginBlock(2)
	_, err = b.CacheTransaction(txs.Transaction{SeqID: 2, Operations: []txs.Operation{transferOp}}, store, ops, store.GetPRNG(), ids.GenerateTestID())
	require.NoError(err)
	txnSID, txoSID, atxoSID = store.NextSIDs()
	blk2, _, err := b.EndBlock(txnSID, txoSID, atxoSID)
	require.NoError(err)
	_, err = store.ApplyBlock(blk2)
	require.NoError(err)
	require.True(store.HasNullifier(nullifier))

	// Block 3: replaying the identical spend must fail at cache time —
	// the nullifier is already published, so this never reaches a block.
	b.BeginBlock(3)
	_, err = b.CacheTransaction(txs.Transaction{SeqID: 3, Operations: []txs.Operation{transferOp}}, store, ops, store.GetPRNG(), ids.GenerateTestID())
	require.Error(err)
	require.ErrorIs(err, txs.ErrProofInvalid)
}
