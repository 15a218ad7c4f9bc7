// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package block_test

import (
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/require"

	"crypto/sha256"

	"github.com/findora-network/ledgercore/block"
	"github.com/findora-network/ledgercore/crypto"
	"github.com/findora-network/ledgercore/ids"
	"github.com/findora-network/ledgercore/txs"
)

type stubSnapshot struct {
	utxos map[ids.TxoSID]txs.TxOutput
}

func (s *stubSnapshot) GetUTXO(sid ids.TxoSID) (txs.TxOutput, bool) { o, ok := s.utxos[sid]; return o, ok }
func (s *stubSnapshot) GetAssetRules(ids.AssetTypeCode) (txs.AssetRules, bool) {
	return txs.AssetRules{Transferable: true}, true
}
func (s *stubSnapshot) AssetIssuer(ids.AssetTypeCode) ([]byte, bool)   { return nil, false }
func (s *stubSnapshot) HasNullifier(crypto.Nullifier) bool             { return false }
func (s *stubSnapshot) HasABAR(ids.ATxoSID) bool                       { return false }
func (s *stubSnapshot) CurrentHeight() uint64                          { return 0 }
func (s *stubSnapshot) GetValidatorPubKey(ids.NodeID) ([]byte, bool)   { return nil, false }
func (s *stubSnapshot) HasDelegation(delegator []byte, v ids.NodeID) bool { return false }
func (s *stubSnapshot) DelegationAmount(delegator []byte, v ids.NodeID) uint64 {
	return 0
}
func (s *stubSnapshot) MinDelegationAmount() uint64 { return 0 }

type zeroPRNG struct{}

func (zeroPRNG) Read(b []byte) (int, error) { return len(b), nil }

func sign(priv *secp256k1.PrivateKey, sid ids.TxoSID) []byte {
	hash := sha256.Sum256(sid.Bytes())
	return ecdsa.Sign(priv, hash[:]).Serialize()
}

func TestCacheTransactionRejectsSameBlockDoubleSpend(t *testing.T) {
	require := require.New(t)

	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(err)
	pub := priv.PubKey().SerializeCompressed()

	asset := ids.AssetTypeCode(ids.GenerateTestID())
	snap := &stubSnapshot{utxos: map[ids.TxoSID]txs.TxOutput{
		7: {Record: crypto.BlindAssetRecord{AssetType: asset, Amount: 10, PublicKey: pub}},
	}}

	mkTx := func() txs.Transaction {
		return txs.Transaction{Operations: []txs.Operation{
			txs.TransferAsset{
				Inputs:      []txs.TxoInput{{Sid: 7, Signature: sign(priv, 7)}},
				InputOwners: [][]byte{pub},
				Outputs: []txs.TxOutput{{Record: crypto.BlindAssetRecord{
					AssetType: asset, Amount: 10, PublicKey: pub,
				}}},
			},
		}}
	}

	b := block.NewBuilder(block.DefaultCapacity)
	b.BeginBlock(0)
	ops := crypto.New()

	tx1 := mkTx()
	_, err = b.CacheTransaction(tx1, snap, ops, zeroPRNG{}, ids.GenerateTestID())
	require.NoError(err)

	tx2 := mkTx()
	_, err = b.CacheTransaction(tx2, snap, ops, zeroPRNG{}, ids.GenerateTestID())
	require.ErrorIs(err, block.ErrDuplicateInput)
}

func TestCacheTransactionCollapsesIdenticalContent(t *testing.T) {
	require := require.New(t)

	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(err)
	pub := priv.PubKey().SerializeCompressed()
	asset := ids.AssetTypeCode(ids.GenerateTestID())

	snap := &stubSnapshot{utxos: map[ids.TxoSID]txs.TxOutput{
		1: {Record: crypto.BlindAssetRecord{AssetType: asset, Amount: 5, PublicKey: pub}},
	}}
	tx := txs.Transaction{Operations: []txs.Operation{
		txs.TransferAsset{
			Inputs:      []txs.TxoInput{{Sid: 1, Signature: sign(priv, 1)}},
			InputOwners: [][]byte{pub},
			Outputs:     []txs.TxOutput{{Record: crypto.BlindAssetRecord{AssetType: asset, Amount: 5, PublicKey: pub}}},
		},
	}}

	b := block.NewBuilder(block.DefaultCapacity)
	b.BeginBlock(0)
	ops := crypto.New()
	hash := ids.GenerateTestID()

	first, err := b.CacheTransaction(tx, snap, ops, zeroPRNG{}, hash)
	require.NoError(err)

	_, err = b.CacheTransaction(tx, snap, ops, zeroPRNG{}, hash)
	require.ErrorIs(err, block.ErrDuplicateTxn)

	blk, results, err := b.EndBlock(100, 1000, 1)
	require.NoError(err)
	require.Len(blk.Txns, 1)
	require.Contains(results, first)
}

func TestEndBlockAssignsSequentialSids(t *testing.T) {
	require := require.New(t)

	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(err)
	pub := priv.PubKey().SerializeCompressed()
	asset := ids.AssetTypeCode(ids.GenerateTestID())

	snap := &stubSnapshot{utxos: map[ids.TxoSID]txs.TxOutput{
		1: {Record: crypto.BlindAssetRecord{AssetType: asset, Amount: 5, PublicKey: pub}},
		2: {Record: crypto.BlindAssetRecord{AssetType: asset, Amount: 6, PublicKey: pub}},
	}}

	b := block.NewBuilder(block.DefaultCapacity)
	b.BeginBlock(5)
	ops := crypto.New()

	for _, sid := range []ids.TxoSID{1, 2} {
		tx := txs.Transaction{Operations: []txs.Operation{
			txs.TransferAsset{
				Inputs:      []txs.TxoInput{{Sid: sid, Signature: sign(priv, sid)}},
				InputOwners: [][]byte{pub},
				Outputs:     []txs.TxOutput{{Record: crypto.BlindAssetRecord{AssetType: asset, Amount: snap.utxos[sid].Record.Amount, PublicKey: pub}}},
			},
		}}
		_, err := b.CacheTransaction(tx, snap, ops, zeroPRNG{}, ids.GenerateTestID())
		require.NoError(err)
	}

	blk, results, err := b.EndBlock(10, 100, 0)
	require.NoError(err)
	require.Len(blk.Txns, 2)
	require.Equal(ids.TxnSID(10), blk.Txns[0].TxnSID)
	require.Equal(ids.TxnSID(11), blk.Txns[1].TxnSID)
	require.Equal([]ids.TxoSID{100}, blk.Txns[0].OutputSids)
	require.Equal([]ids.TxoSID{101}, blk.Txns[1].OutputSids)
	require.Len(results, 2)
}
