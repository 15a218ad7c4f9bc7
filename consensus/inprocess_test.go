// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package consensus_test

import (
	"crypto/sha256"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/require"

	"github.com/findora-network/ledgercore/consensus"
	"github.com/findora-network/ledgercore/crypto"
	"github.com/findora-network/ledgercore/database/memdb"
	"github.com/findora-network/ledgercore/ids"
	"github.com/findora-network/ledgercore/ledgerstore"
	"github.com/findora-network/ledgercore/staking"
	"github.com/findora-network/ledgercore/staking/reward"
	"github.com/findora-network/ledgercore/submission"
	"github.com/findora-network/ledgercore/txs"
)

// TestLifecycleCommitsACheckedTransaction runs the scenario named
// S1 names: a well-formed transaction passes check_tx, survives into the
// block deliver_tx built, and end_block/Commit produces a non-zero state
// root after it lands.
func TestLifecycleCommitsACheckedTransaction(t *testing.T) {
	require := require.New(t)

	m, err := txs.NewCodec()
	require.NoError(err)

	cfg := staking.DefaultConfig()
	store := ledgerstore.New(memdb.New(), m, txs.CodecVersion, cfg, reward.Fixed{RateNum: 0})
	sub := submission.New(store, m, txs.CodecVersion, 0, nil)
	adapter := consensus.NewInProcess(sub, store, consensus.ManagerCodec{Manager: m}, nil, nil)

	issuerPriv, err := secp256k1.GeneratePrivateKey()
	require.NoError(err)
	issuer := issuerPriv.PubKey().SerializeCompressed()
	asset := ids.AssetTypeCode(ids.GenerateTestID())

	tx := txs.Transaction{Operations: []txs.Operation{
		txs.DefineAsset{Code: asset, Issuer: issuer, Rules: txs.AssetRules{Transferable: true}},
	}}
	raw, err := m.Marshal(txs.CodecVersion, &tx)
	require.NoError(err)

	require.NoError(adapter.BeginBlock(1))

	checked, err := adapter.CheckTx(raw)
	require.NoError(err)
	require.True(checked.OK)

	delivered, err := adapter.DeliverTx(raw)
	require.NoError(err)
	require.True(delivered.OK)

	height, err := adapter.EndBlock()
	require.NoError(err)
	require.Equal(uint64(1), height)

	root, err := adapter.Commit()
	require.NoError(err)
	require.NotEmpty(root)

	rules, ok := store.GetAssetRules(asset)
	require.True(ok)
	require.True(rules.Transferable)
}

// TestCheckTxRejectsUnknownInput: a transaction
// spending a non-existent TxoSID is rejected at check_tx and never reaches
// the in-flight block.
func TestCheckTxRejectsUnknownInput(t *testing.T) {
	require := require.New(t)

	m, err := txs.NewCodec()
	require.NoError(err)

	cfg := staking.DefaultConfig()
	store := ledgerstore.New(memdb.New(), m, txs.CodecVersion, cfg, reward.Fixed{RateNum: 0})
	sub := submission.New(store, m, txs.CodecVersion, 0, nil)
	adapter := consensus.NewInProcess(sub, store, consensus.ManagerCodec{Manager: m}, nil, nil)

	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(err)
	pub := priv.PubKey().SerializeCompressed()
	hash := sha256.Sum256(ids.TxoSID(999).Bytes())
	sig := ecdsa.Sign(priv, hash[:]).Serialize()

	tx := txs.Transaction{Operations: []txs.Operation{
		txs.TransferAsset{
			Inputs:      []txs.TxoInput{{Sid: 999, Signature: sig}},
			InputOwners: [][]byte{pub},
			Outputs:     []txs.TxOutput{{Record: crypto.BlindAssetRecord{PublicKey: pub, Amount: 1}}},
		},
	}}
	raw, err := m.Marshal(txs.CodecVersion, &tx)
	require.NoError(err)

	require.NoError(adapter.BeginBlock(0))
	checked, err := adapter.CheckTx(raw)
	require.NoError(err)
	require.False(checked.OK)
	require.Equal(0, sub.PendingCount())
}
