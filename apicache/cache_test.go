// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package apicache_test

import (
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"

	"github.com/findora-network/ledgercore/apicache"
	"github.com/findora-network/ledgercore/block"
	"github.com/findora-network/ledgercore/crypto"
	"github.com/findora-network/ledgercore/ids"
	"github.com/findora-network/ledgercore/txs"
)

func TestApplyBlockIndexesTransferAndIssuance(t *testing.T) {
	require := require.New(t)

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
				AssetType: asset, Amount: 10, PublicKey: holder,
			}}},
		},
	}}
	eff, err := txs.ComputeEffect(tx, noopSnapshot{}, crypto.New(), zeroPRNG{})
	require.NoError(err)

	blk := &block.Block{Height: 1, Txns: []block.CommittedTxn{
		{TxnSID: 1, Tx: tx, Effect: eff, OutputSids: []ids.TxoSID{1}, Hash: ids.GenerateTestID()},
	}}

	c := apicache.New()
	c.ApplyBlock(blk, nil)

	created := c.CreatedAssets(issuer)
	require.Contains(created, asset)

	issuances := c.Issuances(issuer)
	require.Len(issuances, 1)
	require.Equal(ids.TxoSID(1), issuances[0].Output)

	addr, ok := c.OwnerAddress(1)
	require.True(ok)
	require.Equal(string(holder), addr)
}

type noopSnapshot struct{}

func (noopSnapshot) GetUTXO(ids.TxoSID) (txs.TxOutput, bool)             { return txs.TxOutput{}, false }
func (noopSnapshot) GetAssetRules(ids.AssetTypeCode) (txs.AssetRules, bool) { return txs.AssetRules{}, false }
func (noopSnapshot) AssetIssuer(ids.AssetTypeCode) ([]byte, bool)        { return nil, false }
func (noopSnapshot) HasNullifier(crypto.Nullifier) bool                 { return false }
func (noopSnapshot) HasABAR(ids.ATxoSID) bool                            { return false }
func (noopSnapshot) CurrentHeight() uint64                               { return 0 }
func (noopSnapshot) GetValidatorPubKey(ids.NodeID) ([]byte, bool)        { return nil, false }
func (noopSnapshot) HasDelegation([]byte, ids.NodeID) bool               { return false }
func (noopSnapshot) DelegationAmount([]byte, ids.NodeID) uint64          { return 0 }
func (noopSnapshot) MinDelegationAmount() uint64                         { return 0 }

type zeroPRNG struct{}

func (zeroPRNG) Read(b []byte) (int, error) { return len(b), nil }
