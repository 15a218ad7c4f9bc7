// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package txs_test

import (
	"crypto/sha256"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/require"

	"github.com/findora-network/ledgercore/crypto"
	"github.com/findora-network/ledgercore/ids"
	"github.com/findora-network/ledgercore/txs"
)

type fakeSnapshot struct {
	height      uint64
	utxos       map[ids.TxoSID]txs.TxOutput
	assetRules  map[ids.AssetTypeCode]txs.AssetRules
	issuers     map[ids.AssetTypeCode][]byte
	nullifiers  map[crypto.Nullifier]struct{}
	abars       map[ids.ATxoSID]struct{}
	validators  map[ids.NodeID][]byte
	delegations map[string]uint64
	minDelegation uint64
}

func newFakeSnapshot() *fakeSnapshot {
	return &fakeSnapshot{
		utxos:       make(map[ids.TxoSID]txs.TxOutput),
		assetRules:  make(map[ids.AssetTypeCode]txs.AssetRules),
		issuers:     make(map[ids.AssetTypeCode][]byte),
		nullifiers:  make(map[crypto.Nullifier]struct{}),
		abars:       make(map[ids.ATxoSID]struct{}),
		validators:  make(map[ids.NodeID][]byte),
		delegations: make(map[string]uint64),
	}
}

func (f *fakeSnapshot) GetUTXO(sid ids.TxoSID) (txs.TxOutput, bool) {
	o, ok := f.utxos[sid]
	return o, ok
}
func (f *fakeSnapshot) GetAssetRules(c ids.AssetTypeCode) (txs.AssetRules, bool) {
	r, ok := f.assetRules[c]
	return r, ok
}
func (f *fakeSnapshot) AssetIssuer(c ids.AssetTypeCode) ([]byte, bool) {
	i, ok := f.issuers[c]
	return i, ok
}
func (f *fakeSnapshot) HasNullifier(n crypto.Nullifier) bool {
	_, ok := f.nullifiers[n]
	return ok
}
func (f *fakeSnapshot) HasABAR(sid ids.ATxoSID) bool {
	_, ok := f.abars[sid]
	return ok
}
func (f *fakeSnapshot) CurrentHeight() uint64 { return f.height }
func (f *fakeSnapshot) GetValidatorPubKey(n ids.NodeID) ([]byte, bool) {
	k, ok := f.validators[n]
	return k, ok
}
func (f *fakeSnapshot) HasDelegation(delegator []byte, v ids.NodeID) bool {
	_, ok := f.delegations[delegationKey(delegator, v)]
	return ok
}
func (f *fakeSnapshot) DelegationAmount(delegator []byte, v ids.NodeID) uint64 {
	return f.delegations[delegationKey(delegator, v)]
}
func (f *fakeSnapshot) MinDelegationAmount() uint64 { return f.minDelegation }

func delegationKey(delegator []byte, v ids.NodeID) string {
	return string(delegator) + "|" + v.String()
}

type zeroPRNG struct{}

func (zeroPRNG) Read(b []byte) (int, error) {
	for i := range b {
		b[i] = byte(i)
	}
	return len(b), nil
}

func signInput(t *testing.T, priv *secp256k1.PrivateKey, sid ids.TxoSID) []byte {
	t.Helper()
	hash := sha256.Sum256(sid.Bytes())
	sig := ecdsa.Sign(priv, hash[:])
	return sig.Serialize()
}

func TestComputeEffectTransferAssetBalances(t *testing.T) {
	require := require.New(t)

	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(err)
	pub := priv.PubKey().SerializeCompressed()

	snap := newFakeSnapshot()
	asset := ids.AssetTypeCode(ids.GenerateTestID())
	snap.assetRules[asset] = txs.AssetRules{Transferable: true}

	inSid := ids.TxoSID(1)
	snap.utxos[inSid] = txs.TxOutput{Record: crypto.BlindAssetRecord{
		AssetType: asset,
		Amount:    100,
		PublicKey: pub,
	}}

	tx := txs.Transaction{
		SeqID: 0,
		Operations: []txs.Operation{
			txs.TransferAsset{
				Inputs:      []txs.TxoInput{{Sid: inSid, Signature: signInput(t, priv, inSid)}},
				InputOwners: [][]byte{pub},
				Outputs: []txs.TxOutput{{Record: crypto.BlindAssetRecord{
					AssetType: asset,
					Amount:    100,
					PublicKey: pub,
				}}},
			},
		},
	}

	eff, err := txs.ComputeEffect(tx, snap, crypto.New(), zeroPRNG{})
	require.NoError(err)
	require.Equal([]ids.TxoSID{inSid}, eff.ConsumedTxos)
	require.Len(eff.ProducedOutputs, 1)
}

func TestComputeEffectAmountMismatch(t *testing.T) {
	require := require.New(t)

	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(err)
	pub := priv.PubKey().SerializeCompressed()

	snap := newFakeSnapshot()
	asset := ids.AssetTypeCode(ids.GenerateTestID())
	snap.assetRules[asset] = txs.AssetRules{Transferable: true}
	inSid := ids.TxoSID(1)
	snap.utxos[inSid] = txs.TxOutput{Record: crypto.BlindAssetRecord{AssetType: asset, Amount: 100, PublicKey: pub}}

	tx := txs.Transaction{
		Operations: []txs.Operation{
			txs.TransferAsset{
				Inputs:      []txs.TxoInput{{Sid: inSid, Signature: signInput(t, priv, inSid)}},
				InputOwners: [][]byte{pub},
				Outputs: []txs.TxOutput{{Record: crypto.BlindAssetRecord{
					AssetType: asset,
					Amount:    99,
					PublicKey: pub,
				}}},
			},
		},
	}

	_, err = txs.ComputeEffect(tx, snap, crypto.New(), zeroPRNG{})
	require.ErrorIs(err, txs.ErrAmountMismatch)
}

func TestComputeEffectDuplicateInputWithinTxn(t *testing.T) {
	require := require.New(t)

	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(err)
	pub := priv.PubKey().SerializeCompressed()

	snap := newFakeSnapshot()
	asset := ids.AssetTypeCode(ids.GenerateTestID())
	snap.assetRules[asset] = txs.AssetRules{Transferable: true}
	inSid := ids.TxoSID(7)
	snap.utxos[inSid] = txs.TxOutput{Record: crypto.BlindAssetRecord{AssetType: asset, Amount: 50, PublicKey: pub}}

	sig := signInput(t, priv, inSid)
	tx := txs.Transaction{
		Operations: []txs.Operation{
			txs.TransferAsset{
				Inputs:      []txs.TxoInput{{Sid: inSid, Signature: sig}, {Sid: inSid, Signature: sig}},
				InputOwners: [][]byte{pub, pub},
				Outputs:     nil,
			},
		},
	}

	_, err = txs.ComputeEffect(tx, snap, crypto.New(), zeroPRNG{})
	require.ErrorIs(err, txs.ErrDuplicateInputWithinTxn)
}

func TestComputeEffectStaleSeqID(t *testing.T) {
	snap := newFakeSnapshot()
	snap.height = 100

	tx := txs.Transaction{SeqID: 1, Operations: []txs.Operation{txs.DefineAsset{Issuer: []byte("x")}}}
	_, err := txs.ComputeEffect(tx, snap, crypto.New(), zeroPRNG{})
	require.ErrorIs(t, err, txs.ErrStaleSeqID)
}

func TestComputeEffectUnknownValidatorRejectsDelegation(t *testing.T) {
	snap := newFakeSnapshot()
	tx := txs.Transaction{Operations: []txs.Operation{
		txs.Delegation{
			Delegator:       []byte("delegator"),
			Validator:       ids.GenerateTestNodeID(),
			ValidatorPubKey: []byte("vpub"),
			Principal:       txs.TxoInput{Sid: 1},
		},
	}}
	_, err := txs.ComputeEffect(tx, snap, crypto.New(), zeroPRNG{})
	require.ErrorIs(t, err, txs.ErrInputsError)
}

func TestComputeEffectPartialUnDelegationDerivesHoldingKey(t *testing.T) {
	require := require.New(t)

	snap := newFakeSnapshot()
	delegator := []byte("delegator")
	validator := ids.GenerateTestNodeID()
	snap.delegations[delegationKey(delegator, validator)] = 1000

	tx := txs.Transaction{Operations: []txs.Operation{
		txs.UnDelegation{
			Delegator: delegator,
			Validator: validator,
			Amount:    200,
		},
	}}

	eff, err := txs.ComputeEffect(tx, snap, crypto.New(), zeroPRNG{})
	require.NoError(err)
	require.Len(eff.StakingOps, 1)
	undel := eff.StakingOps[0].(txs.UnDelegation)
	require.NotEmpty(undel.HoldingPubKey)
}
