// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"github.com/findora-network/ledgercore/crypto"
	"github.com/findora-network/ledgercore/ids"
)

// BarToAbar converts a transparent output into an anonymous one. Related
// key: the input transparent public key.
type BarToAbar struct {
	Input      TxoInput
	InputOwner []byte
	Output     AnonOutput
}

func (BarToAbar) OpType() OpType { return OpBarToAbar }

func (op BarToAbar) RelatedPubKeys() [][]byte {
	return [][]byte{op.InputOwner}
}

// AbarToBar converts an anonymous output into a transparent one, revealing
// a nullifier for the spent ABAR. Related key: the output transparent
// public key.
type AbarToBar struct {
	InputSid        ids.ATxoSID
	InputNullifier  crypto.Nullifier
	Proof           []byte
	Output          TxOutput
}

func (AbarToBar) OpType() OpType { return OpAbarToBar }

func (op AbarToBar) RelatedPubKeys() [][]byte {
	return [][]byte{op.Output.PubKey()}
}

// TransferAnonAsset spends and produces only anonymous outputs, revealing
// nullifiers for each spent ABAR. Purely anonymous: no related keys.
type TransferAnonAsset struct {
	InputSids []ids.ATxoSID
	Note      crypto.AbarTransferNote
	Outputs   []AnonOutput
}

func (TransferAnonAsset) OpType() OpType { return OpTransferAnonAsset }

func (TransferAnonAsset) RelatedPubKeys() [][]byte { return nil }
