// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import "github.com/findora-network/ledgercore/ids"

// TxoInput references a previously committed transparent output being
// spent, together with the signature authorizing the spend.
type TxoInput struct {
	Sid       ids.TxoSID
	Signature []byte
}

// TransferAsset spends a set of transparent inputs and produces a set of
// transparent outputs. For non-confidential components the sum of input
// amounts must equal the sum of output amounts per asset type; confidential
// components are verified by the crypto library.
// Related keys: all input and output public keys.
type TransferAsset struct {
	Inputs      []TxoInput
	InputOwners [][]byte // parallel to Inputs, the spending public key
	Outputs     []TxOutput
}

func (TransferAsset) OpType() OpType { return OpTransferAsset }

func (op TransferAsset) RelatedPubKeys() [][]byte {
	keys := make([][]byte, 0, len(op.InputOwners)+len(op.Outputs))
	keys = append(keys, op.InputOwners...)
	for _, o := range op.Outputs {
		keys = append(keys, o.PubKey())
	}
	return keys
}

// ConvertAccount moves a transparent balance into an EVM-style account
// representation. Related key: the account.
type ConvertAccount struct {
	Inputs      []TxoInput
	InputOwners [][]byte
	Account     []byte
	Amount      uint64
	Code        ids.AssetTypeCode
}

func (ConvertAccount) OpType() OpType { return OpConvertAccount }

func (op ConvertAccount) RelatedPubKeys() [][]byte {
	return [][]byte{op.Account}
}
