// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import "github.com/findora-network/ledgercore/ids"

// DefineAsset registers a new asset type. Related key: the issuer.
type DefineAsset struct {
	Code    ids.AssetTypeCode
	Issuer  []byte
	Rules   AssetRules
	Memo    string
}

func (DefineAsset) OpType() OpType { return OpDefineAsset }

func (op DefineAsset) RelatedPubKeys() [][]byte {
	return [][]byte{op.Issuer}
}

// IssueAsset mints new units of a previously defined asset type to a set
// of outputs. Related key: the issuer.
type IssueAsset struct {
	Code    ids.AssetTypeCode
	Issuer  []byte
	SeqNum  uint64 // per-asset issuance sequence, guards against replay
	Outputs []TxOutput
}

func (IssueAsset) OpType() OpType { return OpIssueAsset }

func (op IssueAsset) RelatedPubKeys() [][]byte {
	return [][]byte{op.Issuer}
}

// UpdateMemo changes the human-readable memo attached to an asset type.
// Only legal if the asset's AssetRules.UpdatableMemo is set. Related key:
// the issuer.
type UpdateMemo struct {
	Code   ids.AssetTypeCode
	Issuer []byte
	NewMemo string
}

func (UpdateMemo) OpType() OpType { return OpUpdateMemo }

func (op UpdateMemo) RelatedPubKeys() [][]byte {
	return [][]byte{op.Issuer}
}
