// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"github.com/findora-network/ledgercore/codec"
	"github.com/findora-network/ledgercore/codec/linearcodec"
	"github.com/findora-network/ledgercore/crypto"
	"github.com/findora-network/ledgercore/utils/wrappers"
)

// CodecVersion is the wire version every Transaction is currently encoded
// under. A future format change registers a second linearcodec.Codec under
// a new version and keeps this one for decoding old blocks, the same
// dual-version story the teacher's codec.Manager is built for.
const CodecVersion = 0

// NewCodec returns a codec.Manager with every concrete Operation variant
// and the structs they carry behind interface-valued fields registered,
// following the teacher's vms/example/xsvm/tx/codec.go pattern: one
// package-owned codec.Manager construction site per wire format, built
// once at startup rather than scattered across callers.
func NewCodec() (codec.Manager, error) {
	lc := linearcodec.NewDefault()
	m := codec.NewDefaultManager()

	errs := wrappers.Errs{}
	errs.Add(
		lc.RegisterType(DefineAsset{}),
		lc.RegisterType(IssueAsset{}),
		lc.RegisterType(UpdateMemo{}),
		lc.RegisterType(TransferAsset{}),
		lc.RegisterType(ConvertAccount{}),
		lc.RegisterType(BarToAbar{}),
		lc.RegisterType(AbarToBar{}),
		lc.RegisterType(TransferAnonAsset{}),
		lc.RegisterType(UpdateStaker{}),
		lc.RegisterType(Delegation{}),
		lc.RegisterType(UnDelegation{}),
		lc.RegisterType(Claim{}),
		lc.RegisterType(UpdateValidator{}),
		lc.RegisterType(Governance{}),
		lc.RegisterType(FraDistribution{}),
		lc.RegisterType(MintFra{}),
		lc.RegisterType(TxOutput{}),
		lc.RegisterType(AnonOutput{}),
		lc.RegisterType(crypto.BlindAssetRecord{}),
		lc.RegisterType(crypto.AnonBlindAssetRecord{}),
		m.RegisterCodec(CodecVersion, lc),
	)
	if errs.Errored() {
		return nil, errs.Err
	}
	return m, nil
}
