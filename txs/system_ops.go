// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

// FraDistribution is the one-time, genesis-only operation that seeds
// initial validator self-delegations from a fixed allocation table.
// Related keys: every allocation recipient.
type FraDistribution struct {
	Allocations []FraAllocation
}

// FraAllocation is one entry of the genesis distribution table.
type FraAllocation struct {
	Recipient []byte
	Amount    uint64
}

func (FraDistribution) OpType() OpType { return OpFraDistribution }

func (op FraDistribution) RelatedPubKeys() [][]byte {
	keys := make([][]byte, 0, len(op.Allocations))
	for _, a := range op.Allocations {
		keys = append(keys, a.Recipient)
	}
	return keys
}

// MintFra is a coinbase-style issuance paying staking rewards, recorded
// in ApiCache's coinbase_oper_hist index. Related key: the recipient.
type MintFra struct {
	Recipient []byte
	Amount    uint64
	Height    uint64
	Output    TxOutput
}

func (MintFra) OpType() OpType { return OpMintFra }

func (op MintFra) RelatedPubKeys() [][]byte {
	return [][]byte{op.Recipient}
}
