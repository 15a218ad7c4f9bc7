// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package consensus

import (
	"fmt"

	"github.com/findora-network/ledgercore/codec"
	"github.com/findora-network/ledgercore/txs"
)

// ManagerCodec adapts a codec.Manager, the same versioned codec LedgerStore
// uses for durable serialization, to the consensus boundary's narrower
// Codec interface.
type ManagerCodec struct {
	Manager codec.Manager
}

func (c ManagerCodec) Unmarshal(raw []byte) (txs.Transaction, error) {
	var tx txs.Transaction
	if _, err := c.Manager.Unmarshal(raw, &tx); err != nil {
		return txs.Transaction{}, fmt.Errorf("consensus: decoding transaction: %w", err)
	}
	return tx, nil
}

var _ Codec = ManagerCodec{}
