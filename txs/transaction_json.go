// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"encoding/json"
	"fmt"
)

// taggedOp is the wire envelope for one polymorphic Operation: an OpType
// tag plus the concrete body, following a "model as a tagged
// variant with one case per operation" design note. This is the JSON
// surface the HTTP submission route decodes; it is independent of the gob
// encoding codec.Manager uses for content hashing and durable storage.
type taggedOp struct {
	Type OpType          `json:"type"`
	Body json.RawMessage `json:"body"`
}

// MarshalJSON renders a Transaction as its SeqID plus a tagged-operation
// array.
func (t Transaction) MarshalJSON() ([]byte, error) {
	tagged := make([]taggedOp, len(t.Operations))
	for i, op := range t.Operations {
		body, err := json.Marshal(op)
		if err != nil {
			return nil, fmt.Errorf("txs: marshaling operation %d: %w", i, err)
		}
		tagged[i] = taggedOp{Type: op.OpType(), Body: body}
	}
	return json.Marshal(struct {
		SeqID      uint64     `json:"seq_id"`
		Operations []taggedOp `json:"operations"`
	}{SeqID: t.SeqID, Operations: tagged})
}

// UnmarshalJSON reconstructs a Transaction's polymorphic Operations list
// from its tagged wire form.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var wire struct {
		SeqID      uint64     `json:"seq_id"`
		Operations []taggedOp `json:"operations"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	ops := make([]Operation, len(wire.Operations))
	for i, tagged := range wire.Operations {
		op, err := decodeOperation(tagged.Type, tagged.Body)
		if err != nil {
			return fmt.Errorf("txs: decoding operation %d: %w", i, err)
		}
		ops[i] = op
	}
	t.SeqID = wire.SeqID
	t.Operations = ops
	return nil
}

func decodeOperation(opType OpType, body json.RawMessage) (Operation, error) {
	switch opType {
	case OpDefineAsset:
		var op DefineAsset
		return op, json.Unmarshal(body, &op)
	case OpIssueAsset:
		var op IssueAsset
		return op, json.Unmarshal(body, &op)
	case OpUpdateMemo:
		var op UpdateMemo
		return op, json.Unmarshal(body, &op)
	case OpTransferAsset:
		var op TransferAsset
		return op, json.Unmarshal(body, &op)
	case OpConvertAccount:
		var op ConvertAccount
		return op, json.Unmarshal(body, &op)
	case OpBarToAbar:
		var op BarToAbar
		return op, json.Unmarshal(body, &op)
	case OpAbarToBar:
		var op AbarToBar
		return op, json.Unmarshal(body, &op)
	case OpTransferAnonAsset:
		var op TransferAnonAsset
		return op, json.Unmarshal(body, &op)
	case OpUpdateStaker:
		var op UpdateStaker
		return op, json.Unmarshal(body, &op)
	case OpDelegation:
		var op Delegation
		return op, json.Unmarshal(body, &op)
	case OpUnDelegation:
		var op UnDelegation
		return op, json.Unmarshal(body, &op)
	case OpClaim:
		var op Claim
		return op, json.Unmarshal(body, &op)
	case OpUpdateValidator:
		var op UpdateValidator
		return op, json.Unmarshal(body, &op)
	case OpGovernance:
		var op Governance
		return op, json.Unmarshal(body, &op)
	case OpFraDistribution:
		var op FraDistribution
		return op, json.Unmarshal(body, &op)
	case OpMintFra:
		var op MintFra
		return op, json.Unmarshal(body, &op)
	default:
		return nil, fmt.Errorf("unknown operation type %d", opType)
	}
}
