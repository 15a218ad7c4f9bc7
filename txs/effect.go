// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"bytes"
	"fmt"

	"github.com/findora-network/ledgercore/crypto"
	"github.com/findora-network/ledgercore/ids"
)

// Effect is the full set of deltas a Transaction intends to make against
// ledger state, computed without touching it. LedgerStore.apply_block
// applies an Effect per transaction in the block's deterministic order;
// BlockBuilder uses it only to check for within-block conflicts.
type Effect struct {
	Tx Transaction

	ConsumedTxos       []ids.TxoSID
	ConsumedNullifiers []crypto.Nullifier
	ProducedOutputs    []TxOutput
	ProducedAnon       []AnonOutput
	DefinedAssets      []DefineAsset
	IssuedAssets       []IssueAsset
	MemoUpdates        []UpdateMemo
	StakingOps         []Operation
	SystemOps          []Operation
	RelatedPubKeys     [][]byte
}

// ComputeEffect is the pure (txn, prng) -> Effect | Error transformation
// that produces a transaction's intended ledger deltas. It is safe to call
// concurrently for different transactions against the same Snapshot, since
// it never mutates snap.
func ComputeEffect(tx Transaction, snap Snapshot, ops crypto.Ops, prng PRNG) (*Effect, error) {
	if len(tx.Operations) == 0 {
		return nil, fmt.Errorf("%w: transaction has no operations", ErrInputsError)
	}
	if StaleSeqID(tx.SeqID, snap.CurrentHeight(), SeqIDWindow) {
		return nil, fmt.Errorf("%w: seq_id %d stale at height %d", ErrStaleSeqID, tx.SeqID, snap.CurrentHeight())
	}

	eff := &Effect{Tx: tx}
	seenTxos := make(map[ids.TxoSID]struct{})
	seenNullifiers := make(map[crypto.Nullifier]struct{})

	for _, op := range tx.Operations {
		related := op.RelatedPubKeys()
		eff.RelatedPubKeys = append(eff.RelatedPubKeys, related...)

		if err := applyOperation(op, eff, snap, ops, prng, seenTxos, seenNullifiers); err != nil {
			return nil, err
		}
	}
	return eff, nil
}

func applyOperation(
	op Operation,
	eff *Effect,
	snap Snapshot,
	cryptoOps crypto.Ops,
	prng PRNG,
	seenTxos map[ids.TxoSID]struct{},
	seenNullifiers map[crypto.Nullifier]struct{},
) error {
	switch o := op.(type) {
	case DefineAsset:
		if _, exists := snap.GetAssetRules(o.Code); exists {
			return fmt.Errorf("%w: asset %s already defined", ErrAssetRulesViolated, o.Code)
		}
		eff.DefinedAssets = append(eff.DefinedAssets, o)

	case IssueAsset:
		rules, ok := snap.GetAssetRules(o.Code)
		issuer, _ := snap.AssetIssuer(o.Code)
		if !ok {
			// an asset defined earlier in this same transaction
			for _, def := range eff.DefinedAssets {
				if def.Code == o.Code {
					rules, issuer, ok = def.Rules, def.Issuer, true
				}
			}
		}
		if !ok {
			return fmt.Errorf("%w: asset %s not defined", ErrAssetRulesViolated, o.Code)
		}
		if !bytes.Equal(issuer, o.Issuer) {
			return fmt.Errorf("%w: issuer mismatch for asset %s", ErrSignatureInvalid, o.Code)
		}
		var total uint64
		for _, out := range o.Outputs {
			amt, _, err := cryptoOps.OpenBAR(out.Record, nil)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrProofInvalid, err)
			}
			total += amt
		}
		if rules.MaxUnits != 0 && total > rules.MaxUnits {
			return fmt.Errorf("%w: issuance of %d exceeds cap %d for %s", ErrAssetRulesViolated, total, rules.MaxUnits, o.Code)
		}
		eff.IssuedAssets = append(eff.IssuedAssets, o)
		eff.ProducedOutputs = append(eff.ProducedOutputs, o.Outputs...)

	case UpdateMemo:
		rules, ok := snap.GetAssetRules(o.Code)
		if !ok {
			return fmt.Errorf("%w: asset %s not defined", ErrAssetRulesViolated, o.Code)
		}
		if !rules.UpdatableMemo {
			return fmt.Errorf("%w: asset %s memo not updatable", ErrAssetRulesViolated, o.Code)
		}
		issuer, _ := snap.AssetIssuer(o.Code)
		if !bytes.Equal(issuer, o.Issuer) {
			return fmt.Errorf("%w: issuer mismatch for asset %s", ErrSignatureInvalid, o.Code)
		}
		eff.MemoUpdates = append(eff.MemoUpdates, o)

	case TransferAsset:
		if len(o.Inputs) == 0 || len(o.Inputs) != len(o.InputOwners) {
			return fmt.Errorf("%w: transfer has mismatched inputs/owners", ErrInputsError)
		}
		balances := make(map[ids.AssetTypeCode]struct{ in, out uint64 })
		for i, in := range o.Inputs {
			if _, dup := seenTxos[in.Sid]; dup {
				return fmt.Errorf("%w: txo %d spent twice in one transaction", ErrDuplicateInputWithinTxn, in.Sid)
			}
			seenTxos[in.Sid] = struct{}{}

			utxo, ok := snap.GetUTXO(in.Sid)
			if !ok {
				return fmt.Errorf("%w: txo %d does not exist", ErrInputsError, in.Sid)
			}
			if !bytes.Equal(utxo.PubKey(), o.InputOwners[i]) {
				return fmt.Errorf("%w: input %d owner mismatch", ErrSignatureInvalid, in.Sid)
			}
			if !cryptoOps.VerifySignature(o.InputOwners[i], in.Sid.Bytes(), in.Signature) {
				return fmt.Errorf("%w: input %d signature invalid", ErrSignatureInvalid, in.Sid)
			}
			rules, ok := snap.GetAssetRules(utxo.Record.AssetType)
			if ok && !rules.Transferable {
				return fmt.Errorf("%w: asset %s not transferable", ErrAssetRulesViolated, utxo.Record.AssetType)
			}
			if !utxo.Record.AmountHidden {
				b := balances[utxo.Record.AssetType]
				b.in += utxo.Record.Amount
				balances[utxo.Record.AssetType] = b
			}
			eff.ConsumedTxos = append(eff.ConsumedTxos, in.Sid)
		}
		for _, out := range o.Outputs {
			if !out.Record.AmountHidden {
				b := balances[out.Record.AssetType]
				b.out += out.Record.Amount
				balances[out.Record.AssetType] = b
			}
		}
		for asset, b := range balances {
			if b.in != b.out {
				return fmt.Errorf("%w: asset %s inputs %d != outputs %d", ErrAmountMismatch, asset, b.in, b.out)
			}
		}
		eff.ProducedOutputs = append(eff.ProducedOutputs, o.Outputs...)

	case ConvertAccount:
		for i, in := range o.Inputs {
			if _, dup := seenTxos[in.Sid]; dup {
				return fmt.Errorf("%w: txo %d spent twice in one transaction", ErrDuplicateInputWithinTxn, in.Sid)
			}
			seenTxos[in.Sid] = struct{}{}
			utxo, ok := snap.GetUTXO(in.Sid)
			if !ok {
				return fmt.Errorf("%w: txo %d does not exist", ErrInputsError, in.Sid)
			}
			if !bytes.Equal(utxo.PubKey(), o.InputOwners[i]) {
				return fmt.Errorf("%w: input %d owner mismatch", ErrSignatureInvalid, in.Sid)
			}
			if !cryptoOps.VerifySignature(o.InputOwners[i], in.Sid.Bytes(), in.Signature) {
				return fmt.Errorf("%w: input %d signature invalid", ErrSignatureInvalid, in.Sid)
			}
			eff.ConsumedTxos = append(eff.ConsumedTxos, in.Sid)
		}
		eff.SystemOps = append(eff.SystemOps, o)

	case BarToAbar:
		if _, dup := seenTxos[o.Input.Sid]; dup {
			return fmt.Errorf("%w: txo %d spent twice in one transaction", ErrDuplicateInputWithinTxn, o.Input.Sid)
		}
		seenTxos[o.Input.Sid] = struct{}{}
		utxo, ok := snap.GetUTXO(o.Input.Sid)
		if !ok {
			return fmt.Errorf("%w: txo %d does not exist", ErrInputsError, o.Input.Sid)
		}
		if !bytes.Equal(utxo.PubKey(), o.InputOwner) {
			return fmt.Errorf("%w: input %d owner mismatch", ErrSignatureInvalid, o.Input.Sid)
		}
		if !cryptoOps.VerifySignature(o.InputOwner, o.Input.Sid.Bytes(), o.Input.Signature) {
			return fmt.Errorf("%w: input %d signature invalid", ErrSignatureInvalid, o.Input.Sid)
		}
		eff.ConsumedTxos = append(eff.ConsumedTxos, o.Input.Sid)
		eff.ProducedAnon = append(eff.ProducedAnon, o.Output)

	case AbarToBar:
		if !snap.HasABAR(o.InputSid) {
			return fmt.Errorf("%w: abar %d does not exist", ErrInputsError, o.InputSid)
		}
		if _, dup := seenNullifiers[o.InputNullifier]; dup {
			return fmt.Errorf("%w: nullifier reused in transaction", ErrDuplicateInputWithinTxn)
		}
		seenNullifiers[o.InputNullifier] = struct{}{}
		if snap.HasNullifier(o.InputNullifier) {
			return fmt.Errorf("%w: nullifier already published", ErrProofInvalid)
		}
		if len(o.Proof) == 0 {
			return fmt.Errorf("%w: missing spend proof", ErrProofInvalid)
		}
		eff.ConsumedNullifiers = append(eff.ConsumedNullifiers, o.InputNullifier)
		eff.ProducedOutputs = append(eff.ProducedOutputs, o.Output)

	case TransferAnonAsset:
		if len(o.InputSids) != len(o.Note.InputNullifiers) {
			return fmt.Errorf("%w: nullifier count mismatch", ErrInputsError)
		}
		for _, sid := range o.InputSids {
			if !snap.HasABAR(sid) {
				return fmt.Errorf("%w: abar %d does not exist", ErrInputsError, sid)
			}
		}
		for _, n := range o.Note.InputNullifiers {
			if _, dup := seenNullifiers[n]; dup {
				return fmt.Errorf("%w: nullifier reused in transaction", ErrDuplicateInputWithinTxn)
			}
			seenNullifiers[n] = struct{}{}
			if snap.HasNullifier(n) {
				return fmt.Errorf("%w: nullifier already published", ErrProofInvalid)
			}
		}
		if err := cryptoOps.VerifyAbarNote(o.Note); err != nil {
			return fmt.Errorf("%w: %v", ErrProofInvalid, err)
		}
		eff.ConsumedNullifiers = append(eff.ConsumedNullifiers, o.Note.InputNullifiers...)
		eff.ProducedAnon = append(eff.ProducedAnon, o.Outputs...)

	case UpdateStaker:
		if o.CommissionRate > 10000 {
			return fmt.Errorf("%w: commission rate %d out of range", ErrAssetRulesViolated, o.CommissionRate)
		}
		if len(o.Memo) > MaxValidatorMemoLen {
			return fmt.Errorf("%w: validator memo exceeds %d bytes", ErrAssetRulesViolated, MaxValidatorMemoLen)
		}
		if _, ok := snap.GetValidatorPubKey(o.Validator); !ok {
			return fmt.Errorf("%w: unknown validator %s", ErrInputsError, o.Validator)
		}
		eff.StakingOps = append(eff.StakingOps, o)

	case Delegation:
		utxo, ok := snap.GetUTXO(o.Principal.Sid)
		if !ok {
			return fmt.Errorf("%w: delegation principal txo %d does not exist", ErrInputsError, o.Principal.Sid)
		}
		if !bytes.Equal(utxo.PubKey(), BlackHolePubKeyStaking) {
			return fmt.Errorf("%w: delegation principal must target the staking sink", ErrInputsError)
		}
		if !cryptoOps.VerifySignature(o.Delegator, o.Principal.Sid.Bytes(), o.Principal.Signature) {
			return fmt.Errorf("%w: delegation signature invalid", ErrSignatureInvalid)
		}
		if _, ok := snap.GetValidatorPubKey(o.Validator); !ok {
			return fmt.Errorf("%w: unknown validator %s", ErrInputsError, o.Validator)
		}
		if o.Amount < snap.MinDelegationAmount() {
			return fmt.Errorf("%w: delegation of %d below minimum", ErrAssetRulesViolated, o.Amount)
		}
		if _, dup := seenTxos[o.Principal.Sid]; dup {
			return fmt.Errorf("%w: txo %d spent twice in one transaction", ErrDuplicateInputWithinTxn, o.Principal.Sid)
		}
		seenTxos[o.Principal.Sid] = struct{}{}
		eff.ConsumedTxos = append(eff.ConsumedTxos, o.Principal.Sid)
		eff.StakingOps = append(eff.StakingOps, o)

	case UnDelegation:
		if !snap.HasDelegation(o.Delegator, o.Validator) {
			return fmt.Errorf("%w: no delegation from %x to %s", ErrInputsError, o.Delegator, o.Validator)
		}
		if o.IsPartial() {
			if o.Amount > snap.DelegationAmount(o.Delegator, o.Validator) {
				return fmt.Errorf("%w: undelegating %d exceeds principal", ErrAssetRulesViolated, o.Amount)
			}
			if len(o.HoldingPubKey) == 0 {
				// TxnEffect derives the holding key deterministically from
				// the replay PRNG when the client did not supply one.
				key := make([]byte, ids.ShortIDLen)
				if _, err := prng.Read(key); err != nil {
					return fmt.Errorf("%w: could not derive holding key: %v", ErrInputsError, err)
				}
				o.HoldingPubKey = key
			}
		}
		eff.StakingOps = append(eff.StakingOps, o)

	case Claim:
		if !snap.HasDelegation(o.Delegator, o.Validator) {
			return fmt.Errorf("%w: no delegation from %x to %s", ErrInputsError, o.Delegator, o.Validator)
		}
		eff.StakingOps = append(eff.StakingOps, o)

	case UpdateValidator:
		if len(o.Validators) == 0 {
			return fmt.Errorf("%w: empty validator set", ErrInputsError)
		}
		eff.StakingOps = append(eff.StakingOps, o)

	case Governance:
		if o.Kind == GovernanceSlash && o.SlashFraction > 10000 {
			return fmt.Errorf("%w: slash fraction %d out of range", ErrAssetRulesViolated, o.SlashFraction)
		}
		if _, ok := snap.GetValidatorPubKey(o.Target); !ok {
			return fmt.Errorf("%w: unknown validator %s", ErrInputsError, o.Target)
		}
		eff.StakingOps = append(eff.StakingOps, o)

	case FraDistribution:
		if snap.CurrentHeight() != 0 {
			return fmt.Errorf("%w: FraDistribution only valid at genesis", ErrAssetRulesViolated)
		}
		eff.SystemOps = append(eff.SystemOps, o)

	case MintFra:
		eff.SystemOps = append(eff.SystemOps, o)
		eff.ProducedOutputs = append(eff.ProducedOutputs, o.Output)

	default:
		return fmt.Errorf("%w: unrecognized operation type %T", ErrInputsError, op)
	}
	return nil
}
