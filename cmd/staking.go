// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"

	"github.com/findora-network/ledgercore/cmd/internal/client"
	"github.com/findora-network/ledgercore/cmd/internal/signer"
	"github.com/findora-network/ledgercore/ids"
	"github.com/findora-network/ledgercore/txs"
)

func stakeCommand() *cobra.Command {
	var (
		seqID          uint64
		inputSID       uint64
		amount         uint64
		commissionRate uint32
		memo           string
	)
	c := &cobra.Command{
		Use:   "stake",
		Short: "Sets commission and memo for this key's validator and self-delegates; the validator must already be registered",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := signer.Load(flags.keyPath)
			if err != nil {
				return err
			}
			nodeID := ids.NodeID(ids.ShortIDFromPubKey(key.PubKey()))

			sid := ids.TxoSID(inputSID)
			principalSig := key.Sign(sid.Bytes())

			ops := []txs.Operation{
				txs.UpdateStaker{
					Validator:      nodeID,
					StakerPubKey:   key.PubKey(),
					CommissionRate: commissionRate,
					Memo:           memo,
				},
				txs.Delegation{
					Delegator:       key.PubKey(),
					Validator:       nodeID,
					ValidatorPubKey: key.PubKey(),
					Principal:       txs.TxoInput{Sid: sid, Signature: principalSig},
					Amount:          amount,
				},
			}
			handle, err := client.New(flags.server).SubmitTransaction(txs.Transaction{SeqID: seqID, Operations: ops})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "validator: %s\nhandle: %s\n", nodeID, handle)
			return nil
		},
	}
	c.Flags().Uint64Var(&seqID, "seq-id", 0, "transaction sequence id window anchor")
	c.Flags().Uint64Var(&inputSID, "input-sid", 0, "txo sid of the transfer into the staking sink")
	c.Flags().Uint64Var(&amount, "amount", 0, "self-delegation principal")
	c.Flags().Uint32Var(&commissionRate, "commission-rate", 0, "commission rate numerator over 10000")
	c.Flags().StringVar(&memo, "memo", "", "validator memo")
	return c
}

func stakeAppendCommand() *cobra.Command {
	var (
		seqID    uint64
		inputSID uint64
		amount   uint64
	)
	c := &cobra.Command{
		Use:   "stake-append",
		Short: "Adds more principal to this key's own self-delegation",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := signer.Load(flags.keyPath)
			if err != nil {
				return err
			}
			nodeID := ids.NodeID(ids.ShortIDFromPubKey(key.PubKey()))
			sid := ids.TxoSID(inputSID)
			sig := key.Sign(sid.Bytes())

			op := txs.Delegation{
				Delegator:       key.PubKey(),
				Validator:       nodeID,
				ValidatorPubKey: key.PubKey(),
				Principal:       txs.TxoInput{Sid: sid, Signature: sig},
				Amount:          amount,
			}
			handle, err := client.New(flags.server).SubmitTransaction(txs.Transaction{SeqID: seqID, Operations: []txs.Operation{op}})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "handle:", handle)
			return nil
		},
	}
	c.Flags().Uint64Var(&seqID, "seq-id", 0, "transaction sequence id window anchor")
	c.Flags().Uint64Var(&inputSID, "input-sid", 0, "txo sid of the transfer into the staking sink")
	c.Flags().Uint64Var(&amount, "amount", 0, "additional principal")
	return c
}

func unstakeCommand() *cobra.Command {
	return undelegateLikeCommand("unstake", "Fully undelegates this key's self-delegation", true)
}

func undelegateCommand() *cobra.Command {
	return undelegateLikeCommand("undelegate", "Withdraws a delegation, in full or in part", false)
}

func undelegateLikeCommand(use, short string, selfOnly bool) *cobra.Command {
	var (
		seqID         uint64
		validatorStr  string
		amount        uint64
		holdingPubKey string
	)
	c := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := signer.Load(flags.keyPath)
			if err != nil {
				return err
			}
			var nodeID ids.NodeID
			if selfOnly || validatorStr == "" {
				nodeID = ids.NodeID(ids.ShortIDFromPubKey(key.PubKey()))
			} else {
				nodeID, err = parseNodeID(validatorStr)
				if err != nil {
					return err
				}
			}
			var holding []byte
			if holdingPubKey != "" {
				holding, err = base58.Decode(holdingPubKey)
				if err != nil {
					return fmt.Errorf("cmd: decoding holding key: %w", err)
				}
			}
			op := txs.UnDelegation{
				Delegator:       key.PubKey(),
				Validator:       nodeID,
				ValidatorPubKey: key.PubKey(),
				Amount:          amount,
				HoldingPubKey:   holding,
			}
			handle, err := client.New(flags.server).SubmitTransaction(txs.Transaction{SeqID: seqID, Operations: []txs.Operation{op}})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "handle:", handle)
			return nil
		},
	}
	c.Flags().Uint64Var(&seqID, "seq-id", 0, "transaction sequence id window anchor")
	if !selfOnly {
		c.Flags().StringVar(&validatorStr, "validator", "", "base58 validator node id")
	}
	c.Flags().Uint64Var(&amount, "amount", 0, "amount to withdraw, 0 for a full undelegation")
	c.Flags().StringVar(&holdingPubKey, "holding-key", "", "base58 holding public key for a partial undelegation")
	return c
}

func delegateCommand() *cobra.Command {
	var (
		seqID         uint64
		validatorStr  string
		validatorPub  string
		inputSID      uint64
		amount        uint64
	)
	c := &cobra.Command{
		Use:   "delegate",
		Short: "Delegates principal to a validator",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := signer.Load(flags.keyPath)
			if err != nil {
				return err
			}
			nodeID, err := parseNodeID(validatorStr)
			if err != nil {
				return err
			}
			valPubKey, err := base58.Decode(validatorPub)
			if err != nil {
				return fmt.Errorf("cmd: decoding validator pubkey: %w", err)
			}
			sid := ids.TxoSID(inputSID)
			sig := key.Sign(sid.Bytes())

			op := txs.Delegation{
				Delegator:       key.PubKey(),
				Validator:       nodeID,
				ValidatorPubKey: valPubKey,
				Principal:       txs.TxoInput{Sid: sid, Signature: sig},
				Amount:          amount,
			}
			handle, err := client.New(flags.server).SubmitTransaction(txs.Transaction{SeqID: seqID, Operations: []txs.Operation{op}})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "handle:", handle)
			return nil
		},
	}
	c.Flags().Uint64Var(&seqID, "seq-id", 0, "transaction sequence id window anchor")
	c.Flags().StringVar(&validatorStr, "validator", "", "base58 validator node id")
	c.Flags().StringVar(&validatorPub, "validator-pubkey", "", "base58 validator public key")
	c.Flags().Uint64Var(&inputSID, "input-sid", 0, "txo sid of the transfer into the staking sink")
	c.Flags().Uint64Var(&amount, "amount", 0, "principal to delegate")
	return c
}

func claimCommand() *cobra.Command {
	var (
		seqID        uint64
		validatorStr string
		amount       uint64
	)
	c := &cobra.Command{
		Use:   "claim",
		Short: "Withdraws accrued delegation reward",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := signer.Load(flags.keyPath)
			if err != nil {
				return err
			}
			nodeID, err := parseNodeID(validatorStr)
			if err != nil {
				return err
			}
			validatorPub, err := fetchValidatorPubKey(nodeID)
			if err != nil {
				return err
			}
			op := txs.Claim{
				Delegator:       key.PubKey(),
				Validator:       nodeID,
				ValidatorPubKey: validatorPub,
				Amount:          amount,
			}
			handle, err := client.New(flags.server).SubmitTransaction(txs.Transaction{SeqID: seqID, Operations: []txs.Operation{op}})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "handle:", handle)
			return nil
		},
	}
	c.Flags().Uint64Var(&seqID, "seq-id", 0, "transaction sequence id window anchor")
	c.Flags().StringVar(&validatorStr, "validator", "", "base58 validator node id")
	c.Flags().Uint64Var(&amount, "amount", 0, "reward amount to claim; exactly this amount is withdrawn from pending")
	return c
}

// replaceStakerCommand swaps the controlling key for a validator slot,
// expressed as a one-entry UpdateValidator: there is no dedicated
// replace-staker operation in the transaction catalogue, so this reuses the
// validator-set-replacement primitive with a single member.
func replaceStakerCommand() *cobra.Command {
	var (
		seqID     uint64
		nodeStr   string
		newPubKey string
		power     uint64
	)
	c := &cobra.Command{
		Use:   "replace-staker",
		Short: "Replaces the controlling public key for a validator slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			nodeID, err := parseNodeID(nodeStr)
			if err != nil {
				return err
			}
			pubKey, err := base58.Decode(newPubKey)
			if err != nil {
				return fmt.Errorf("cmd: decoding new pubkey: %w", err)
			}
			op := txs.UpdateValidator{
				Validators: []txs.ValidatorEntry{{NodeID: nodeID, PubKey: pubKey, Power: power}},
			}
			handle, err := client.New(flags.server).SubmitTransaction(txs.Transaction{SeqID: seqID, Operations: []txs.Operation{op}})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "handle:", handle)
			return nil
		},
	}
	c.Flags().Uint64Var(&seqID, "seq-id", 0, "transaction sequence id window anchor")
	c.Flags().StringVar(&nodeStr, "validator", "", "base58 validator node id")
	c.Flags().StringVar(&newPubKey, "new-pubkey", "", "base58 replacement public key")
	c.Flags().Uint64Var(&power, "power", 0, "validator voting power")
	return c
}

func parseNodeID(s string) (ids.NodeID, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return ids.NodeID{}, fmt.Errorf("cmd: decoding node id: %w", err)
	}
	short, err := ids.ToShortID(b)
	if err != nil {
		return ids.NodeID{}, err
	}
	return ids.NodeID(short), nil
}

func fetchValidatorPubKey(nodeID ids.NodeID) ([]byte, error) {
	var resp struct {
		PubKey string `json:"pub_key"`
	}
	if err := client.New(flags.server).Get("/validator/"+nodeID.String(), &resp); err != nil {
		return nil, err
	}
	return base58.Decode(resp.PubKey)
}
