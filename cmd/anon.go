// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/findora-network/ledgercore/cmd/internal/client"
	"github.com/findora-network/ledgercore/cmd/internal/signer"
	"github.com/findora-network/ledgercore/crypto"
	"github.com/findora-network/ledgercore/ids"
	"github.com/findora-network/ledgercore/txs"
)

func convertBar2AbarCommand() *cobra.Command {
	var (
		seqID      uint64
		inputSID   uint64
		commitment string
		memo       string
	)
	c := &cobra.Command{
		Use:   "convert-bar2abar",
		Short: "Converts a transparent output into an anonymous one",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := signer.Load(flags.keyPath)
			if err != nil {
				return err
			}
			commit, err := hex.DecodeString(commitment)
			if err != nil {
				return fmt.Errorf("cmd: decoding commitment: %w", err)
			}
			sid := ids.TxoSID(inputSID)
			sig := key.Sign(sid.Bytes())
			op := txs.BarToAbar{
				Input:      txs.TxoInput{Sid: sid, Signature: sig},
				InputOwner: key.PubKey(),
				Output: txs.AnonOutput{Record: crypto.AnonBlindAssetRecord{
					Commitment:    commit,
					EncryptedMemo: []byte(memo),
				}},
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
	c.Flags().Uint64Var(&inputSID, "input-sid", 0, "txo sid being converted")
	c.Flags().StringVar(&commitment, "commitment", "", "hex-encoded commitment produced by an external prover")
	c.Flags().StringVar(&memo, "memo", "", "encrypted owner memo, opaque to this node")
	return c
}

func convertAbar2BarCommand() *cobra.Command {
	var (
		seqID     uint64
		inputSID  uint64
		nullifier string
		proof     string
		recipient string
		assetCode string
		amount    uint64
	)
	c := &cobra.Command{
		Use:   "convert-abar2bar",
		Short: "Converts an anonymous output into a transparent one",
		RunE: func(cmd *cobra.Command, args []string) error {
			var n crypto.Nullifier
			raw, err := hex.DecodeString(nullifier)
			if err != nil || len(raw) != len(n) {
				return fmt.Errorf("cmd: nullifier must be %d hex-encoded bytes", len(n))
			}
			copy(n[:], raw)
			proofBytes, err := hex.DecodeString(proof)
			if err != nil {
				return fmt.Errorf("cmd: decoding proof: %w", err)
			}
			code, err := parseAssetCode(assetCode)
			if err != nil {
				return err
			}
			toPubKey, err := hex.DecodeString(recipient)
			if err != nil {
				return fmt.Errorf("cmd: decoding recipient: %w", err)
			}
			op := txs.AbarToBar{
				InputSid:       ids.ATxoSID(inputSID),
				InputNullifier: n,
				Proof:          proofBytes,
				Output: txs.TxOutput{Record: crypto.BlindAssetRecord{
					AssetType: code,
					Amount:    amount,
					PublicKey: toPubKey,
				}},
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
	c.Flags().Uint64Var(&inputSID, "input-sid", 0, "abar sid being spent")
	c.Flags().StringVar(&nullifier, "nullifier", "", "hex-encoded nullifier produced by an external prover")
	c.Flags().StringVar(&proof, "proof", "", "hex-encoded proof produced by an external prover")
	c.Flags().StringVar(&recipient, "to", "", "hex-encoded recipient public key")
	c.Flags().StringVar(&assetCode, "asset", "", "base58 asset type code")
	c.Flags().Uint64Var(&amount, "amount", 0, "revealed output amount")
	return c
}

// genOabarCommand builds an open-asset-record payload for a recipient
// entirely client-side, for handing to a counterparty out of band; it
// never talks to a node, since amount/type hiding is decided by the
// sender alone.
func genOabarCommand() *cobra.Command {
	var (
		recipient string
		assetCode string
		amount    uint64
		hideAmt   bool
		hideType  bool
	)
	c := &cobra.Command{
		Use:   "gen-oabar",
		Short: "Builds an open asset record for a recipient, offline",
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := parseAssetCode(assetCode)
			if err != nil {
				return err
			}
			toPubKey, err := hex.DecodeString(recipient)
			if err != nil {
				return fmt.Errorf("cmd: decoding recipient: %w", err)
			}
			bar, memo, err := crypto.New().BuildBAR(amount, code, toPubKey, hideAmt, hideType)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "commitment: %x\nowner memo: %x\nhidden amount: %v\nhidden type: %v\n",
				bar.Commitment, memo, bar.AmountHidden, bar.AssetTypeHidden)
			return nil
		},
	}
	c.Flags().StringVar(&recipient, "to", "", "hex-encoded recipient public key")
	c.Flags().StringVar(&assetCode, "asset", "", "base58 asset type code")
	c.Flags().Uint64Var(&amount, "amount", 0, "record amount")
	c.Flags().BoolVar(&hideAmt, "hide-amount", false, "hide the amount in the record")
	c.Flags().BoolVar(&hideType, "hide-type", false, "hide the asset type in the record")
	return c
}

func anonBalanceCommand() *cobra.Command {
	var sid uint64
	c := &cobra.Command{
		Use:   "anon-balance",
		Short: "Fetches the encrypted memo for an anonymous output",
		RunE: func(cmd *cobra.Command, args []string) error {
			memo, err := client.New(flags.server).GetText(fmt.Sprintf("/abar_memo/%d", sid))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "encrypted memo (decrypt with your viewing key):", memo)
			return nil
		},
	}
	c.Flags().Uint64Var(&sid, "sid", 0, "anonymous output sid")
	return c
}
