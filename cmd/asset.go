// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"

	"github.com/findora-network/ledgercore/cmd/internal/client"
	"github.com/findora-network/ledgercore/cmd/internal/signer"
	"github.com/findora-network/ledgercore/crypto"
	"github.com/findora-network/ledgercore/ids"
	"github.com/findora-network/ledgercore/txs"
)

func createAssetCommand() *cobra.Command {
	var (
		seqID        uint64
		memo         string
		maxUnits     uint64
		decimals     uint8
		transferable bool
		updatable    bool
	)
	c := &cobra.Command{
		Use:   "create-asset",
		Short: "Defines a new asset type",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := signer.Load(flags.keyPath)
			if err != nil {
				return err
			}
			code := ids.AssetTypeCode(ids.FromHash(append(append([]byte{}, key.PubKey()...), []byte(memo)...)))
			op := txs.DefineAsset{
				Code:   code,
				Issuer: key.PubKey(),
				Rules: txs.AssetRules{
					Decimals:      decimals,
					MaxUnits:      maxUnits,
					Transferable:  transferable,
					UpdatableMemo: updatable,
				},
				Memo: memo,
			}
			handle, err := client.New(flags.server).SubmitTransaction(txs.Transaction{SeqID: seqID, Operations: []txs.Operation{op}})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "asset code: %s\nhandle: %s\n", code, handle)
			return nil
		},
	}
	c.Flags().Uint64Var(&seqID, "seq-id", 0, "transaction sequence id window anchor")
	c.Flags().StringVar(&memo, "memo", "", "asset memo")
	c.Flags().Uint64Var(&maxUnits, "max-units", 0, "maximum issuable units, 0 for uncapped")
	c.Flags().Uint8Var(&decimals, "decimals", 6, "asset decimal places")
	c.Flags().BoolVar(&transferable, "transferable", true, "whether holders may transfer the asset")
	c.Flags().BoolVar(&updatable, "updatable-memo", false, "whether the issuer may update the memo later")
	return c
}

func issueAssetCommand() *cobra.Command {
	var (
		seqID     uint64
		assetCode string
		seqNum    uint64
		recipient string
		amount    uint64
		hideAmt   bool
	)
	c := &cobra.Command{
		Use:   "issue-asset",
		Short: "Mints new units of a previously defined asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := signer.Load(flags.keyPath)
			if err != nil {
				return err
			}
			code, err := parseAssetCode(assetCode)
			if err != nil {
				return err
			}
			pubKey, err := hex.DecodeString(recipient)
			if err != nil {
				return fmt.Errorf("cmd: decoding recipient: %w", err)
			}
			op := txs.IssueAsset{
				Code:   code,
				Issuer: key.PubKey(),
				SeqNum: seqNum,
				Outputs: []txs.TxOutput{{Record: crypto.BlindAssetRecord{
					AssetType:    code,
					Amount:       amount,
					AmountHidden: hideAmt,
					PublicKey:    pubKey,
				}}},
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
	c.Flags().StringVar(&assetCode, "asset", "", "base58 asset type code")
	c.Flags().Uint64Var(&seqNum, "seq-num", 0, "per-asset issuance sequence number")
	c.Flags().StringVar(&recipient, "to", "", "hex-encoded recipient public key")
	c.Flags().Uint64Var(&amount, "amount", 0, "units to mint")
	c.Flags().BoolVar(&hideAmt, "hide-amount", false, "hide the minted amount")
	return c
}

func transferAssetCommand() *cobra.Command {
	var (
		seqID      uint64
		inputSID   uint64
		recipient  string
		assetCode  string
		amount     uint64
	)
	c := &cobra.Command{
		Use:   "transfer-asset",
		Short: "Spends a transparent output and produces a new one",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := signer.Load(flags.keyPath)
			if err != nil {
				return err
			}
			code, err := parseAssetCode(assetCode)
			if err != nil {
				return err
			}
			toPubKey, err := hex.DecodeString(recipient)
			if err != nil {
				return fmt.Errorf("cmd: decoding recipient: %w", err)
			}

			sid := ids.TxoSID(inputSID)
			sig := key.Sign(sid.Bytes())
			op := txs.TransferAsset{
				Inputs:      []txs.TxoInput{{Sid: sid, Signature: sig}},
				InputOwners: [][]byte{key.PubKey()},
				Outputs: []txs.TxOutput{{Record: crypto.BlindAssetRecord{
					AssetType: code,
					Amount:    amount,
					PublicKey: toPubKey,
				}}},
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
	c.Flags().Uint64Var(&inputSID, "input-sid", 0, "txo sid being spent")
	c.Flags().StringVar(&recipient, "to", "", "hex-encoded recipient public key")
	c.Flags().StringVar(&assetCode, "asset", "", "base58 asset type code")
	c.Flags().Uint64Var(&amount, "amount", 0, "units to transfer")
	return c
}

func parseAssetCode(s string) (ids.AssetTypeCode, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return ids.AssetTypeCode{}, fmt.Errorf("cmd: decoding asset code: %w", err)
	}
	id, err := ids.ToID(b)
	if err != nil {
		return ids.AssetTypeCode{}, err
	}
	return ids.AssetTypeCode(id), nil
}
