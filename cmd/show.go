// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/findora-network/ledgercore/cmd/internal/client"
	"github.com/findora-network/ledgercore/cmd/internal/signer"
)

// showCommand prints the local key's address and, if the node is
// reachable, its current transparent balance and delegation to a
// validator.
func showCommand() *cobra.Command {
	var validator string
	c := &cobra.Command{
		Use:   "show",
		Short: "Shows this key's address, balance, and delegation",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := signer.Load(flags.keyPath)
			if err != nil {
				return err
			}
			address := hex.EncodeToString(key.PubKey())
			fmt.Fprintln(cmd.OutOrStdout(), "address:", address)

			var balance map[string]uint64
			if err := client.New(flags.server).Get("/balance/"+address, &balance); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "balance: unavailable:", err)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "balance:", balance["balance"])
			}

			if validator != "" {
				var delegation map[string]uint64
				path := fmt.Sprintf("/delegation/%s/%s", address, validator)
				if err := client.New(flags.server).Get(path, &delegation); err != nil {
					fmt.Fprintln(cmd.OutOrStdout(), "delegation: unavailable:", err)
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "delegation:", delegation["amount"])
				}
			}
			return nil
		},
	}
	c.Flags().StringVar(&validator, "validator", "", "base58 validator node id to show delegation against")
	return c
}
