// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/spf13/cobra"
)

// setupCommand generates a fresh secp256k1 signing key and writes it,
// hex-encoded, to the path --key points at, matching the format
// signer.Load reads back.
func setupCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "setup",
		Short: "Generates a new signing key and writes it to --key",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.keyPath == "" {
				return fmt.Errorf("cmd: --key is required")
			}
			priv, err := secp256k1.GeneratePrivateKey()
			if err != nil {
				return fmt.Errorf("cmd: generating key: %w", err)
			}
			encoded := hex.EncodeToString(priv.Serialize())
			if err := os.WriteFile(flags.keyPath, []byte(encoded), 0o600); err != nil {
				return fmt.Errorf("cmd: writing key file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote new key to %s\npublic key: %x\n", flags.keyPath, priv.PubKey().SerializeCompressed())
			return nil
		},
	}
	return c
}
