// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

// Package cmd implements the node's CLI: a cobra root command whose
// subcommands are thin HTTP clients against a running node's submission
// surface, the way the teacher's xsvm CLI drives its own VM over HTTP
// rather than linking the VM's packages directly.
package cmd

import (
	"github.com/spf13/cobra"
)

func init() {
	cobra.EnablePrefixMatching = true
}

// globalFlags are read by every subcommand via their *cobra.Command.
type globalFlags struct {
	server     string
	keyPath    string
}

var flags globalFlags

// RootCommand builds the root "ledgercore" command with every subcommand
// attached.
func RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "ledgercore",
		Short: "Client for a ledgercore validating node",
	}
	root.PersistentFlags().StringVar(&flags.server, "server", "http://127.0.0.1:8669", "base URL of the node's submission HTTP server")
	root.PersistentFlags().StringVar(&flags.keyPath, "key", "", "path to a hex-encoded secp256k1 signing key")

	root.AddCommand(
		showCommand(),
		setupCommand(),
		createAssetCommand(),
		issueAssetCommand(),
		transferAssetCommand(),
		stakeCommand(),
		stakeAppendCommand(),
		unstakeCommand(),
		delegateCommand(),
		undelegateCommand(),
		claimCommand(),
		replaceStakerCommand(),
		convertBar2AbarCommand(),
		convertAbar2BarCommand(),
		genOabarCommand(),
		anonBalanceCommand(),
	)
	return root
}
