// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Command yamlevents streams the tokens or events produced while scanning
// and parsing a YAML document, one per line, for inspection and debugging.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "yamlevents",
		Short:         "Stream scanner tokens or parser events for a YAML document",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newTokensCmd())
	root.AddCommand(newEventsCmd())
	return root
}
