// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/saphyr-go/yamlcore"
)

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events [file]",
		Short: "Stream parser events for a YAML document, one per line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, closeFn, err := openInput(args)
			if err != nil {
				return err
			}
			defer closeFn()

			es := yamlcore.NewEventStreamFromReader(r)
			w := cmd.OutOrStdout()
			for {
				ev, err := es.Next()
				if err == io.EOF {
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(w, formatEvent(ev))
			}
		},
	}
	return cmd
}
