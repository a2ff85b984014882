// ABOUTME: "version" command: prints the build version set via -ldflags "-X main.version=...".
// ABOUTME: The default "dev" marks an unreleased local build.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "coursesite %s\n", version)
		},
	}
}
