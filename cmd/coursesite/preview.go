// ABOUTME: "preview" command: browses the site's routes and navbar links in an interactive terminal UI.
// ABOUTME: Runs the bubbletea program on the alternate screen until the user quits.
package main

import (
	"github.com/2389-research/coursesite/tui"
	"github.com/spf13/cobra"
)

func newPreviewCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Preview pages in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(cmd, flags)
			if err != nil {
				return err
			}
			return tui.Run(a.site)
		},
	}
}
