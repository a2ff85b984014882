// ABOUTME: "render" command: writes the full HTML document for a path to stdout.
// ABOUTME: Unknown paths print the not-found document and exit non-zero.
package main

import (
	"errors"
	"fmt"

	"github.com/2389-research/coursesite/route"
	"github.com/spf13/cobra"
)

func newRenderCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "render <path>",
		Short: "Render the document for a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd, flags)
			if err != nil {
				return err
			}
			path := args[0]
			out := cmd.OutOrStdout()

			err = a.site.Render(out, path)
			if errors.Is(err, route.ErrNotFound) {
				if nfErr := a.site.RenderNotFound(out, path); nfErr != nil {
					return nfErr
				}
				return fmt.Errorf("no route for %s", path)
			}
			return err
		},
	}
}
