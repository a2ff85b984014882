// ABOUTME: "routes" command: prints the route table and every navbar link with its resolution status.
// ABOUTME: --strict turns any unresolved link, in any navbar variant, into a non-zero exit.
package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/2389-research/coursesite/site"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var (
	headerStyle     = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle       = lipgloss.NewStyle().Padding(0, 1)
	resolvedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	unresolvedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func newRoutesCmd(flags *globalFlags) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List routes and navigation links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(cmd, flags)
			if err != nil {
				return err
			}
			unresolved := printRoutes(cmd.OutOrStdout(), a.site)
			if strict && unresolved > 0 {
				return fmt.Errorf("%d navigation link(s) do not resolve", unresolved)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any navbar link does not resolve")
	return cmd
}

// printRoutes writes both tables and returns the number of unresolved links.
func printRoutes(w io.Writer, s *site.Site) int {
	var routeRows [][]string
	for _, e := range s.Table.Entries() {
		routeRows = append(routeRows, []string{e.Path, e.Name, strconv.Itoa(e.Depth())})
	}
	fmt.Fprintln(w, newTable("PATH", "NAME", "COMPONENTS").Rows(routeRows...).Render())

	unresolved := 0
	var linkRows [][]string
	for _, l := range s.Links() {
		navbar := l.Navbar
		if l.Active {
			navbar += " (active)"
		}
		status := resolvedStyle.Render("resolved")
		if !l.Resolved {
			status = unresolvedStyle.Render("unresolved")
			unresolved++
		}
		linkRows = append(linkRows, []string{navbar, l.Entry.Title, l.Entry.Path, status})
	}
	fmt.Fprintln(w, newTable("NAVBAR", "TITLE", "PATH", "STATUS").Rows(linkRows...).Render())

	return unresolved
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}
