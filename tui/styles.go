// ABOUTME: Defines lipgloss styles for the preview TUI panels, list items, and status line.
// ABOUTME: StyleForItem maps a list item's kind and resolution to its display style.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Panel borders
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))

	// Title styling
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	SectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Bold(true)

	// List items
	RouteStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	ResolvedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	UnresolvedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	CursorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	// Path jump prompt
	JumpStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color("214"))
)

// StyleForItem returns the style for a list item.
func StyleForItem(it Item) lipgloss.Style {
	switch {
	case it.Kind == KindRoute:
		return RouteStyle
	case it.Resolved:
		return ResolvedStyle
	default:
		return UnresolvedStyle
	}
}
