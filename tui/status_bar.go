// ABOUTME: Implements a single-line status bar for the bottom of the preview TUI.
// ABOUTME: Displays the site title, route count, previewed path, and the last render outcome.
package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// StatusBarModel displays preview status in a single line.
type StatusBarModel struct {
	siteTitle string
	routes    int
	path      string
	message   string
	failed    bool
	width     int
}

// NewStatusBarModel creates a status bar for a site with the given route count.
func NewStatusBarModel(siteTitle string, routes int) StatusBarModel {
	return StatusBarModel{siteTitle: siteTitle, routes: routes}
}

// SetWidth sets the bar width for rendering.
func (m *StatusBarModel) SetWidth(w int) {
	m.width = w
}

// SetResult records the outcome of the last render.
func (m *StatusBarModel) SetResult(path, message string, failed bool) {
	m.path = path
	m.message = message
	m.failed = failed
}

// Message returns the last outcome message.
func (m StatusBarModel) Message() string {
	return m.message
}

// View renders the status bar as a single styled line.
func (m StatusBarModel) View() string {
	path := m.path
	if path == "" {
		path = "none"
	}

	content := fmt.Sprintf("Site: %s | %d routes | Previewing: %s | q quit, / jump", m.siteTitle, m.routes, path)
	line := StatusBarStyle.Width(m.width).Render(content)
	if m.message != "" {
		msg := m.message
		if m.failed {
			msg = ErrorStyle.Render(msg)
		}
		line = lipgloss.JoinVertical(lipgloss.Left, line, msg)
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Left, line)
}
