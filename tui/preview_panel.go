// ABOUTME: PreviewPanelModel shows a rendered page as plain text in a scrollable bubbles viewport.
// ABOUTME: The title line names the previewed path and the page's document title.
package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// PreviewPanelModel displays one rendered page.
type PreviewPanelModel struct {
	viewport viewport.Model
	path     string
	text     string
	width    int
	height   int
}

// NewPreviewPanelModel creates an empty preview.
func NewPreviewPanelModel() PreviewPanelModel {
	return PreviewPanelModel{viewport: viewport.New(80, 10)}
}

// SetSize sets the available dimensions and updates the viewport.
func (m *PreviewPanelModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	// Reserve space for the border (2 lines top/bottom) and title (1 line)
	m.viewport.Width = max(w-2, 1)
	m.viewport.Height = max(h-3, 1)
}

// SetPage replaces the previewed page and scrolls to the top.
func (m *PreviewPanelModel) SetPage(path, text string) {
	m.path = path
	m.text = text
	m.viewport.SetContent(text)
	m.viewport.GotoTop()
}

// Path returns the previewed path.
func (m PreviewPanelModel) Path() string {
	return m.path
}

// Text returns the previewed plain text.
func (m PreviewPanelModel) Text() string {
	return m.text
}

// Update forwards scrolling keys to the viewport.
func (m PreviewPanelModel) Update(msg tea.Msg) (PreviewPanelModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the preview panel.
func (m PreviewPanelModel) View() string {
	title := "PREVIEW"
	if m.path != "" {
		title = "PREVIEW " + m.path
	}

	content := "Select a route and press enter"
	if m.path != "" {
		content = m.viewport.View()
	}

	return BorderStyle.
		Width(max(m.width-2, 1)).
		Height(max(m.height-2, 1)).
		Render(TitleStyle.Render(title) + "\n" + content)
}
