// ABOUTME: JumpModel is the "/" prompt that previews any typed path, including ones the route table lacks.
// ABOUTME: Wraps a bubbles textinput; the app decides what to do with the submitted value.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// JumpModel is an inline path prompt.
type JumpModel struct {
	textInput textinput.Model
	active    bool
}

// NewJumpModel creates an inactive prompt.
func NewJumpModel() JumpModel {
	ti := textinput.New()
	ti.Prompt = "path> "
	ti.Placeholder = "/courses"
	ti.CharLimit = 256
	return JumpModel{textInput: ti}
}

// Open activates and focuses the prompt with an initial "/".
func (m *JumpModel) Open() tea.Cmd {
	m.active = true
	m.textInput.SetValue("/")
	m.textInput.CursorEnd()
	return m.textInput.Focus()
}

// Close deactivates the prompt and clears it.
func (m *JumpModel) Close() {
	m.active = false
	m.textInput.Blur()
	m.textInput.Reset()
}

// IsActive reports whether the prompt is open.
func (m JumpModel) IsActive() bool {
	return m.active
}

// Value returns the typed path, forced to begin with "/".
func (m JumpModel) Value() string {
	v := strings.TrimSpace(m.textInput.Value())
	if !strings.HasPrefix(v, "/") {
		v = "/" + v
	}
	return v
}

// Update forwards a key to the text input.
func (m JumpModel) Update(msg tea.Msg) (JumpModel, tea.Cmd) {
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// View renders the prompt.
func (m JumpModel) View() string {
	return JumpStyle.Render(m.textInput.View())
}
