// ABOUTME: Bubble Tea messages and commands for rendering site pages off the update loop.
// ABOUTME: RenderCmd renders a path through the full document shell and converts it to plain text.
package tui

import (
	"bytes"
	"errors"

	"github.com/2389-research/coursesite/route"
	"github.com/2389-research/coursesite/site"
	tea "github.com/charmbracelet/bubbletea"
)

// RenderedMsg carries the plain-text rendering of a path. NotFound is set
// when the route table has no entry; Text then holds the not-found document.
type RenderedMsg struct {
	Path     string
	Text     string
	NotFound bool
	Err      error
}

// RenderCmd renders path.
func RenderCmd(s *site.Site, path string) tea.Cmd {
	return func() tea.Msg {
		return renderPath(s, path)
	}
}

func renderPath(s *site.Site, path string) RenderedMsg {
	msg := RenderedMsg{Path: path}

	var buf bytes.Buffer
	err := s.Render(&buf, path)
	if errors.Is(err, route.ErrNotFound) {
		msg.NotFound = true
		buf.Reset()
		err = s.RenderNotFound(&buf, path)
	}
	if err != nil {
		msg.Err = err
		return msg
	}

	text, err := PlainText(buf.Bytes())
	if err != nil {
		msg.Err = err
		return msg
	}
	msg.Text = text
	return msg
}
