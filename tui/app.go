// ABOUTME: Top-level Bubble Tea AppModel for previewing the course site in a terminal.
// ABOUTME: Composes the route list, page preview, jump prompt, and status bar and routes keys between them.
package tui

import (
	"fmt"
	"strings"

	"github.com/2389-research/coursesite/site"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AppModel is the top-level Bubble Tea model for the previewer.
type AppModel struct {
	list      RouteListModel
	preview   PreviewPanelModel
	jump      JumpModel
	statusBar StatusBarModel

	site   *site.Site
	width  int
	height int
}

// NewAppModel creates an AppModel over an assembled site.
func NewAppModel(s *site.Site) AppModel {
	return AppModel{
		list:      NewRouteListModel(ItemsForSite(s)),
		preview:   NewPreviewPanelModel(),
		jump:      NewJumpModel(),
		statusBar: NewStatusBarModel(s.Definition.Title, len(s.Table.Paths())),
		site:      s,
	}
}

// Init implements tea.Model. The first list item is previewed immediately.
func (m AppModel) Init() tea.Cmd {
	if it, ok := m.list.Selected(); ok {
		return RenderCmd(m.site, it.Path)
	}
	return nil
}

// Update implements tea.Model.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case RenderedMsg:
		return m.handleRendered(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m AppModel) handleRendered(msg RenderedMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Err != nil:
		m.statusBar.SetResult(msg.Path, fmt.Sprintf("render failed: %v", msg.Err), true)
		return m, nil
	case msg.NotFound:
		m.statusBar.SetResult(msg.Path, "no route for "+msg.Path, true)
	default:
		m.statusBar.SetResult(msg.Path, "", false)
	}
	m.preview.SetPage(msg.Path, msg.Text)
	return m, nil
}

// handleKeyMsg processes keyboard input, routing to the jump prompt when it is open.
func (m AppModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.jump.IsActive() {
		switch msg.Type {
		case tea.KeyEnter:
			path := m.jump.Value()
			m.jump.Close()
			return m, RenderCmd(m.site, path)
		case tea.KeyEsc:
			m.jump.Close()
			return m, nil
		}
		var cmd tea.Cmd
		m.jump, cmd = m.jump.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.list.MoveUp()
		return m, nil
	case "down", "j":
		m.list.MoveDown()
		return m, nil
	case "enter":
		if it, ok := m.list.Selected(); ok {
			return m, RenderCmd(m.site, it.Path)
		}
		return m, nil
	case "/":
		return m, m.jump.Open()
	}

	// Everything else scrolls the preview.
	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	// Minimum terminal size guard to prevent layout overflow
	if m.width < 40 || m.height < 10 {
		return fmt.Sprintf("Terminal too small (%dx%d). Minimum: 40x10.", m.width, m.height)
	}

	footerHeight := 2
	if m.jump.IsActive() {
		footerHeight += 2
	}
	bodyHeight := m.height - footerHeight

	listWidth := max(m.width*35/100, 10)
	previewWidth := max(m.width-listWidth, 10)

	m.list.SetSize(listWidth, bodyHeight)
	m.preview.SetSize(previewWidth, bodyHeight)
	m.statusBar.SetWidth(m.width)

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), m.preview.View()))
	if m.jump.IsActive() {
		b.WriteString("\n")
		b.WriteString(m.jump.View())
	}
	b.WriteString("\n")
	b.WriteString(m.statusBar.View())
	return b.String()
}

// Run starts the previewer on the terminal.
func Run(s *site.Site) error {
	_, err := tea.NewProgram(NewAppModel(s), tea.WithAltScreen()).Run()
	return err
}
