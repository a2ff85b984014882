// ABOUTME: RouteListModel lists the route table's paths followed by every navbar link with its resolution.
// ABOUTME: Owns the cursor; the app asks it for the selected path when the user presses enter.
package tui

import (
	"fmt"
	"strings"

	"github.com/2389-research/coursesite/site"
)

// ItemKind separates route-table entries from navbar links.
type ItemKind int

const (
	KindRoute ItemKind = iota
	KindLink
)

// Item is one selectable row.
type Item struct {
	Kind     ItemKind
	Path     string
	Label    string
	Navbar   string
	Depth    int
	Resolved bool
}

// ItemsForSite lists route entries in path order, then navbar links with the
// active variant first.
func ItemsForSite(s *site.Site) []Item {
	var items []Item
	for _, e := range s.Table.Entries() {
		items = append(items, Item{
			Kind:     KindRoute,
			Path:     e.Path,
			Label:    e.Name,
			Depth:    e.Depth(),
			Resolved: true,
		})
	}
	for _, l := range s.Links() {
		items = append(items, Item{
			Kind:     KindLink,
			Path:     l.Entry.Path,
			Label:    l.Entry.Title,
			Navbar:   l.Navbar,
			Resolved: l.Resolved,
		})
	}
	return items
}

// RouteListModel renders the item list with a cursor.
type RouteListModel struct {
	items  []Item
	cursor int
	width  int
	height int
}

// NewRouteListModel creates a list positioned on the first item.
func NewRouteListModel(items []Item) RouteListModel {
	return RouteListModel{items: items}
}

// SetSize sets the available dimensions.
func (m *RouteListModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// MoveUp moves the cursor up, stopping at the first item.
func (m *RouteListModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// MoveDown moves the cursor down, stopping at the last item.
func (m *RouteListModel) MoveDown() {
	if m.cursor < len(m.items)-1 {
		m.cursor++
	}
}

// Cursor returns the cursor index.
func (m RouteListModel) Cursor() int {
	return m.cursor
}

// Selected returns the item under the cursor.
func (m RouteListModel) Selected() (Item, bool) {
	if len(m.items) == 0 {
		return Item{}, false
	}
	return m.items[m.cursor], true
}

// Items returns the list's items.
func (m RouteListModel) Items() []Item {
	return m.items
}

// View renders the list panel.
func (m RouteListModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("ROUTES"))

	section := ""
	for i, it := range m.items {
		heading := "routes"
		if it.Kind == KindLink {
			heading = "navbar " + it.Navbar
		}
		if heading != section {
			if section != "" {
				b.WriteString("\n\n" + SectionStyle.Render(strings.ToUpper(heading)))
			}
			section = heading
		}

		prefix := "  "
		if i == m.cursor {
			prefix = CursorStyle.Render("> ")
		}
		b.WriteString("\n" + prefix + StyleForItem(it).Render(formatItem(it)))
	}

	return BorderStyle.
		Width(max(m.width-2, 1)).
		Height(max(m.height-2, 1)).
		Render(b.String())
}

func formatItem(it Item) string {
	if it.Kind == KindRoute {
		return fmt.Sprintf("%s%s (%s)", strings.Repeat("  ", max(it.Depth-1, 0)), it.Path, it.Label)
	}
	mark := "ok"
	if !it.Resolved {
		mark = "unresolved"
	}
	return fmt.Sprintf("%s -> %s [%s]", it.Label, it.Path, mark)
}
