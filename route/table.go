// ABOUTME: Central route table binding URL paths to page constructors, with nested layouts flattened to chains.
// ABOUTME: Resolution renders innermost-first and threads each child's markup into its layout's slot.
package route

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"path"
	"sort"
	"strings"

	"github.com/2389-research/coursesite/page"
	"github.com/go-chi/chi/v5"
)

// ErrNotFound is the router's RouteNotFound condition.
var ErrNotFound = errors.New("route not found")

// Route declares one path. A route with a Layout wraps its Index (rendered at
// the route's own path) and its Children (rendered at Pattern/child.Pattern).
type Route struct {
	Pattern  string
	Name     string
	Page     page.Constructor
	Layout   page.Constructor
	Index    page.Constructor
	Children []Route
}

// Entry is one flattened, absolute path with its component chain.
type Entry struct {
	Path  string
	Name  string
	chain []page.Constructor
}

// Depth is the number of components rendered for the path.
func (e Entry) Depth() int {
	return len(e.chain)
}

// Table is the immutable result of flattening a route tree.
type Table struct {
	entries map[string]Entry
	paths   []string
}

// NewTable flattens routes. Top-level patterns must be absolute; child
// patterns are joined onto their parent's.
func NewTable(routes ...Route) (*Table, error) {
	t := &Table{entries: make(map[string]Entry)}
	for _, r := range routes {
		if !strings.HasPrefix(r.Pattern, "/") {
			return nil, fmt.Errorf("route %q: top-level pattern must begin with \"/\"", r.Pattern)
		}
		if err := t.add(r, "", nil); err != nil {
			return nil, err
		}
	}
	sort.Strings(t.paths)
	return t, nil
}

func (t *Table) add(r Route, parent string, chain []page.Constructor) error {
	if r.Pattern == "" {
		return fmt.Errorf("route under %q: empty pattern", parent)
	}
	full := normalize(path.Join("/", parent, r.Pattern))

	switch {
	case r.Layout != nil && r.Page != nil:
		return fmt.Errorf("route %q: page and layout are mutually exclusive; use index for the layout's own page", full)
	case r.Layout != nil:
		if r.Index == nil && len(r.Children) == 0 {
			return fmt.Errorf("route %q: layout has neither index nor children", full)
		}
		chain = append(chain[:len(chain):len(chain)], r.Layout)
		if r.Index != nil {
			if err := t.put(full, r.Name, append(chain[:len(chain):len(chain)], r.Index)); err != nil {
				return err
			}
		}
		for _, child := range r.Children {
			if strings.HasPrefix(child.Pattern, "/") {
				return fmt.Errorf("route %q: child pattern %q must be relative", full, child.Pattern)
			}
			if err := t.add(child, full, chain); err != nil {
				return err
			}
		}
		return nil
	case r.Page != nil:
		if len(r.Children) > 0 {
			return fmt.Errorf("route %q: children require a layout", full)
		}
		return t.put(full, r.Name, append(chain[:len(chain):len(chain)], r.Page))
	default:
		return fmt.Errorf("route %q: neither page nor layout set", full)
	}
}

func (t *Table) put(p, name string, chain []page.Constructor) error {
	if _, dup := t.entries[p]; dup {
		return fmt.Errorf("route %q: duplicate path", p)
	}
	t.entries[p] = Entry{Path: p, Name: name, chain: chain}
	t.paths = append(t.paths, p)
	return nil
}

// normalize strips a trailing slash except on the root.
func normalize(p string) string {
	if p == "" {
		return "/"
	}
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

// Paths returns every resolvable path, sorted.
func (t *Table) Paths() []string {
	out := make([]string, len(t.paths))
	copy(out, t.paths)
	return out
}

// Entries returns every entry ordered by path.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.paths))
	for _, p := range t.paths {
		out = append(out, t.entries[p])
	}
	return out
}

// Has reports whether p resolves.
func (t *Table) Has(p string) bool {
	_, ok := t.entries[normalize(p)]
	return ok
}

// Resolve returns the match for p or ErrNotFound.
func (t *Table) Resolve(p string) (Match, error) {
	e, ok := t.entries[normalize(p)]
	if !ok {
		return Match{}, fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	return Match{Entry: e}, nil
}

// Mount registers GET and HEAD for every entry on r. handler builds the
// http.HandlerFunc for a match.
func (t *Table) Mount(r chi.Router, handler func(Match) http.HandlerFunc) {
	for _, p := range t.paths {
		h := handler(Match{Entry: t.entries[p]})
		r.Get(p, h)
		r.Head(p, h)
	}
}

// Match is a resolved path ready to render.
type Match struct {
	Entry
}

// Render builds the component chain and renders innermost first, passing each
// result as the slot of the enclosing layout. Title and description each come
// from the innermost component that sets them.
func (m Match) Render() (page.Meta, template.HTML, error) {
	var (
		meta page.Meta
		slot template.HTML
	)
	for i := len(m.chain) - 1; i >= 0; i-- {
		c := m.chain[i]()
		out, err := c.Render(slot)
		if err != nil {
			return page.Meta{}, "", fmt.Errorf("route %s: %w", m.Path, err)
		}
		slot = out
		cm := c.Meta()
		if meta.Title == "" {
			meta.Title = cm.Title
		}
		if meta.Description == "" {
			meta.Description = cm.Description
		}
	}
	return meta, slot, nil
}
