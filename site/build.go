// ABOUTME: Assembles a runnable Site from a Definition: registries, route table, content, and shell.
// ABOUTME: The active navbar's links must all resolve in the route table or startup fails.
package site

import (
	"bytes"
	"fmt"
	"io"

	"github.com/2389-research/coursesite/content"
	"github.com/2389-research/coursesite/nav"
	"github.com/2389-research/coursesite/page"
	"github.com/2389-research/coursesite/route"
	"github.com/2389-research/coursesite/shell"
)

// Options carries the runtime settings that are not part of the site file.
type Options struct {
	Docs       *content.Library
	Bundle     string
	LiveReload string
}

// Site is the assembled, read-only application.
type Site struct {
	Definition *Definition
	Registries map[string]*nav.Registry
	Table      *route.Table
	Shell      *shell.Shell
	Docs       *content.Library
}

// LinkStatus reports whether one navbar link resolves.
type LinkStatus struct {
	Navbar   string
	Active   bool
	Entry    nav.Entry
	Resolved bool
}

// Routes returns the route tree: "/" is the index page and "/courses" is the
// courses layout with the listing at its index.
func (d *Definition) Routes(docs page.DocSource) []route.Route {
	return []route.Route{
		{Pattern: "/", Name: "index", Page: page.NewIndex(docs, d.Pages.Index)},
		{
			Pattern: "/courses",
			Name:    "courses",
			Layout:  page.NewCoursesLayout(),
			Index:   page.NewCourses(docs, d.Pages.Courses),
		},
	}
}

// Build assembles the site.
func Build(def *Definition, opts Options) (*Site, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if opts.Docs == nil {
		docs, err := content.Open(content.Options{HighlightStyle: def.HighlightStyle})
		if err != nil {
			return nil, err
		}
		opts.Docs = docs
	}

	registries, err := def.Registries()
	if err != nil {
		return nil, err
	}

	table, err := route.NewTable(def.Routes(opts.Docs)...)
	if err != nil {
		return nil, fmt.Errorf("building route table: %w", err)
	}

	active := registries[def.Navigation]
	for i, e := range active.All() {
		if !table.Has(e.Path) {
			return nil, &nav.ConfigurationError{
				Registry: active.Name(),
				Index:    i,
				Path:     e.Path,
				Reason:   "path does not resolve to a route",
			}
		}
	}

	sh, err := shell.New(shell.Options{
		Title:       def.Title,
		Lang:        def.Lang,
		BodyClass:   def.BodyClass,
		Nav:         active,
		Bar:         nav.Bar{Style: def.Navbars[def.Navigation].Style},
		Stylesheets: def.Stylesheets,
		Bundle:      opts.Bundle,
		LiveReload:  opts.LiveReload,
	})
	if err != nil {
		return nil, fmt.Errorf("building shell: %w", err)
	}

	return &Site{
		Definition: def,
		Registries: registries,
		Table:      table,
		Shell:      sh,
		Docs:       opts.Docs,
	}, nil
}

// Render writes the full document for path, or returns route.ErrNotFound.
func (s *Site) Render(w io.Writer, path string) error {
	m, err := s.Table.Resolve(path)
	if err != nil {
		return err
	}
	return s.RenderMatch(w, m)
}

// RenderMatch renders a resolved route into a buffer first so a failure
// never leaves a partial document on w.
func (s *Site) RenderMatch(w io.Writer, m route.Match) error {
	meta, body, err := m.Render()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := s.Shell.Render(&buf, meta, body); err != nil {
		return err
	}
	_, err = buf.WriteTo(w)
	return err
}

// RenderNotFound writes the not-found document for path.
func (s *Site) RenderNotFound(w io.Writer, path string) error {
	p := page.NotFound{Path: path}
	body, err := p.Render("")
	if err != nil {
		return err
	}
	return s.Shell.Render(w, p.Meta(), body)
}

// Links reports every navbar link across all variants, active variant first.
func (s *Site) Links() []LinkStatus {
	names := s.Definition.NavbarNames()
	ordered := []string{s.Definition.Navigation}
	for _, n := range names {
		if n != s.Definition.Navigation {
			ordered = append(ordered, n)
		}
	}

	var out []LinkStatus
	for _, name := range ordered {
		for _, e := range s.Registries[name].All() {
			out = append(out, LinkStatus{
				Navbar:   name,
				Active:   name == s.Definition.Navigation,
				Entry:    e,
				Resolved: s.Table.Has(e.Path),
			})
		}
	}
	return out
}
