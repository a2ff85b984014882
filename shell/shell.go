// ABOUTME: Root document shell: head metadata, stylesheet links, the navigation bar mounted once, then the page.
// ABOUTME: Stylesheets follow an include-if-available policy keyed on whether a CSS bundle is configured.
package shell

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/2389-research/coursesite/nav"
	"github.com/2389-research/coursesite/page"
)

//go:embed templates/document.html
var templateFS embed.FS

var documentTemplate = template.Must(template.ParseFS(templateFS, "templates/document.html"))

// Policy decides when a stylesheet is linked.
type Policy string

const (
	// Always links the stylesheet unconditionally.
	Always Policy = "always"
	// IfBundled links the stylesheet only when a CSS bundle is configured.
	IfBundled Policy = "if-bundled"
)

// Stylesheet is a named stylesheet reference.
type Stylesheet struct {
	Name   string `yaml:"name"`
	Href   string `yaml:"href"`
	Policy Policy `yaml:"policy"`
}

// Options configures a Shell.
type Options struct {
	Title       string // used when the page sets no title
	Lang        string
	BodyClass   string
	Nav         *nav.Registry
	Bar         nav.Bar
	Stylesheets []Stylesheet
	// Bundle is the href of the companion CSS bundle; empty when none is available.
	Bundle string
	// LiveReload is the websocket path the page connects to; empty disables it.
	LiveReload string
}

// Shell composes full documents. Safe for concurrent use.
type Shell struct {
	opts        Options
	stylesheets []string
}

// Document is a composed page ready to be written.
type Document struct {
	Lang        string
	Title       string
	Description string
	Stylesheets []string
	BodyClass   string
	Navigation  template.HTML
	Main        template.HTML
	LiveReload  string
}

// New validates opts and resolves the stylesheet list once.
func New(opts Options) (*Shell, error) {
	if opts.Lang == "" {
		opts.Lang = "en"
	}
	opts.Stylesheets = append([]Stylesheet(nil), opts.Stylesheets...)
	for i, s := range opts.Stylesheets {
		if s.Name == "" {
			return nil, fmt.Errorf("stylesheet %d: name is empty", i)
		}
		if s.Href == "" {
			return nil, fmt.Errorf("stylesheet %q: href is empty", s.Name)
		}
		switch s.Policy {
		case Always, IfBundled:
		case "":
			opts.Stylesheets[i].Policy = Always
		default:
			return nil, fmt.Errorf("stylesheet %q: unknown policy %q", s.Name, s.Policy)
		}
	}

	return &Shell{
		opts:        opts,
		stylesheets: ResolveStylesheets(opts.Stylesheets, opts.Bundle),
	}, nil
}

// ResolveStylesheets returns the hrefs to link, in order. With a bundle the
// bundle comes first and if-bundled entries are kept; without one only
// always entries remain. Duplicate hrefs keep their first position.
func ResolveStylesheets(sheets []Stylesheet, bundle string) []string {
	seen := make(map[string]bool)
	out := []string{}
	add := func(href string) {
		if !seen[href] {
			seen[href] = true
			out = append(out, href)
		}
	}

	if bundle != "" {
		add(bundle)
	}
	for _, s := range sheets {
		if s.Policy == IfBundled && bundle == "" {
			continue
		}
		add(s.Href)
	}
	return out
}

// Stylesheets returns the resolved stylesheet hrefs.
func (s *Shell) Stylesheets() []string {
	out := make([]string, len(s.stylesheets))
	copy(out, s.stylesheets)
	return out
}

// Nav returns the registry mounted in every document.
func (s *Shell) Nav() *nav.Registry {
	return s.opts.Nav
}

// Compose assembles the document for the active page.
func (s *Shell) Compose(meta page.Meta, active template.HTML) (Document, error) {
	navigation, err := s.opts.Bar.Render(s.opts.Nav)
	if err != nil {
		return Document{}, err
	}

	title := meta.Title
	if title == "" {
		title = s.opts.Title
	}

	return Document{
		Lang:        s.opts.Lang,
		Title:       title,
		Description: meta.Description,
		Stylesheets: s.Stylesheets(),
		BodyClass:   s.opts.BodyClass,
		Navigation:  navigation,
		Main:        active,
		LiveReload:  s.opts.LiveReload,
	}, nil
}

// Render composes and writes the document for the active page.
func (s *Shell) Render(w io.Writer, meta page.Meta, active template.HTML) error {
	doc, err := s.Compose(meta, active)
	if err != nil {
		return err
	}
	return doc.Write(w)
}

// Write executes the document template.
func (d Document) Write(w io.Writer) error {
	if err := documentTemplate.Execute(w, d); err != nil {
		return fmt.Errorf("rendering document: %w", err)
	}
	return nil
}

// String renders the document, returning the error text on failure.
func (d Document) String() string {
	var sb strings.Builder
	if err := d.Write(&sb); err != nil {
		return err.Error()
	}
	return sb.String()
}
