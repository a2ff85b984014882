// ABOUTME: Library of markdown documents backing page bodies, read from an fs.FS by name.
// ABOUTME: Documents from untrusted (on-disk) sources are sanitised with bluemonday after rendering.
package content

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

//go:embed docs/*.md
var docsFS embed.FS

// ErrNotFound is returned when a named document does not exist.
var ErrNotFound = errors.New("content document not found")

// Library resolves document names to rendered HTML.
type Library struct {
	fsys    fs.FS
	trusted bool
	cache   *Cache
}

// Options configures a Library.
type Options struct {
	// Dir overrides the embedded documents with a directory on disk.
	Dir            string
	HighlightStyle string
	CacheTTL       time.Duration
}

// NewLibrary builds a library over fsys. Untrusted libraries sanitise output.
func NewLibrary(fsys fs.FS, trusted bool, highlightStyle string, cacheTTL time.Duration) *Library {
	render := MarkdownRenderFunc(NewMarkdown(highlightStyle))
	if !trusted {
		render = sanitizing(render, sanitizePolicy())
	}
	return &Library{
		fsys:    fsys,
		trusted: trusted,
		cache:   NewCache(render, cacheTTL),
	}
}

// Open returns the embedded library, or a disk-backed one when opts.Dir is set.
func Open(opts Options) (*Library, error) {
	if opts.Dir == "" {
		sub, err := fs.Sub(docsFS, "docs")
		if err != nil {
			return nil, fmt.Errorf("opening embedded docs: %w", err)
		}
		return NewLibrary(sub, true, opts.HighlightStyle, opts.CacheTTL), nil
	}

	info, err := os.Stat(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %s is not a directory", opts.Dir)
	}
	return NewLibrary(os.DirFS(opts.Dir), false, opts.HighlightStyle, opts.CacheTTL), nil
}

// Doc renders the document name.md.
func (l *Library) Doc(name string) (template.HTML, error) {
	source, err := fs.ReadFile(l.fsys, name+".md")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return "", fmt.Errorf("reading document %s: %w", name, err)
	}

	out, err := l.cache.Render(source)
	if err != nil {
		return "", fmt.Errorf("rendering document %s: %w", name, err)
	}
	return template.HTML(out), nil
}

// Trusted reports whether the documents are embedded rather than loaded from disk.
func (l *Library) Trusted() bool {
	return l.trusted
}

// FS exposes the backing filesystem (the live-reload watcher fingerprints it).
func (l *Library) FS() fs.FS {
	return l.fsys
}

// Invalidate drops every cached rendering.
func (l *Library) Invalidate() {
	l.cache.Clear()
}

func sanitizing(next RenderFunc, policy *bluemonday.Policy) RenderFunc {
	return func(source []byte) ([]byte, error) {
		out, err := next(source)
		if err != nil {
			return nil, err
		}
		return policy.SanitizeBytes(out), nil
	}
}

// sanitizePolicy is the UGC policy plus the class attributes chroma emits.
func sanitizePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").OnElements("pre", "code", "span", "div")
	return p
}
