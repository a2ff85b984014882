// ABOUTME: Navigation registry holding the ordered, immutable list of {title, path} links for one navbar variant.
// ABOUTME: Construction validates every entry and fails with ConfigurationError on blank or duplicate paths.
package nav

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// ErrConfiguration matches every *ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("navigation configuration error")

// Entry is one navigable destination.
type Entry struct {
	Title string `yaml:"title" json:"title"`
	Path  string `yaml:"path" json:"path"`
}

// ConfigurationError reports a malformed registry entry. It is fatal to startup.
type ConfigurationError struct {
	Registry string
	Index    int
	Path     string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("nav registry %q: entry %d (path %q): %s", e.Registry, e.Index, e.Path, e.Reason)
}

// Is lets errors.Is(err, ErrConfiguration) match.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// Registry is an ordered, read-only sequence of entries. Order is menu order.
type Registry struct {
	name    string
	entries []Entry
	paths   map[string]struct{}
}

// NewRegistry validates entries and returns a registry holding a private copy.
// Paths must be non-empty, start with "/" and be unique; titles must not be blank.
func NewRegistry(name string, entries []Entry) (*Registry, error) {
	r := &Registry{
		name:    name,
		entries: make([]Entry, 0, len(entries)),
		paths:   make(map[string]struct{}, len(entries)),
	}

	for i, e := range entries {
		fail := func(reason string) error {
			return &ConfigurationError{Registry: name, Index: i, Path: e.Path, Reason: reason}
		}
		switch {
		case e.Path == "":
			return nil, fail("path is empty")
		case !strings.HasPrefix(e.Path, "/"):
			return nil, fail(`path must begin with "/"`)
		case strings.TrimSpace(e.Title) == "":
			return nil, fail("title is empty")
		}
		if _, dup := r.paths[e.Path]; dup {
			return nil, fail("duplicate path")
		}
		r.paths[e.Path] = struct{}{}
		r.entries = append(r.entries, e)
	}

	return r, nil
}

// MustRegistry is NewRegistry for package-level variables; it panics on error.
func MustRegistry(name string, entries ...Entry) *Registry {
	r, err := NewRegistry(name, entries)
	if err != nil {
		panic(err)
	}
	return r
}

// Name returns the variant name the registry was built under.
func (r *Registry) Name() string {
	if r == nil {
		return ""
	}
	return r.name
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Entries returns a copy of the entries in registry order.
func (r *Registry) Entries() []Entry {
	if r == nil {
		return nil
	}
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// All iterates entries in registry order.
func (r *Registry) All() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		if r == nil {
			return
		}
		for i, e := range r.entries {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Contains reports whether path is one of the registry's targets.
func (r *Registry) Contains(path string) bool {
	if r == nil {
		return false
	}
	_, ok := r.paths[path]
	return ok
}
