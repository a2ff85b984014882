// ABOUTME: Tests for Registry construction, validation failures, and read-only enumeration.
// ABOUTME: Covers duplicate/empty/relative paths, blank titles, copy-on-read, and nil registries.
package nav

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryAcceptsUniquePaths(t *testing.T) {
	reg, err := NewRegistry("main", []Entry{
		{Title: "Home", Path: "/"},
		{Title: "Courses", Path: "/courses"},
	})
	require.NoError(t, err)
	assert.Equal(t, "main", reg.Name())
	assert.Equal(t, 2, reg.Len())
	assert.True(t, reg.Contains("/courses"))
	assert.False(t, reg.Contains("/courses/markdown"))
}

func TestNewRegistryRejectsDuplicatePath(t *testing.T) {
	_, err := NewRegistry("main", []Entry{
		{Title: "Home", Path: "/"},
		{Title: "Start", Path: "/"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, 1, cfgErr.Index)
	assert.Equal(t, "/", cfgErr.Path)
	assert.Equal(t, "duplicate path", cfgErr.Reason)
}

func TestNewRegistryRejectsMalformedEntries(t *testing.T) {
	cases := map[string]Entry{
		"empty path":    {Title: "Home", Path: ""},
		"relative path": {Title: "Courses", Path: "courses"},
		"blank title":   {Title: "   ", Path: "/x"},
	}
	for name, entry := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewRegistry("broken", []Entry{entry})
			require.ErrorIs(t, err, ErrConfiguration)
			assert.Contains(t, err.Error(), `nav registry "broken"`)
		})
	}
}

func TestRegistryTitlesMayRepeat(t *testing.T) {
	_, err := NewRegistry("main", []Entry{
		{Title: "Docs", Path: "/a"},
		{Title: "Docs", Path: "/b"},
	})
	assert.NoError(t, err)
}

func TestRegistryIsImmutable(t *testing.T) {
	src := []Entry{{Title: "Home", Path: "/"}}
	reg := MustRegistry("main", src...)

	src[0].Title = "Changed"
	out := reg.Entries()
	out[0].Path = "/mutated"

	assert.Equal(t, []Entry{{Title: "Home", Path: "/"}}, reg.Entries())
}

func TestRegistryAllPreservesOrder(t *testing.T) {
	reg := MustRegistry("main",
		Entry{Title: "C", Path: "/c"},
		Entry{Title: "A", Path: "/a"},
		Entry{Title: "B", Path: "/b"},
	)

	var titles []string
	for i, e := range reg.All() {
		assert.Equal(t, len(titles), i)
		titles = append(titles, e.Title)
	}
	assert.Equal(t, []string{"C", "A", "B"}, titles)
}

func TestNilRegistryIsEmpty(t *testing.T) {
	var reg *Registry
	assert.Equal(t, 0, reg.Len())
	assert.Empty(t, reg.Entries())
	assert.False(t, reg.Contains("/"))
	for range reg.All() {
		t.Fatal("nil registry should not yield entries")
	}
}

func TestMustRegistryPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustRegistry("bad", Entry{Title: "x", Path: ""})
	})
}
