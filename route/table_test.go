// ABOUTME: Tests for route table flattening, validation, resolution, nested rendering, and chi mounting.
// ABOUTME: Uses tiny stub components so slot threading and meta precedence are visible in output.
package route

import (
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/2389-research/coursesite/page"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stub struct {
	meta page.Meta
	wrap string
	err  error
}

func (s stub) Meta() page.Meta { return s.meta }

func (s stub) Render(slot template.HTML) (template.HTML, error) {
	if s.err != nil {
		return "", s.err
	}
	return template.HTML("<" + s.wrap + ">" + string(slot) + "</" + s.wrap + ">"), nil
}

func ctor(c page.Component) page.Constructor {
	return func() page.Component { return c }
}

func siteRoutes() []Route {
	return []Route{
		{Pattern: "/", Name: "index", Page: ctor(stub{meta: page.Meta{Title: "Home"}, wrap: "home"})},
		{
			Pattern: "/courses",
			Name:    "courses",
			Layout:  ctor(stub{wrap: "main"}),
			Index:   ctor(stub{meta: page.Meta{Title: "Courses"}, wrap: "list"}),
			Children: []Route{
				{Pattern: "rules", Name: "rules", Page: ctor(stub{wrap: "rules"})},
			},
		},
	}
}

func TestNewTableFlattensNestedRoutes(t *testing.T) {
	table, err := NewTable(siteRoutes()...)
	require.NoError(t, err)

	assert.Equal(t, []string{"/", "/courses", "/courses/rules"}, table.Paths())
	entries := table.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, 1, entries[0].Depth())
	assert.Equal(t, 2, entries[1].Depth())
	assert.Equal(t, "courses", entries[1].Name)
}

func TestNewTableRejectsInvalidRoutes(t *testing.T) {
	cases := map[string][]Route{
		"relative top-level": {{Pattern: "courses", Page: ctor(stub{})}},
		"duplicate path":     {{Pattern: "/a", Page: ctor(stub{})}, {Pattern: "/a/", Page: ctor(stub{})}},
		"no component":       {{Pattern: "/a"}},
		"absolute child": {{
			Pattern: "/a", Layout: ctor(stub{}),
			Children: []Route{{Pattern: "/b", Page: ctor(stub{})}},
		}},
		"children without layout": {{
			Pattern: "/a", Page: ctor(stub{}),
			Children: []Route{{Pattern: "b", Page: ctor(stub{})}},
		}},
		"page with layout": {{
			Pattern: "/y", Page: ctor(stub{}), Layout: ctor(stub{}),
		}},
		"layout without index or children": {{
			Pattern: "/y", Layout: ctor(stub{}),
		}},
		"empty child pattern": {{
			Pattern: "/a", Layout: ctor(stub{}),
			Children: []Route{{Page: ctor(stub{})}},
		}},
	}
	for name, routes := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewTable(routes...)
			assert.Error(t, err)
		})
	}
}

func TestResolveNormalizesTrailingSlash(t *testing.T) {
	table, err := NewTable(siteRoutes()...)
	require.NoError(t, err)

	m, err := table.Resolve("/courses/")
	require.NoError(t, err)
	assert.Equal(t, "/courses", m.Path)
	assert.True(t, table.Has("/courses/rules/"))
}

func TestResolveUnknownPath(t *testing.T) {
	table, err := NewTable(siteRoutes()...)
	require.NoError(t, err)

	_, err = table.Resolve("/courses/markdown")
	require.ErrorIs(t, err, ErrNotFound)
	assert.False(t, table.Has("/courses/markdown"))
}

func TestMatchRenderThreadsSlots(t *testing.T) {
	table, err := NewTable(siteRoutes()...)
	require.NoError(t, err)

	m, err := table.Resolve("/courses")
	require.NoError(t, err)
	meta, out, err := m.Render()
	require.NoError(t, err)
	assert.Equal(t, template.HTML("<main><list></list></main>"), out)
	assert.Equal(t, "Courses", meta.Title)

	m, err = table.Resolve("/courses/rules")
	require.NoError(t, err)
	meta, out, err = m.Render()
	require.NoError(t, err)
	assert.Equal(t, template.HTML("<main><rules></rules></main>"), out)
	assert.Empty(t, meta.Title)
}

func TestMatchRenderMergesMetaFieldByField(t *testing.T) {
	table, err := NewTable(Route{
		Pattern: "/x",
		Layout:  ctor(stub{meta: page.Meta{Title: "Section"}, wrap: "main"}),
		Index:   ctor(stub{meta: page.Meta{Description: "child desc"}, wrap: "list"}),
	})
	require.NoError(t, err)

	m, err := table.Resolve("/x")
	require.NoError(t, err)
	meta, _, err := m.Render()
	require.NoError(t, err)
	assert.Equal(t, page.Meta{Title: "Section", Description: "child desc"}, meta)
}

func TestMatchRenderKeepsChildDescriptionUnderEmptyLayout(t *testing.T) {
	table, err := NewTable(Route{
		Pattern: "/x",
		Layout:  ctor(stub{wrap: "main"}),
		Index:   ctor(stub{meta: page.Meta{Description: "child desc"}, wrap: "list"}),
	})
	require.NoError(t, err)

	m, err := table.Resolve("/x")
	require.NoError(t, err)
	meta, _, err := m.Render()
	require.NoError(t, err)
	assert.Equal(t, "child desc", meta.Description)
	assert.Empty(t, meta.Title)
}

func TestMatchRenderPropagatesErrors(t *testing.T) {
	table, err := NewTable(Route{Pattern: "/", Page: ctor(stub{err: errors.New("boom")})})
	require.NoError(t, err)

	m, err := table.Resolve("/")
	require.NoError(t, err)
	_, _, err = m.Render()
	assert.ErrorContains(t, err, "boom")
}

func TestMountRegistersGetAndHead(t *testing.T) {
	table, err := NewTable(siteRoutes()...)
	require.NoError(t, err)

	r := chi.NewRouter()
	table.Mount(r, func(m Match) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			_, out, _ := m.Render()
			w.Write([]byte(out))
		}
	})

	for _, method := range []string{http.MethodGet, http.MethodHead} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(method, "/courses/rules", nil))
		assert.Equal(t, http.StatusOK, rec.Code, method)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "<home></home>", rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
