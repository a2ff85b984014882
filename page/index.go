// ABOUTME: Index page component rendering the home document and supplying the site's landing metadata.
package page

import (
	"fmt"
	"html/template"
)

// Index is the page mounted at "/".
type Index struct {
	docs DocSource
	meta Meta
}

// NewIndex returns a constructor for the index page.
func NewIndex(docs DocSource, meta Meta) Constructor {
	return func() Component {
		return Index{docs: docs, meta: meta}
	}
}

// Meta returns the title and description configured for the landing page.
func (p Index) Meta() Meta {
	return p.meta
}

// Render ignores slot; the index page has no children.
func (p Index) Render(template.HTML) (template.HTML, error) {
	body, err := p.docs.Doc("index")
	if err != nil {
		return "", fmt.Errorf("index page: %w", err)
	}
	return execute("index", body)
}
