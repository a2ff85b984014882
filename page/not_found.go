// ABOUTME: Not-found page rendered through the shell when the router has no route for a path.
// ABOUTME: Names the requested path so a dead link is easy to trace back to its source.
package page

import "html/template"

// NotFound is rendered by the server when the router has no route for a path.
type NotFound struct {
	Path string
}

func (p NotFound) Meta() Meta {
	return Meta{Title: "Not Found"}
}

func (p NotFound) Render(template.HTML) (template.HTML, error) {
	return execute("not_found", p.Path)
}
