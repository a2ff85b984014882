// ABOUTME: Page component contract shared by every route: metadata plus a pure render of markup.
// ABOUTME: Layouts receive their active child's markup as the slot; leaf pages ignore it.
package page

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Meta is the document metadata a page contributes to the shell's head.
type Meta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Component renders one route. Implementations hold no mutable state.
type Component interface {
	Meta() Meta
	Render(slot template.HTML) (template.HTML, error)
}

// Constructor builds a Component for a route.
type Constructor func() Component

// DocSource supplies rendered markdown bodies by name.
type DocSource interface {
	Doc(name string) (template.HTML, error)
}

func execute(name string, data any) (template.HTML, error) {
	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return template.HTML(sb.String()), nil
}
