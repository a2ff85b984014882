// ABOUTME: NavigationBar renderer that turns a Registry into a <nav> list of links.
// ABOUTME: One Bar type parameterised by Style replaces per-variant copies of the same markup.
package nav

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/navbar.html
var templateFS embed.FS

var barTemplate = template.Must(template.ParseFS(templateFS, "templates/navbar.html"))

// Style holds the CSS classes applied to each level of the bar's markup.
// Empty fields emit no class attribute.
type Style struct {
	NavClass  string `yaml:"nav_class"`
	ListClass string `yaml:"list_class"`
	ItemClass string `yaml:"item_class"`
	LinkClass string `yaml:"link_class"`
}

// Bar renders registries. It holds no state beyond its style.
type Bar struct {
	Style Style
}

type barData struct {
	Name    string
	Style   Style
	Entries []Entry
}

// Render produces the bar markup for reg: one link per entry, in registry order.
// A nil or empty registry renders an empty list.
func (b Bar) Render(reg *Registry) (template.HTML, error) {
	var sb strings.Builder
	data := barData{
		Name:    reg.Name(),
		Style:   b.Style,
		Entries: reg.Entries(),
	}
	if err := barTemplate.ExecuteTemplate(&sb, "navbar", data); err != nil {
		return "", fmt.Errorf("rendering navbar %q: %w", reg.Name(), err)
	}
	return template.HTML(sb.String()), nil
}
