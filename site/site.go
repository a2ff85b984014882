// ABOUTME: YAML site definition covering document defaults, navbar variants, stylesheets, and page metadata.
// ABOUTME: An embedded default ships with the binary; a file on disk can replace it wholesale.
package site

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/2389-research/coursesite/nav"
	"github.com/2389-research/coursesite/page"
	"github.com/2389-research/coursesite/shell"
	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var defaultYAML []byte

// Navbar is one navigation variant: its links and display style.
type Navbar struct {
	Style nav.Style   `yaml:"style"`
	Links []nav.Entry `yaml:"links"`
}

// Pages carries the metadata each page contributes to the document head.
type Pages struct {
	Index   page.Meta `yaml:"index"`
	Courses page.Meta `yaml:"courses"`
}

// Definition is the parsed site file.
type Definition struct {
	Title          string             `yaml:"title"`
	Lang           string             `yaml:"lang"`
	BodyClass      string             `yaml:"body_class"`
	HighlightStyle string             `yaml:"highlight_style"`
	Navigation     string             `yaml:"navigation"`
	Navbars        map[string]Navbar  `yaml:"navbars"`
	Stylesheets    []shell.Stylesheet `yaml:"stylesheets"`
	Pages          Pages              `yaml:"pages"`
}

// Default returns the embedded site definition.
func Default() (*Definition, error) {
	return Parse(defaultYAML)
}

// Load reads a site definition from path.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading site file: %w", err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Parse decodes and validates a site definition. Unknown keys are rejected.
func Parse(data []byte) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("site definition is empty")
		}
		return nil, fmt.Errorf("parsing site definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks the fields that do not depend on the route table.
func (d *Definition) Validate() error {
	if d.Title == "" {
		return errors.New("site definition: title is required")
	}
	if d.Navigation == "" {
		return errors.New("site definition: navigation is required")
	}
	if _, ok := d.Navbars[d.Navigation]; !ok {
		return fmt.Errorf("site definition: navigation %q is not a defined navbar", d.Navigation)
	}
	return nil
}

// NavbarNames returns the variant names, sorted.
func (d *Definition) NavbarNames() []string {
	names := make([]string, 0, len(d.Navbars))
	for name := range d.Navbars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Registries builds a registry for every navbar variant. The first malformed
// variant, in name order, fails with a *nav.ConfigurationError.
func (d *Definition) Registries() (map[string]*nav.Registry, error) {
	out := make(map[string]*nav.Registry, len(d.Navbars))
	for _, name := range d.NavbarNames() {
		reg, err := nav.NewRegistry(name, d.Navbars[name].Links)
		if err != nil {
			return nil, err
		}
		out[name] = reg
	}
	return out, nil
}
