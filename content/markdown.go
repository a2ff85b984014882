// ABOUTME: Goldmark markdown converter with GFM and chroma syntax highlighting emitted as CSS classes.
// ABOUTME: HighlightCSS produces the matching chroma stylesheet so code blocks are styled without inline styles.
package content

import (
	"bytes"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
)

// DefaultHighlightStyle is used when the site definition names none.
const DefaultHighlightStyle = "dracula"

// NewMarkdown returns a goldmark instance configured for page bodies.
// Raw HTML in the source is dropped by goldmark's default renderer.
func NewMarkdown(highlightStyle string) goldmark.Markdown {
	if highlightStyle == "" {
		highlightStyle = DefaultHighlightStyle
	}
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(highlightStyle),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
	)
}

// MarkdownRenderFunc adapts md to a RenderFunc.
func MarkdownRenderFunc(md goldmark.Markdown) RenderFunc {
	return func(source []byte) ([]byte, error) {
		var buf bytes.Buffer
		if err := md.Convert(source, &buf); err != nil {
			return nil, fmt.Errorf("converting markdown: %w", err)
		}
		return buf.Bytes(), nil
	}
}

// HighlightCSS returns the chroma stylesheet for the named style. Unknown
// names fall back to chroma's default style.
func HighlightCSS(style string) ([]byte, error) {
	if style == "" {
		style = DefaultHighlightStyle
	}
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(style)); err != nil {
		return nil, fmt.Errorf("writing highlight css for %q: %w", style, err)
	}
	return buf.Bytes(), nil
}
