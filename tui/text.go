// ABOUTME: Converts a rendered HTML document into plain text for the terminal preview.
// ABOUTME: Headings become "#" prefixes, list items "- ", and links keep their target in parentheses.
package tui

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PlainText renders doc as readable plain text. The document head and any
// scripts are skipped.
func PlainText(doc []byte) (string, error) {
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("parsing document: %w", err)
	}
	var b strings.Builder
	writeText(&b, root, false)
	return tidy(b.String()), nil
}

func writeText(b *strings.Builder, n *html.Node, pre bool) {
	switch n.Type {
	case html.TextNode:
		if pre {
			b.WriteString(n.Data)
		} else {
			b.WriteString(collapseSpace(n.Data))
		}
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Head, atom.Script, atom.Style:
			return
		case atom.Br:
			b.WriteString("\n")
			return
		case atom.Pre:
			pre = true
		}
	}

	block := n.Type == html.ElementNode && isBlock(n.DataAtom)
	if block {
		b.WriteString("\n")
	}
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			b.WriteString(strings.Repeat("#", int(n.Data[1]-'0')) + " ")
		case atom.Li:
			b.WriteString("- ")
		}
	}

	for c := range n.ChildNodes() {
		writeText(b, c, pre)
	}

	if n.Type == html.ElementNode && n.DataAtom == atom.A {
		if href := attr(n, "href"); href != "" {
			b.WriteString(" (" + href + ")")
		}
	}
	// List items only open a line so consecutive items stay adjacent.
	if block && n.DataAtom != atom.Li {
		b.WriteString("\n")
	}
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Main, atom.Nav, atom.Ul, atom.Ol, atom.Li, atom.Pre,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Blockquote, atom.Table, atom.Tr, atom.Section, atom.Article, atom.Header, atom.Footer:
		return true
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func collapseSpace(s string) string {
	if strings.TrimSpace(s) == "" {
		if s == "" {
			return ""
		}
		return " "
	}
	out := strings.Join(strings.Fields(s), " ")
	if isSpace(s[0]) {
		out = " " + out
	}
	if isSpace(s[len(s)-1]) {
		out += " "
	}
	return out
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t' || c == '\r'
}

// tidy trims every line and folds runs of blank lines into one.
func tidy(s string) string {
	var out []string
	blank := true
	for line := range strings.SplitSeq(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
