// Package normalize implements the Normalizer interface for each source format.
// html and markdown bodies are reduced to plain text; json bodies are reduced
// to a canonical flat envelope whose text field is already plain.
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/dailyword/core"
)

var (
	trailingSpaceRe = regexp.MustCompile(`[ \t]+\n`)
	blankRunRe      = regexp.MustCompile(`\n{3,}`)
)

// Spaces applies the whitespace rule shared by every stage: no carriage
// returns, no trailing horizontal whitespace before a newline, at most one
// blank line in a row, no surrounding whitespace.
func Spaces(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = trailingSpaceRe.ReplaceAllString(s, "\n")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// HTMLToText parses an HTML document or fragment and returns its text with
// paragraph structure kept as newlines. Script, style, noscript and template
// content is dropped. Scripting is disabled while parsing so that noscript
// bodies become elements instead of raw markup text.
func HTMLToText(fragment string) (string, error) {
	root, err := html.ParseWithOptions(strings.NewReader(fragment), html.ParseOptionEnableScripting(false))
	if err != nil {
		return "", core.Errorf(core.KindParse, "parsing HTML: %w", err)
	}
	doc := goquery.NewDocumentFromNode(root)
	doc.Find("script, style, noscript, template").Remove()

	var b strings.Builder
	for _, n := range doc.Nodes {
		writeText(&b, n)
	}
	text := strings.ReplaceAll(b.String(), "\u00a0", " ")
	return Spaces(text), nil
}

// writeText appends the text of n and its descendants to b.
// Line breaks become "\n"; paragraph and heading ends become a blank line;
// list item and div ends become a single newline.
func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.ElementNode:
		if n.Data == "br" {
			b.WriteString("\n")
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}

	if n.Type != html.ElementNode {
		return
	}
	switch n.Data {
	case "p", "h1", "h2", "h3", "h4", "h5", "h6":
		b.WriteString("\n\n")
	case "li", "div":
		b.WriteString("\n")
	}
}

// New returns the Normalizer for a source format.
func New(format core.Format) (core.Normalizer, error) {
	switch format {
	case core.FormatHTML, "":
		return NewHTML(), nil
	case core.FormatMarkdown:
		return NewMarkdown(), nil
	case core.FormatJSON:
		return NewJSON(), nil
	default:
		return nil, fmt.Errorf("unknown source format %q", format)
	}
}
