package normalize

import (
	"bytes"

	"github.com/yuin/goldmark"

	"github.com/gaurav-prasanna/dailyword/core"
)

// MarkdownNormalizer handles proxies that answer with Markdown instead of
// HTML. The body is rendered to HTML first so emphasis, headings and list
// markers disappear the same way tags do.
type MarkdownNormalizer struct {
	md goldmark.Markdown
}

// NewMarkdown creates a MarkdownNormalizer.
func NewMarkdown() *MarkdownNormalizer {
	return &MarkdownNormalizer{md: goldmark.New()}
}

// Normalize converts Markdown to plain text.
func (n *MarkdownNormalizer) Normalize(raw string) (string, error) {
	var buf bytes.Buffer
	if err := n.md.Convert([]byte(raw), &buf); err != nil {
		return "", core.Errorf(core.KindParse, "converting markdown: %w", err)
	}
	return HTMLToText(buf.String())
}
