package render

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/gaurav-prasanna/dailyword/core"
)

// MarkdownRenderer converts the HTML card into Markdown, so both outputs
// share one layout.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the card as Markdown.
func (r *MarkdownRenderer) Render(w core.Widget) ([]byte, error) {
	card, err := execute("card", w)
	if err != nil {
		return nil, err
	}
	md, err := htmltomarkdown.ConvertString(string(card))
	if err != nil {
		return nil, fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return []byte(strings.TrimSpace(md) + "\n"), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// ContentType returns the MIME type for Markdown output.
func (r *MarkdownRenderer) ContentType() string {
	return "text/markdown; charset=utf-8"
}
