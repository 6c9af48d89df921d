package render

import (
	"strings"

	"github.com/gaurav-prasanna/dailyword/core"
)

// TextRenderer writes the widget as plain text for terminals.
type TextRenderer struct{}

// NewTextRenderer creates a TextRenderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Render lays out date, title, reference, passage and status.
func (r *TextRenderer) Render(w core.Widget) ([]byte, error) {
	var b strings.Builder
	b.WriteString(w.Date + "\n")
	if w.Title != "" {
		b.WriteString(w.Title + "\n")
	}
	b.WriteString("\n" + w.Reference + "\n\n")
	b.WriteString(w.Text + "\n\n")
	b.WriteString(w.Status + "\n")
	if w.Link != "" {
		b.WriteString(w.Link + "\n")
	}
	return []byte(b.String()), nil
}

// Extension returns the file extension for text output.
func (r *TextRenderer) Extension() string {
	return ".txt"
}

// ContentType returns the MIME type for text output.
func (r *TextRenderer) ContentType() string {
	return "text/plain; charset=utf-8"
}
