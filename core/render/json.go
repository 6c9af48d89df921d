package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/dailyword/core"
	"github.com/gaurav-prasanna/dailyword/core/chunk"
)

// JSONRenderer produces the widget as a JSON document.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

type widgetJSON struct {
	core.Widget
	Excerpt    string   `json:"excerpt"`
	Paragraphs []string `json:"paragraphs"`
}

// Render marshals the widget plus an excerpt and its paragraphs.
func (r *JSONRenderer) Render(w core.Widget) ([]byte, error) {
	out := widgetJSON{
		Widget:     w,
		Excerpt:    chunk.New(0).Excerpt(w.Text),
		Paragraphs: []string{},
	}
	for _, lines := range chunk.Paragraphs(w.Text) {
		out.Paragraphs = append(out.Paragraphs, strings.Join(lines, "\n"))
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// ContentType returns the MIME type for JSON output.
func (r *JSONRenderer) ContentType() string {
	return "application/json"
}
