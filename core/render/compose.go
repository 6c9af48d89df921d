// Package render provides the slot composer and output renderers for dailyword.
// Compose fills the widget slots exactly once per run; renderers encode the
// composed widget without touching the pipeline.
package render

import (
	"fmt"
	"time"

	"github.com/gaurav-prasanna/dailyword/core"
	"github.com/gaurav-prasanna/dailyword/core/locale"
)

// Settings holds the fixed strings written into the slots.
type Settings struct {
	Variant           core.Variant
	Title             string
	Locale            string
	Timezone          string
	OKStatus          string
	FailureStatus     string
	FallbackReference string
	FallbackText      string
	FallbackLink      string
	LinkLabel         string
}

// Compose writes the passage into the widget slots. A nil passage means every
// endpoint failed: the fallback strings are used instead.
func Compose(p *core.Passage, endpoint string, now time.Time, s Settings) core.Widget {
	local := locale.In(now, s.Timezone)
	w := core.Widget{
		Variant:     s.Variant,
		Title:       s.Title,
		Date:        locale.FormatDate(local, s.Locale),
		Locale:      s.Locale,
		LinkLabel:   s.LinkLabel,
		GeneratedAt: now.UTC(),
	}

	if p == nil {
		w.Reference = s.FallbackReference
		w.Text = s.FallbackText
		w.Status = s.FailureStatus
		w.Link = s.FallbackLink
		return w
	}

	w.OK = true
	w.Reference = p.Reference
	w.Text = p.Text
	w.Status = s.OKStatus
	w.Link = p.Link
	if w.Link == "" {
		w.Link = s.FallbackLink
	}
	w.Endpoint = endpoint
	return w
}

// New returns the renderer registered under name.
func New(name string) (core.Renderer, error) {
	switch name {
	case "text", "txt", "":
		return NewTextRenderer(), nil
	case "html":
		return NewHTMLRenderer(), nil
	case "markdown", "md":
		return NewMarkdownRenderer(), nil
	case "json":
		return NewJSONRenderer(), nil
	case "pdf":
		return NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", name)
	}
}
