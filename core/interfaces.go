// Package core defines the pipeline types and interfaces for dailyword.
// Each stage of the pipeline is a small, testable interface.
package core

import (
	"context"
	"time"
)

// Format identifies how an endpoint's body must be normalized.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Variant identifies which daily text is being fetched.
type Variant string

const (
	VariantGospel Variant = "gospel"
	VariantVerse  Variant = "verse"
)

// Endpoint is one proxy URL in the ordered fallback list.
type Endpoint struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Format Format `json:"format"`
}

// FetchResult holds the raw body and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	Body       string
}

// Passage is the outcome of a successful extraction.
type Passage struct {
	Reference string `json:"reference"`
	Text      string `json:"text"`
	Link      string `json:"link,omitempty"`
}

// Widget holds the presentation slots written once per run.
type Widget struct {
	Variant     Variant   `json:"variant"`
	Title       string    `json:"title"`
	Date        string    `json:"date"`
	Reference   string    `json:"reference"`
	Text        string    `json:"text"`
	Status      string    `json:"status"`
	Link        string    `json:"link"`
	LinkLabel   string    `json:"-"`
	Locale      string    `json:"locale"`
	OK          bool      `json:"ok"`
	Endpoint    string    `json:"endpoint,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Fetcher retrieves the raw body behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Normalizer turns a raw body into normalized text.
type Normalizer interface {
	Normalize(raw string) (string, error)
}

// Extractor locates the passage inside normalized text.
type Extractor interface {
	Extract(text string) (*Passage, error)
}

// Renderer encodes a composed widget into an output format.
type Renderer interface {
	Render(w Widget) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".html", ".pdf").
	Extension() string
	// ContentType returns the MIME type used when serving the output.
	ContentType() string
}
