package extract

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/gaurav-prasanna/dailyword/core"
	"github.com/gaurav-prasanna/dailyword/core/normalize"
)

// VerseOptions configures a VerseExtractor.
type VerseOptions struct {
	// LinkTemplate builds the source link when the payload has none.
	// "{reference}" is replaced with the query-escaped reference.
	LinkTemplate string
	MinLength    int
}

// VerseExtractor reads reference, text and link from the canonical envelope
// produced by normalize.JSONNormalizer. No anchor search or boilerplate
// removal is applied.
type VerseExtractor struct {
	opts VerseOptions
}

// NewVerse creates a VerseExtractor.
func NewVerse(opts VerseOptions) *VerseExtractor {
	if opts.MinLength <= 0 {
		opts.MinLength = 1
	}
	return &VerseExtractor{opts: opts}
}

// Extract returns the verse held in the envelope.
func (e *VerseExtractor) Extract(text string) (*core.Passage, error) {
	if !gjson.Valid(text) {
		return nil, core.Errorf(core.KindParse, "envelope is not valid JSON")
	}
	doc := gjson.Parse(text)

	reference := strings.TrimSpace(doc.Get("reference").String())
	if reference == "" {
		return nil, core.Errorf(core.KindParse, "reference field missing")
	}
	body := normalize.Spaces(doc.Get("text").String())
	if n := utf8.RuneCountInString(body); n < e.opts.MinLength {
		return nil, core.Errorf(core.KindEmpty, "verse too short (%d < %d)", n, e.opts.MinLength)
	}

	link := strings.TrimSpace(doc.Get("link").String())
	if link == "" && e.opts.LinkTemplate != "" {
		link = strings.ReplaceAll(e.opts.LinkTemplate, "{reference}", url.QueryEscape(reference))
	}

	return &core.Passage{
		Reference: reference,
		Text:      body,
		Link:      link,
	}, nil
}
