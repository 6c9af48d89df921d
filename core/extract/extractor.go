// Package extract implements the Extractor interface.
// GospelExtractor isolates the day's Gospel from a liturgy page by:
//  1. Finding the "Label (citation)" anchor
//  2. Cutting at the terminal phrase and after the liturgical response
//  3. Removing boilerplate lines, markup residue and verse numbers
//
// VerseExtractor reads a verse of the day from a normalized JSON envelope.
package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gaurav-prasanna/dailyword/core"
	"github.com/gaurav-prasanna/dailyword/core/normalize"
)

// Options configures a GospelExtractor. Phrases are regular expression
// fragments and are always matched case-insensitively.
type Options struct {
	Anchor       string
	Terminal     string
	Response     string
	Proclamation string
	Boilerplate  []string

	// RequireTerminal fails extraction when Terminal is absent; otherwise the
	// passage runs to the end of the text.
	RequireTerminal    bool
	RemoveMarkdown     bool
	RemoveVerseNumbers bool
	// MinLength is the minimum passage length in runes.
	MinLength int
	// Link is reported as the passage source.
	Link string
}

// DefaultOptions returns the settings for the pt-BR daily liturgy.
func DefaultOptions() Options {
	return Options{
		Anchor:       `Evangelho`,
		Terminal:     `Palavra da Salva[cç][aã]o`,
		Response:     `Gl[oó]ria a v[oó]s,\s*Senhor`,
		Proclamation: `Proclama[cç][aã]o do Evangelho`,
		Boilerplate: []string{
			`Gl[oó]ria a v[oó]s,\s*Senhor`,
			`Palavra do Senhor`,
			`Gra[cç]as a Deus`,
		},
		RequireTerminal:    true,
		RemoveMarkdown:     true,
		RemoveVerseNumbers: true,
		MinLength:          40,
	}
}

// GospelExtractor extracts a passage bounded by anchor phrases.
type GospelExtractor struct {
	opts         Options
	anchor       *regexp.Regexp
	terminal     *regexp.Regexp
	response     *regexp.Regexp
	proclamation *regexp.Regexp
	boilerplate  []*regexp.Regexp
}

// New compiles the phrase patterns in opts.
func New(opts Options) (*GospelExtractor, error) {
	if opts.Anchor == "" {
		return nil, fmt.Errorf("anchor phrase is required")
	}
	e := &GospelExtractor{opts: opts}

	var err error
	if e.anchor, err = compile(`(?:` + opts.Anchor + `)\s*\(([^)]+)\)`); err != nil {
		return nil, fmt.Errorf("anchor: %w", err)
	}
	if e.terminal, err = compile(opts.Terminal); err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	if e.response, err = compile(opts.Response); err != nil {
		return nil, fmt.Errorf("response: %w", err)
	}
	if e.proclamation, err = compile(opts.Proclamation); err != nil {
		return nil, fmt.Errorf("proclamation: %w", err)
	}
	for _, p := range opts.Boilerplate {
		if p == "" {
			continue
		}
		// Whole line, optional leading dash, optional trailing period.
		re, err := regexp.Compile(`(?im)^[-–—]?\s*(?:` + p + `)\.?\s*$`)
		if err != nil {
			return nil, fmt.Errorf("boilerplate %q: %w", p, err)
		}
		e.boilerplate = append(e.boilerplate, re)
	}
	return e, nil
}

// compile returns nil for an empty pattern.
func compile(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	return regexp.Compile(`(?i)` + pattern)
}

// Extract locates the passage in normalized text.
func (e *GospelExtractor) Extract(text string) (*core.Passage, error) {
	m := e.anchor.FindStringSubmatchIndex(text)
	if m == nil {
		return nil, core.Errorf(core.KindParse, "anchor not found")
	}
	reference := strings.TrimSpace(text[m[2]:m[3]])
	chunk := text[m[0]:]

	if e.terminal != nil {
		if loc := e.terminal.FindStringIndex(chunk); loc != nil {
			chunk = TrimDanglingDash(chunk[:loc[0]])
		} else if e.opts.RequireTerminal {
			return nil, core.Errorf(core.KindParse, "terminal phrase not found")
		}
	}

	// Start right after the response line, or after the proclamation line.
	var cut bool
	if chunk, cut = cutThroughLine(chunk, e.response); !cut {
		chunk, _ = cutThroughLine(chunk, e.proclamation)
	}

	for _, re := range e.boilerplate {
		chunk = re.ReplaceAllString(chunk, "")
	}
	chunk = strings.TrimSpace(chunk)

	if e.opts.RemoveMarkdown {
		chunk = StripMarkdown(chunk)
		reference = StripMarkdown(reference)
	}
	if e.opts.RemoveVerseNumbers {
		chunk = StripVerseNumbers(chunk)
	}
	chunk = normalize.Spaces(chunk)

	if reference == "" {
		return nil, core.Errorf(core.KindParse, "empty reference")
	}
	if n := utf8.RuneCountInString(chunk); n < e.opts.MinLength || n == 0 {
		return nil, core.Errorf(core.KindEmpty, "passage too short after cleaning (%d < %d)", n, e.opts.MinLength)
	}

	return &core.Passage{
		Reference: reference,
		Text:      chunk,
		Link:      e.opts.Link,
	}, nil
}

// cutThroughLine drops everything up to and including the line holding the
// first match of re. It reports whether re matched.
func cutThroughLine(s string, re *regexp.Regexp) (string, bool) {
	if re == nil {
		return s, false
	}
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s, false
	}
	s = s[loc[0]:]
	if i := strings.IndexByte(s, '\n'); i != -1 {
		s = s[i+1:]
	}
	return s, true
}
