package normalize

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/gaurav-prasanna/dailyword/core"
)

// Field paths tried in order. The first is the flat shape; the rest are the
// nested shapes used by verse-of-the-day APIs.
var (
	referencePaths = []string{"reference", "verse.details.reference", "verse.reference"}
	textPaths      = []string{"text", "verse.details.text", "verse.text"}
	linkPaths      = []string{"link", "url", "verse.details.verseurl", "verse.details.url", "verse.url"}
)

// JSONNormalizer decodes a JSON envelope, possibly wrapped in proxy noise.
type JSONNormalizer struct{}

// NewJSON creates a JSONNormalizer.
func NewJSON() *JSONNormalizer {
	return &JSONNormalizer{}
}

// Normalize returns a canonical flat envelope {"reference","text","link"}
// whose text has been reduced from HTML to plain text.
func (n *JSONNormalizer) Normalize(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end < start {
		return "", core.Errorf(core.KindParse, "no JSON object in body")
	}
	body := raw[start : end+1]
	if !gjson.Valid(body) {
		return "", core.Errorf(core.KindParse, "invalid JSON object")
	}

	doc := gjson.Parse(body)
	reference := firstString(doc, referencePaths)
	if reference == "" {
		return "", core.Errorf(core.KindParse, "reference field missing")
	}
	rawText := firstString(doc, textPaths)
	if rawText == "" {
		return "", core.Errorf(core.KindParse, "text field missing")
	}
	text, err := HTMLToText(rawText)
	if err != nil {
		return "", err
	}

	out, err := sjson.Set("{}", "reference", reference)
	if err != nil {
		return "", core.Errorf(core.KindParse, "building envelope: %w", err)
	}
	if out, err = sjson.Set(out, "text", text); err != nil {
		return "", core.Errorf(core.KindParse, "building envelope: %w", err)
	}
	if link := firstString(doc, linkPaths); link != "" {
		if out, err = sjson.Set(out, "link", link); err != nil {
			return "", core.Errorf(core.KindParse, "building envelope: %w", err)
		}
	}
	return out, nil
}

func firstString(doc gjson.Result, paths []string) string {
	for _, p := range paths {
		if v := doc.Get(p); v.Type == gjson.String {
			if s := strings.TrimSpace(v.String()); s != "" {
				return s
			}
		}
	}
	return ""
}
