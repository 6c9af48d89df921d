package normalize

import (
	"regexp"

	"github.com/gaurav-prasanna/dailyword/core"
)

var documentStartRe = regexp.MustCompile(`(?i)<!doctype html|<html`)

// HTMLNormalizer reduces a full HTML page to plain text.
type HTMLNormalizer struct{}

// NewHTML creates an HTMLNormalizer.
func NewHTML() *HTMLNormalizer {
	return &HTMLNormalizer{}
}

// Normalize slices the body from its document start marker and converts it to
// text. Proxies may prepend noise, so anything before the marker is ignored.
func (n *HTMLNormalizer) Normalize(raw string) (string, error) {
	loc := documentStartRe.FindStringIndex(raw)
	if loc == nil {
		return "", core.Errorf(core.KindParse, "no HTML document start found")
	}
	return HTMLToText(raw[loc[0]:])
}
