// Package source — proxy template rules.
// Expands proxy templates around a target URL and validates the results.
package source

import (
	"fmt"
	"net/url"
	"strings"
)

// Template placeholders.
const (
	placeholderURL   = "{url}"
	placeholderQuery = "{query}"
)

// Expand substitutes the target URL into a proxy template.
// {url} receives the target as-is, {query} receives it query-escaped.
// A template without placeholders is used verbatim.
func Expand(template, target string) string {
	out := strings.ReplaceAll(template, placeholderURL, target)
	return strings.ReplaceAll(out, placeholderQuery, url.QueryEscape(target))
}

// Validate checks that rawURL is an absolute http(s) URL.
func Validate(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", rawURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL %q: scheme must be http or https", rawURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("invalid URL %q: missing host", rawURL)
	}
	return nil
}

// NormalizeURL strips fragments for deduplication.
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	parsed.Fragment = ""
	return parsed.String()
}
