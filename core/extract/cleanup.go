package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	emphasisReplacer = strings.NewReplacer("*", "", "_", "")
	bulletRe         = regexp.MustCompile(`(?m)^[ \t]*[-–—•][ \t]*`)
	doubleSpaceRe    = regexp.MustCompile(`[ \t]{2,}`)
	lineLeadRe       = regexp.MustCompile(`(?m)^[ \t]+`)
	danglingDashRe   = regexp.MustCompile(`\n[ \t]*[-–—][ \t]*$`)
)

// StripMarkdown removes emphasis markers (*, **, ***, _, __) and leading
// bullets left behind by proxies that answer in Markdown.
func StripMarkdown(s string) string {
	s = emphasisReplacer.Replace(s)
	s = bulletRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// TrimDanglingDash removes a last line holding only a dash, left over when a
// dashed marker line such as "– Palavra da Salvação" is cut off.
func TrimDanglingDash(s string) string {
	s = strings.TrimRight(s, " \t\n")
	return strings.TrimRight(danglingDashRe.ReplaceAllString(s, ""), " \t\n")
}

// StripVerseNumbers removes standalone verse numbers such as "21", "21a" or
// "21b". A token is only removed when it is whitespace-delimited on both
// sides; digits inside larger tokens ("1,21b-28", "2026.") are kept.
func StripVerseNumbers(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsSpace(r) {
			b.WriteString(s[i : i+size])
			i += size
			continue
		}

		j := i
		for j < len(s) {
			r, size := utf8.DecodeRuneInString(s[j:])
			if unicode.IsSpace(r) {
				break
			}
			j += size
		}
		if tok := s[i:j]; j == len(s) || !isVerseNumber(tok) {
			b.WriteString(tok)
		}
		i = j
	}

	out := doubleSpaceRe.ReplaceAllString(b.String(), " ")
	out = lineLeadRe.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}

// isVerseNumber matches 1-3 ASCII digits with an optional "a" or "b" suffix.
func isVerseNumber(tok string) bool {
	digits := tok
	if n := len(tok); n > 1 && (tok[n-1] == 'a' || tok[n-1] == 'b') {
		digits = tok[:n-1]
	}
	if len(digits) == 0 || len(digits) > 3 {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}
