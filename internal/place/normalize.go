package place

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents decomposes to NFD and drops the combining marks, so
// "São" and "Sao" come out identical.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// MinQueryLen is the minimum length (in runes) a trimmed input and its
// normalized form must both reach before a suggestion fetch is attempted.
const MinQueryLen = 3

// NormalizeQuery reduces free-text input to a search-safe query string:
// accents are stripped, every character that is not a letter, digit,
// whitespace or hyphen becomes a space, and whitespace runs collapse to a
// single space.
func NormalizeQuery(input string) string {
	if input == "" {
		return ""
	}

	flat, _, err := transform.String(stripAccents, input)
	if err != nil {
		// Malformed UTF-8; fall back to the raw input so the character
		// filter below still applies.
		flat = input
	}

	var b strings.Builder
	b.Grow(len(flat))
	space := false
	for _, r := range flat {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			b.WriteRune(r)
			space = false
			continue
		}
		// Whitespace and punctuation alike collapse to one space.
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}

	return strings.TrimSpace(b.String())
}

// dedupeKey builds the case/accent/punctuation-insensitive identity of a
// suggestion label. Unlike NormalizeQuery, disallowed characters are removed
// outright rather than turned into spaces.
func dedupeKey(label string) string {
	flat, _, err := transform.String(stripAccents, label)
	if err != nil {
		flat = label
	}
	flat = strings.ToLower(flat)

	var b strings.Builder
	b.Grow(len(flat))
	space := false
	for _, r := range flat {
		switch {
		case unicode.IsSpace(r):
			if !space {
				b.WriteByte(' ')
				space = true
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-':
			b.WriteRune(r)
			space = false
		}
	}

	return strings.TrimSpace(b.String())
}

// Deduplicate removes labels that collapse to the same key, keeping the
// first-encountered surface form and the original order.
func Deduplicate(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	unique := make([]string, 0, len(labels))
	for _, label := range labels {
		key := dedupeKey(label)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, label)
	}
	return unique
}
