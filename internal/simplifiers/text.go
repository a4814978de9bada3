// Package simplifiers holds the text normalization shared by the cleaner and
// the output stage.
package simplifiers

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	retainedChars   = map[rune]bool{
		'\t': true,
		'\n': true,
		'\r': true,
		'\f': true,
	}
)

// NormalizeUnicode normalizes text to NFKC form for consistent character representation
func NormalizeUnicode(text string) string {
	return norm.NFKC.String(text)
}

// NormalizeWhitespace replaces runs of whitespace with a single space and trims
func NormalizeWhitespace(text string) string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(text), " ")
}

// StripControlChars removes Unicode control characters while retaining specific whitespace chars
func StripControlChars(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range text {
		if !unicode.IsControl(r) || retainedChars[r] {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeText strips control characters, applies NFKC and collapses
// whitespace, in that order.
func NormalizeText(text string) string {
	text = StripControlChars(text)
	text = NormalizeUnicode(text)
	text = NormalizeWhitespace(text)
	return text
}

// IsBlank reports whether text holds nothing but whitespace. Text nodes that
// are blank never start a paragraph.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
