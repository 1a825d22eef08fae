// Package normalize holds the single text-normalization routine shared by
// book search deduplication and quote query sanitization.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, drops combining marks and recomposes,
// turning "Café" into "Cafe".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold canonicalizes a string for identity comparison: lowercase, diacritics
// stripped, every rune that is neither a word character nor whitespace
// removed, surrounding whitespace trimmed. "DÜNE!" and "dune" fold equal.
func Fold(s string) string {
	s = strings.ToLower(s)
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isWordRune(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// SanitizeQuery strips everything that is not a word character, whitespace,
// or a Latin-1 letter with diacritics. Unlike Fold it keeps accents and
// case, matching how the stored documents are tokenized: the 'simple'
// full-text configuration does not fold accents either, so stripping them
// from the query would break matches against accented quote text.
func SanitizeQuery(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isWordRune(r) || unicode.IsSpace(r) || isLatin1Supplement(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// isWordRune mirrors the regexp \w class.
func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}

// isLatin1Supplement covers the À-ÿ range.
func isLatin1Supplement(r rune) bool {
	return r >= 0x00C0 && r <= 0x00FF
}
