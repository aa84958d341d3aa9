package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName computes the dedup key for an item name: trimmed,
// case-folded, internal whitespace collapsed to single spaces, and
// diacritics removed so that "Jalapeño" and "jalapeno" collide.
func NormalizeName(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.Join(strings.Fields(s), " ")

	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return folded
}
