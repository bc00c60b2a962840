package clients

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize is the matching form of a name: lower case, no diacritics, only
// [a-z0-9 ]. It is never stored as a display name.
func Normalize(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatName capitalizes the first letter of each word and lowercases the rest.
// Runs of whitespace collapse to one space.
func FormatName(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}
	return cases.Title(language.Spanish).String(strings.Join(words, " "))
}
