package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics strips combining marks so that "Crème" slugs to "creme"
// rather than having its accented runes dropped wholesale.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify converts s to a lower-case hyphenated identifier: diacritics are
// folded, slashes/spaces/underscores become hyphens, anything outside
// [a-z0-9-] is dropped, and runs of hyphens collapse to one.
func Slugify(s string) string {
	if folded, _, err := transform.String(foldDiacritics, s); err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == '/' || r == ' ' || r == '_' || r == '-' || r == '.':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// CSSVariableForPath derives the custom-property name for a token path:
// "Color/Primary/500" becomes "--color-primary-500". The derivation is
// deterministic, so equal paths always map to the same variable.
func CSSVariableForPath(path string) string {
	return "--" + Slugify(path)
}
