// Package normalize canonicalises question text for duplicate comparison.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Text folds case and diacritics, drops apostrophes, and collapses every run of
// punctuation or whitespace into a single space. Text with no letters or
// digits keeps its punctuation, lowercased with whitespace collapsed.
//
//	Text("  What's your FAVOURITE café? ") == "whats your favourite cafe"
//	Text(" ?? ") == "??"
func Text(s string) string {
	folded, _, err := transform.String(foldChain(), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingSpace := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r == '\'' || r == '’' || r == '`':
			continue
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		default:
			pendingSpace = true
		}
	}
	if b.Len() == 0 {
		return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
	}
	return b.String()
}

// Equal reports whether a and b normalise to the same text.
func Equal(a, b string) bool {
	return Text(a) == Text(b)
}

// transform.Chain values keep state, so every call gets a fresh one.
func foldChain() transform.Transformer {
	return transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
