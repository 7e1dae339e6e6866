// Package textnorm folds document text into a stable matching form.
// SDS text arrives with typographic variation (ligatures, accented supplier
// names, non-breaking spaces) and OCR noise; rules and header matching both
// run over the folded form.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.In(unicode.Mn)), // strip combining marks (diacritics)
	norm.NFKC,
)

// Fold lowercases s, strips diacritics, applies NFKC compatibility folding,
// and collapses runs of whitespace into single spaces.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// Words returns the folded words of s, with punctuation-only words dropped
// and hyphens treated as separators ("First-aid" matches "first aid").
func Words(s string) []string {
	folded := Fold(s)
	folded = strings.Map(func(r rune) rune {
		if r == '-' || r == '/' || r == ':' || r == ',' || r == '.' || r == '(' || r == ')' {
			return ' '
		}
		return r
	}, folded)
	var words []string
	for _, w := range strings.Fields(folded) {
		if hasLetterOrDigit(w) {
			words = append(words, w)
		}
	}
	return words
}

// CollapseSpace squeezes whitespace runs (including newlines) to single
// spaces without changing case.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate caps s at max runes, marking the cut.
func Truncate(s string, max int) string {
	if max <= 3 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
