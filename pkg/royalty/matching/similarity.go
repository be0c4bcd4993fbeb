// Package matching resolves externally reported songs to catalog works.
//
// Every function here is pure: no I/O, no shared state. Callers may run them from any
// number of goroutines.
package matching

import (
	"strings"
	"unicode"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// titleMetric is read-only after construction, so it is shared across goroutines. Inputs are
// folded by Normalize first, so the metric compares them case-sensitively.
var titleMetric = metrics.NewJaroWinkler()

// Normalize folds case, strips diacritics and punctuation, and collapses whitespace.
func Normalize(s string) string {
	// Transformers carry state, so each call builds its own chain.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), cases.Fold(), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = strings.ToLower(s)
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ComputeSimilarity returns the case-insensitive Jaro-Winkler similarity of a and b in [0,1].
// Two empty strings are identical; one empty string matches nothing.
func ComputeSimilarity(a, b string) float64 {
	return normalizedSimilarity(Normalize(a), Normalize(b))
}

func normalizedSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	return strutil.Similarity(a, b, titleMetric)
}
