package utils

import (
	"fmt"
	"strings"
	"unicode"
)

// NormalizeISWC reduces an ISWC to its bare form, e.g. "t-123.456.789-0" -> "T1234567890".
// Separators and whitespace are dropped; no validation is performed.
func NormalizeISWC(iswc string) string {
	var b strings.Builder
	b.Grow(len(iswc))
	for _, r := range iswc {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// SameISWC reports whether two codes identify the same work. Empty codes never match.
func SameISWC(a, b string) bool {
	na, nb := NormalizeISWC(a), NormalizeISWC(b)
	return na != "" && na == nb
}

// ValidISWC checks the "T" prefix, nine-digit work number and check digit.
func ValidISWC(iswc string) bool {
	n := NormalizeISWC(iswc)
	if len(n) != 11 || n[0] != 'T' {
		return false
	}
	sum := 1
	for i := 1; i <= 9; i++ {
		d := n[i]
		if d < '0' || d > '9' {
			return false
		}
		sum += i * int(d-'0')
	}
	check := n[10]
	if check < '0' || check > '9' {
		return false
	}
	return (10-sum%10)%10 == int(check-'0')
}

// FormatISWC renders a code in the canonical "T-123.456.789-0" layout.
func FormatISWC(iswc string) (string, error) {
	n := NormalizeISWC(iswc)
	if len(n) != 11 || n[0] != 'T' {
		return "", fmt.Errorf("malformed ISWC %q", iswc)
	}
	return fmt.Sprintf("T-%s.%s.%s-%s", n[1:4], n[4:7], n[7:10], n[10:]), nil
}
