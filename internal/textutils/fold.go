// Package textutils provides caseless matching and name normalization helpers.
package textutils

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold returns the Unicode case-folded form of s, suitable for caseless
// comparison. A Caser keeps state, so a fresh one is used per call.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// EqualFold reports whether a and b are equal under Unicode case folding.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// ContainsFold reports whether substr occurs in s, ignoring case.
// An empty substr is contained in every string.
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(Fold(s), Fold(substr))
}

// NormalizeName trims surrounding whitespace from a user-entered name.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}
