package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Normalize brings a string into NFC form and lowercases it so that
// titles and platform names sourced from different pages compare equal.
func Normalize(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// ContainsNormalized reports whether needle appears in haystack after
// both sides have been normalized.
func ContainsNormalized(haystack, needle string) bool {
	return strings.Contains(Normalize(haystack), Normalize(needle))
}

// EqualFold compares two names after normalization.
func EqualFold(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// CollapseWhitespace trims a string and collapses inner whitespace
// runs into single spaces.
func CollapseWhitespace(s string) string {
	s = strings.Trim(s, " \n\t")
	return whitespaceRegex.ReplaceAllString(s, " ")
}
