// Package normalize provides utilities for normalizing and sanitizing data.
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// Matches runs of whitespace (for collapsing to a single space).
var whitespaceRe = regexp.MustCompile(`\s+`)

// Title converts a content title to its canonical comparison form.
// This is the join key used when cross-referencing catalog results against
// locally known items, so two titles that differ only in case or surrounding
// whitespace must normalize identically.
//
// Normalization rules:
//  1. Trim surrounding whitespace
//  2. Collapse internal whitespace runs to a single space
//  3. Unicode case-fold
//
// Examples:
//
//	"Dune"      → "dune"
//	" dune  "   → "dune"
//	"The  Wire" → "the wire"
func Title(input string) string {
	s := strings.TrimSpace(input)
	s = whitespaceRe.ReplaceAllString(s, " ")
	// cases.Caser carries state, so build one per call instead of sharing.
	return cases.Fold().String(s)
}

// TitlesEqual reports whether two titles match under normalization.
// No fuzzy or partial matching: distinct titles that merely share substrings
// must not be treated as equal.
func TitlesEqual(a, b string) bool {
	return Title(a) == Title(b)
}
