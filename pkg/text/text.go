// Package text provides input normalization for the derivation pipeline.
//
// Both generators consume a canonical form of the user's prompt so that
// cosmetic differences (case, repeated whitespace) never change the
// derived parameters. Canonicalization is the first pipeline stage and
// everything downstream — keyword scanning, hashing, cache keys — works
// on its output.
package text

import (
	"strings"
	"unicode"
)

// Canonicalize returns the canonical form of a prompt: lower-cased,
// with every run of Unicode whitespace collapsed to a single space and
// leading/trailing whitespace removed.
//
// The empty string is a valid canonical form; callers define their own
// deterministic fallback for it.
func Canonicalize(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}

// Tokenize splits a canonical prompt into words at non-letter,
// non-digit boundaries. Hyphens and apostrophes are treated as
// boundaries too, so "k-pop" scans as "k" and "pop".
func Tokenize(canonical string) []string {
	return strings.FieldsFunc(canonical, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
