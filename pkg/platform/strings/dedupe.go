// Package strings normalises user-supplied lists such as country codes and
// city names.
package strings

import (
	"strings"
)

// DedupeAndTrim trims each value and drops blanks and exact repeats, keeping
// first-seen order.
func DedupeAndTrim(values []string) []string {
	return dedupe(values, strings.TrimSpace, identity)
}

// DedupeAndTrimUpper returns the trimmed, upper-cased distinct values. This is
// the canonical form of country codes.
//
//	DedupeAndTrimUpper([]string{" fr", "FR", "jp "}) // []string{"FR", "JP"}
func DedupeAndTrimUpper(values []string) []string {
	return dedupe(values, func(v string) string {
		return strings.ToUpper(strings.TrimSpace(v))
	}, identity)
}

// DedupeFold drops values that repeat an earlier one under Unicode case
// folding. The first spelling is kept, trimmed.
//
//	DedupeFold([]string{"Paris", " PARIS", "lyon"}) // []string{"Paris", "lyon"}
func DedupeFold(values []string) []string {
	return dedupe(values, strings.TrimSpace, foldKey)
}

// dedupe applies clean to every value, skips the empty results and keeps the
// first value for each key.
func dedupe(values []string, clean, key func(string) string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = clean(v)
		if v == "" {
			continue
		}
		k := key(v)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return out
}

func identity(v string) string { return v }

func foldKey(v string) string {
	return strings.ToLower(strings.ToUpper(v))
}
