// Package normalize provides title normalization for exact-match joins.
package normalize

import "strings"

// replacements maps punctuation variants to their canonical spelling.
// Applied after lower-casing. Order matters if entries ever overlap.
var replacements = [][2]string{
	{" & ", " and "},
}

// Title normalizes a journal or article title for exact-string matching.
//
// Normalization is deliberately minimal: lower-case plus known punctuation
// variants. No accent folding, no whitespace collapsing — downstream joins
// depend on this exact behavior.
//
// The empty string marks a missing title and normalizes to itself.
func Title(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	for _, r := range replacements {
		s = strings.ReplaceAll(s, r[0], r[1])
	}
	return s
}

// Missing reports whether a normalized title represents an absent value.
func Missing(s string) bool {
	return s == ""
}
