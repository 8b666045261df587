package helpers

import (
	"strings"

	"golang.org/x/text/cases"
)

// ContainsFold reports whether needle occurs in haystack ignoring case. An empty
// needle matches everything.
func ContainsFold(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	// Caser instances carry state, so one is built per call.
	fold := cases.Fold()
	return strings.Contains(fold.String(haystack), fold.String(needle))
}

// MatchAny reports whether any of the values contains term ignoring case.
func MatchAny(term string, values ...string) bool {
	for _, v := range values {
		if ContainsFold(v, term) {
			return true
		}
	}
	return strings.TrimSpace(term) == ""
}
