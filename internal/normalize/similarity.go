package normalize

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// StringSimilarity returns an edit-distance similarity ratio between two
// strings in [0,1]. Inputs are lowercased before comparison; an empty string
// on either side scores 0, identical strings score 1. Pure function, shared
// by the unit matcher for address comparison.
func StringSimilarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == "" || b == "" {
		return 0.0
	}
	if a == b {
		return 1.0
	}

	dist := levenshtein.ComputeDistance(a, b)
	maxLen := utf8.RuneCountInString(a)
	if lb := utf8.RuneCountInString(b); lb > maxLen {
		maxLen = lb
	}
	return 1.0 - float64(dist)/float64(maxLen)
}
