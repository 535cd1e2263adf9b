package services

import "strings"

// NormalizeQuestion canonicalizes a question for cache keying: trim, lower
// case, collapse internal whitespace. Trivially different phrasings of an
// identical question share one cache entry within the TTL window.
func NormalizeQuestion(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}
