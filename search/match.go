package search

import (
	"strings"
	"unicode/utf8"
)

// minInitialsQuery is the shortest query tried against a name's initials.
const minInitialsQuery = 2

// Matches reports whether name matches query.
func Matches(name, query string) bool {
	if query == "" {
		return true
	}
	n := lower(name)
	q := lower(query)

	if strings.Contains(n, q) {
		return true
	}
	if matchesInitials(name, q) {
		return true
	}
	return isSubsequence(n, q)
}

// matchesInitials runs the initials test with an already lower-cased query.
func matchesInitials(name, q string) bool {
	if utf8.RuneCountInString(q) < minInitialsQuery {
		return false
	}
	abbrev, words := initials(name)
	if words < 2 {
		return false
	}
	return strings.Contains(abbrev, q)
}

// Filter returns the apps whose names match query, preserving input order.
func Filter[T any](items []T, query string, name func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if Matches(name(item), query) {
			out = append(out, item)
		}
	}
	return out
}
