package search

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// lower returns s lower-cased with Unicode rules. A Caser is stateful, so
// one is created per call to keep the package safe for concurrent use.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// initials returns the first letter of every whitespace-separated word of
// name, lower-cased, and the number of words.
func initials(name string) (string, int) {
	words := strings.Fields(name)
	var b strings.Builder
	for _, word := range words {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(r)
	}
	return lower(b.String()), len(words)
}

// isSubsequence reports whether every rune of query appears in name in order.
func isSubsequence(name, query string) bool {
	q := []rune(query)
	if len(q) == 0 {
		return true
	}
	i := 0
	for _, r := range name {
		if r == q[i] {
			i++
			if i == len(q) {
				return true
			}
		}
	}
	return false
}
