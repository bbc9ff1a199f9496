package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name  string
		cand  string
		query string
		want  bool
	}{
		{"empty query matches everything", "Settings", "", true},
		{"empty query matches empty name", "", "", true},
		{"substring", "Calculator", "cul", true},
		{"substring is case insensitive", "Calculator", "CALC", true},
		{"initials", "Google Maps", "gm", true},
		{"initials upper-case query", "Google Maps", "GM", true},
		{"initials inside longer name", "Visual Studio Code", "sc", true},
		{"single rune query skips initials", "Google Maps", "m", true},
		{"subsequence", "Settings", "stg", true},
		{"subsequence across words", "Google Maps", "gps", true},
		{"subsequence out of order fails", "Settings", "gts", false},
		{"query longer than name", "Mail", "mailbox", false},
		{"no match", "Settings", "xyz", false},
		{"whitespace query is literal", "Settings", " ", false},
		{"whitespace query matches spaced name", "Google Maps", " ", true},
		{"unicode folding", "Éditeur", "édi", true},
		{"unicode subsequence", "Ärzte Finder", "äf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.cand, tt.query))
		})
	}
}

func TestMatches_SubstringImpliesMatch(t *testing.T) {
	names := []string{"Google Maps", "Gmail", "Settings", "Files", "Clock"}
	for _, name := range names {
		runes := []rune(name)
		for i := range runes {
			for j := i + 1; j <= len(runes); j++ {
				q := string(runes[i:j])
				assert.True(t, Matches(name, q), "%q should match %q", name, q)
			}
		}
	}
}

func TestMatches_InitialsWithoutSubstring(t *testing.T) {
	assert.NotContains(t, "google maps", "gm")
	assert.True(t, matchesInitials("Google Maps", "gm"))
	assert.False(t, matchesInitials("Gmail", "gm"), "single word names have no initials")
	assert.False(t, matchesInitials("Google Maps", "g"), "one rune queries skip initials")
}

func TestFilter(t *testing.T) {
	names := []string{"Settings", "Gmail", "Google Maps", "Clock"}
	got := Filter(names, "gm", func(s string) string { return s })
	assert.Equal(t, []string{"Gmail", "Google Maps"}, got)

	t.Run("no matches yields empty slice", func(t *testing.T) {
		got := Filter(names, "zzz", func(s string) string { return s })
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
