package search

import (
	"sync"
	"testing"

	"github.com/poiesic/launchkit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apps(names ...string) []core.Application {
	out := make([]core.Application, len(names))
	for i, n := range names {
		out[i] = core.Application{DisplayName: n, Identifier: "id." + n}
	}
	return out
}

func names(apps []core.Application) []string {
	out := make([]string, len(apps))
	for i, a := range apps {
		out[i] = a.DisplayName
	}
	return out
}

func TestTierOf(t *testing.T) {
	assert.Equal(t, TierPrefix, TierOf("Gmail", "gm"))
	assert.Equal(t, TierPrefix, TierOf("Gmail", ""))
	assert.Equal(t, TierContains, TierOf("Calendar", "END"))
	assert.Equal(t, TierOther, TierOf("Google Maps", "gm"))
}

func TestRank_GmailBeforeGoogleMaps(t *testing.T) {
	registry := apps("Google Maps", "Gmail", "Settings")
	matched := Filter(registry, "gm", func(a core.Application) string { return a.DisplayName })
	require.Equal(t, []string{"Google Maps", "Gmail"}, names(matched))

	assert.Equal(t, []string{"Gmail", "Google Maps"}, names(Rank(matched, "gm")))
}

func TestRank_OrdersByTierThenName(t *testing.T) {
	in := apps("Notes", "Phone", "Photos", "Telephony", "Pixel Help", "photo editor")
	got := Rank(in, "pho")
	assert.Equal(t, []string{"Phone", "photo editor", "Photos", "Telephony", "Notes", "Pixel Help"}, names(got))
}

func TestRank_IsStableForEqualKeys(t *testing.T) {
	in := []core.Application{
		{DisplayName: "Mail", Identifier: "a"},
		{DisplayName: "mail", Identifier: "b"},
		{DisplayName: "MAIL", Identifier: "c"},
	}
	got := Rank(in, "ma")
	assert.Equal(t, []string{"a", "b", "c"}, core.Identifiers(got))
}

func TestRank_Idempotent(t *testing.T) {
	in := apps("Zoom", "Maps", "Gmail", "Google Maps", "Messages", "Camera")
	for _, q := range []string{"", "m", "ma", "gm", "s"} {
		t.Run(q, func(t *testing.T) {
			once := Rank(Filter(in, q, func(a core.Application) string { return a.DisplayName }), q)
			twice := Rank(once, q)
			assert.Equal(t, once, twice)
		})
	}
}

func TestRank_DoesNotModifyInput(t *testing.T) {
	in := apps("b", "a", "c")
	_ = Rank(in, "")
	assert.Equal(t, []string{"b", "a", "c"}, names(in))
}

func TestSortAlphabetically(t *testing.T) {
	got := SortAlphabetically(apps("beta", "Alpha", "gamma", "Beta"))
	assert.Equal(t, []string{"Alpha", "beta", "Beta", "gamma"}, names(got))
}

func TestRank_ConcurrentCallsShareInput(t *testing.T) {
	in := apps("Zoom", "Maps", "Gmail", "Google Maps", "Messages", "Camera")
	byName := func(a core.Application) string { return a.DisplayName }
	want := names(Rank(Filter(in, "m", byName), "m"))

	var wg sync.WaitGroup
	for n := 0; n < 8; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 100; n++ {
				assert.Equal(t, want, names(Rank(Filter(in, "m", byName), "m")))
				assert.True(t, Matches("Google Maps", "gm"))
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, []string{"Zoom", "Maps", "Gmail", "Google Maps", "Messages", "Camera"}, names(in))
}
