package search

import (
	"slices"
	"strings"

	"github.com/poiesic/launchkit/core"
)

// Tier is the coarse ranking bucket of a name for a query. Lower is better.
type Tier int

const (
	// TierPrefix: the name starts with the query.
	TierPrefix Tier = iota
	// TierContains: the name contains the query elsewhere.
	TierContains
	// TierOther: the name matched through initials or subsequence only.
	TierOther
)

// TierOf returns the ranking tier of name for query.
func TierOf(name, query string) Tier {
	return tierOf(lower(name), lower(query))
}

func tierOf(n, q string) Tier {
	switch {
	case strings.HasPrefix(n, q):
		return TierPrefix
	case strings.Contains(n, q):
		return TierContains
	default:
		return TierOther
	}
}

type rankKey struct {
	tier Tier
	name string
	app  core.Application
}

// Rank returns a new slice of apps ordered by tier, then by lower-cased
// display name. The sort is stable and the input is not modified.
func Rank(apps []core.Application, query string) []core.Application {
	q := lower(query)
	keys := make([]rankKey, len(apps))
	for i, app := range apps {
		n := lower(app.DisplayName)
		keys[i] = rankKey{tier: tierOf(n, q), name: n, app: app}
	}

	slices.SortStableFunc(keys, func(a, b rankKey) int {
		if a.tier != b.tier {
			return int(a.tier) - int(b.tier)
		}
		return strings.Compare(a.name, b.name)
	})

	out := make([]core.Application, len(keys))
	for i, k := range keys {
		out[i] = k.app
	}
	return out
}

// SortAlphabetically returns a new slice of apps ordered by lower-cased
// display name. Equal names keep their input order.
func SortAlphabetically(apps []core.Application) []core.Application {
	return Rank(apps, "")
}
