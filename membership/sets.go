package membership

import "github.com/poiesic/launchkit/storage"

// Keys of the launcher's membership sets in the unified namespace.
const (
	FavoritesKey  = "favorite_apps"
	HiddenKey     = "hidden_apps"
	ChallengedKey = "challenged_apps"
)

// Sets holds the single Store instance of each launcher set.
type Sets struct {
	Favorites  *Store
	Hidden     *Store
	Challenged *Store
}

// NewSets builds the favorites (ordered), hidden and challenged
// (unordered) stores over ns.
func NewSets(ns storage.Namespace, opts ...Option) (*Sets, error) {
	favorites, err := New(ns, FavoritesKey, Ordered, opts...)
	if err != nil {
		return nil, err
	}
	hidden, err := New(ns, HiddenKey, Unordered, opts...)
	if err != nil {
		return nil, err
	}
	challenged, err := New(ns, ChallengedKey, Unordered, opts...)
	if err != nil {
		return nil, err
	}
	return &Sets{Favorites: favorites, Hidden: hidden, Challenged: challenged}, nil
}
