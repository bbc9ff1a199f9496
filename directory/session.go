package directory

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/poiesic/launchkit/core"
	"github.com/poiesic/launchkit/membership"
	"github.com/poiesic/launchkit/search"
)

// Session ties a registry snapshot to the membership sets.
type Session struct {
	registry Registry
	sets     *membership.Sets
	selfID   string
	monitor  Monitor
	logger   *slog.Logger

	mu        sync.RWMutex
	snapshot  []core.Application
	byID      map[string]core.Application
	refreshed bool
}

// Option configures a Session.
type Option func(*Session) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithSelfIdentifier sets the launcher's own identifier, which never
// appears in the snapshot.
func WithSelfIdentifier(id string) Option {
	return func(s *Session) error {
		s.selfID = id
		return nil
	}
}

// WithMonitor installs a monitor for VisibleApps.
func WithMonitor(monitor Monitor) Option {
	return func(s *Session) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		s.monitor = monitor
		return nil
	}
}

// NewSession creates a session over registry and sets. The registry is
// not enumerated until the first Refresh or query.
func NewSession(registry Registry, sets *membership.Sets, opts ...Option) (*Session, error) {
	if registry == nil {
		return nil, ErrRegistryRequired
	}
	if sets == nil || sets.Favorites == nil || sets.Hidden == nil || sets.Challenged == nil {
		return nil, ErrMembershipsRequired
	}

	s := &Session{
		registry: registry,
		sets:     sets,
		monitor:  &noopMonitor{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Refresh re-enumerates the registry. The launcher itself, invalid
// entries and duplicate identifiers are dropped, and the result is sorted
// by display name ignoring case. On failure the snapshot is emptied, the
// error returned, and the next query enumerates again.
func (s *Session) Refresh(ctx context.Context) error {
	apps, err := s.registry.Enumerate(ctx)
	if err != nil {
		s.replace(nil, false)
		return fmt.Errorf("enumerating applications: %w", err)
	}

	seen := make(map[string]struct{}, len(apps))
	kept := make([]core.Application, 0, len(apps))
	for _, app := range apps {
		if app.Identifier == s.selfID && s.selfID != "" {
			continue
		}
		if err := core.ValidateApplication(app); err != nil {
			s.logger.Warn("skipping invalid application", "app", app.String(), "err", err)
			continue
		}
		if _, dup := seen[app.Identifier]; dup {
			s.logger.Warn("skipping duplicate identifier", "identifier", app.Identifier)
			continue
		}
		seen[app.Identifier] = struct{}{}
		kept = append(kept, app)
	}

	s.replace(search.SortAlphabetically(kept), true)
	s.logger.Debug("registry snapshot refreshed", "apps", len(kept), "enumerated", len(apps))
	return nil
}

func (s *Session) replace(apps []core.Application, refreshed bool) {
	byID := make(map[string]core.Application, len(apps))
	for _, app := range apps {
		byID[app.Identifier] = app
	}
	s.mu.Lock()
	s.snapshot = apps
	s.byID = byID
	s.refreshed = refreshed
	s.mu.Unlock()
}

// current returns the snapshot, enumerating the registry until an
// enumeration succeeds. A failed enumeration yields an empty snapshot.
func (s *Session) current(ctx context.Context) ([]core.Application, map[string]core.Application) {
	s.mu.RLock()
	refreshed := s.refreshed
	s.mu.RUnlock()

	if !refreshed {
		if err := s.Refresh(ctx); err != nil {
			s.logger.Warn("registry unavailable, showing empty list", "err", err)
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.byID
}

// Snapshot returns a copy of the current registry snapshot.
func (s *Session) Snapshot() []core.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.snapshot)
}

// VisibleApps returns the apps to show for query. A non-empty query filters
// the snapshot by search.Matches and orders it by search.Rank; an empty query
// keeps alphabetical order. Hidden apps are dropped unless showHidden is set.
func (s *Session) VisibleApps(ctx context.Context, query string, showHidden bool) ([]core.Application, error) {
	s.monitor.Start(query, showHidden)
	snapshot, _ := s.current(ctx)

	candidates := snapshot
	if query != "" {
		candidates = search.Filter(snapshot, query, displayName)
		s.monitor.AfterMatch(candidates)
		candidates = search.Rank(candidates, query)
		s.monitor.AfterRank(candidates)
	}

	visible := make([]core.Application, 0, len(candidates))
	if showHidden {
		visible = append(visible, candidates...)
		s.monitor.Finish(visible)
		return visible, nil
	}

	hidden, err := s.memberSet(ctx, s.sets.Hidden)
	if err != nil {
		return nil, err
	}
	for _, app := range candidates {
		if _, ok := hidden[app.Identifier]; ok {
			s.monitor.HiddenDropped(app)
			continue
		}
		visible = append(visible, app)
	}
	s.monitor.Finish(visible)
	return visible, nil
}

// FavoritesView returns the favorites present in the snapshot, in stored
// order. Identifiers no longer in the registry are skipped.
func (s *Session) FavoritesView(ctx context.Context) ([]core.Application, error) {
	_, byID := s.current(ctx)

	ids, err := s.sets.Favorites.All(ctx)
	if err != nil {
		return nil, err
	}
	view := make([]core.Application, 0, len(ids))
	for _, id := range ids {
		if app, ok := byID[id]; ok {
			view = append(view, app)
		}
	}
	return view, nil
}

// Entries annotates apps with their set memberships.
func (s *Session) Entries(ctx context.Context, apps []core.Application) ([]core.Entry, error) {
	favorites, err := s.memberSet(ctx, s.sets.Favorites)
	if err != nil {
		return nil, err
	}
	hidden, err := s.memberSet(ctx, s.sets.Hidden)
	if err != nil {
		return nil, err
	}
	challenged, err := s.memberSet(ctx, s.sets.Challenged)
	if err != nil {
		return nil, err
	}

	entries := make([]core.Entry, len(apps))
	for i, app := range apps {
		_, fav := favorites[app.Identifier]
		_, hid := hidden[app.Identifier]
		_, chal := challenged[app.Identifier]
		entries[i] = core.Entry{App: app, Favorite: fav, Hidden: hid, Challenged: chal}
	}
	return entries, nil
}

func (s *Session) memberSet(ctx context.Context, set *membership.Store) (map[string]struct{}, error) {
	ids, err := set.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", set.Key(), err)
	}
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}

func displayName(app core.Application) string {
	return app.DisplayName
}
