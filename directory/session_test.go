package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/launchkit/core"
	"github.com/poiesic/launchkit/membership"
	"github.com/poiesic/launchkit/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSets(t *testing.T) (*badger.Store, *membership.Sets) {
	t.Helper()
	store, err := badger.NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	sets, err := membership.NewSets(store.Namespace("prefs"))
	require.NoError(t, err)
	return store, sets
}

func staticRegistry(apps ...core.Application) RegistryFunc {
	return func(context.Context) ([]core.Application, error) {
		return apps, nil
	}
}

func app(name, id string) core.Application {
	return core.Application{DisplayName: name, Identifier: id, Target: id}
}

func displayNames(apps []core.Application) []string {
	out := make([]string, len(apps))
	for i, a := range apps {
		out[i] = a.DisplayName
	}
	return out
}

func newSession(t *testing.T, reg Registry, sets *membership.Sets, opts ...Option) *Session {
	t.Helper()
	s, err := NewSession(reg, sets, opts...)
	require.NoError(t, err)
	return s
}

func TestNewSession_Validation(t *testing.T) {
	_, sets := newSets(t)

	_, err := NewSession(nil, sets)
	assert.ErrorIs(t, err, ErrRegistryRequired)

	_, err = NewSession(staticRegistry(), nil)
	assert.ErrorIs(t, err, ErrMembershipsRequired)

	_, err = NewSession(staticRegistry(), &membership.Sets{Favorites: sets.Favorites})
	assert.ErrorIs(t, err, ErrMembershipsRequired)
}

func TestRefresh_FiltersAndSorts(t *testing.T) {
	_, sets := newSets(t)
	reg := staticRegistry(
		app("settings", "com.android.settings"),
		app("Launcher", "org.example.launcher"),
		app("Clock", "com.android.clock"),
		app("", "com.broken"),
		app("Alarm", ""),
		app("Clock Duplicate", "com.android.clock"),
		app("calendar", "com.android.calendar"),
	)
	s := newSession(t, reg, sets, WithSelfIdentifier("org.example.launcher"))

	require.NoError(t, s.Refresh(context.Background()))
	assert.Equal(t, []string{"calendar", "Clock", "settings"}, displayNames(s.Snapshot()))
}

func TestRefresh_RegistryFailureEmptiesSnapshot(t *testing.T) {
	_, sets := newSets(t)
	fail := false
	boom := errors.New("package manager unavailable")
	reg := RegistryFunc(func(context.Context) ([]core.Application, error) {
		if fail {
			return nil, boom
		}
		return []core.Application{app("Clock", "clock")}, nil
	})
	s := newSession(t, reg, sets)
	ctx := context.Background()

	require.NoError(t, s.Refresh(ctx))
	require.Len(t, s.Snapshot(), 1)

	fail = true
	err := s.Refresh(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, s.Snapshot())

	visible, err := s.VisibleApps(ctx, "", true)
	require.NoError(t, err)
	assert.NotNil(t, visible)
	assert.Empty(t, visible)
}

func TestVisibleApps_LazyRefreshFailureIsEmpty(t *testing.T) {
	_, sets := newSets(t)
	reg := RegistryFunc(func(context.Context) ([]core.Application, error) {
		return nil, errors.New("transient")
	})
	s := newSession(t, reg, sets)

	visible, err := s.VisibleApps(context.Background(), "anything", false)
	require.NoError(t, err)
	assert.NotNil(t, visible)
	assert.Empty(t, visible)
}

func TestVisibleApps_RetriesAfterFailedEnumeration(t *testing.T) {
	_, sets := newSets(t)
	calls := 0
	reg := RegistryFunc(func(context.Context) ([]core.Application, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("transient")
		}
		return []core.Application{app("Clock", "clock")}, nil
	})
	s := newSession(t, reg, sets)
	ctx := context.Background()

	visible, err := s.VisibleApps(ctx, "", false)
	require.NoError(t, err)
	assert.Empty(t, visible)

	visible, err = s.VisibleApps(ctx, "", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Clock"}, displayNames(visible))

	favorites, err := s.FavoritesView(ctx)
	require.NoError(t, err)
	assert.Empty(t, favorites)
	assert.Equal(t, 2, calls, "a successful snapshot is reused")
}

func TestVisibleApps_QueryRanksMatches(t *testing.T) {
	_, sets := newSets(t)
	reg := staticRegistry(
		app("Google Maps", "com.google.maps"),
		app("Gmail", "com.google.gmail"),
		app("Settings", "com.android.settings"),
	)
	s := newSession(t, reg, sets)
	ctx := context.Background()

	visible, err := s.VisibleApps(ctx, "gm", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Gmail", "Google Maps"}, displayNames(visible))

	t.Run("empty query keeps alphabetical order", func(t *testing.T) {
		visible, err := s.VisibleApps(ctx, "", false)
		require.NoError(t, err)
		assert.Equal(t, []string{"Gmail", "Google Maps", "Settings"}, displayNames(visible))
	})
}

func TestVisibleApps_HiddenOverride(t *testing.T) {
	_, sets := newSets(t)
	ctx := context.Background()
	reg := staticRegistry(
		app("Bank", "com.example.bank"),
		app("Camera", "com.example.camera"),
	)
	require.NoError(t, sets.Hidden.Add(ctx, "com.example.bank"))
	s := newSession(t, reg, sets)

	visible, err := s.VisibleApps(ctx, "", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Camera"}, displayNames(visible))

	visible, err = s.VisibleApps(ctx, "bank", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bank"}, displayNames(visible))

	visible, err = s.VisibleApps(ctx, "bank", false)
	require.NoError(t, err)
	assert.Empty(t, visible)
}

func TestFavoritesView(t *testing.T) {
	_, sets := newSets(t)
	ctx := context.Background()
	reg := staticRegistry(
		app("Camera", "com.example.camera"),
		app("Phone", "com.example.phone"),
		app("Clock", "com.example.clock"),
	)
	for _, id := range []string{"com.example.phone", "com.example.uninstalled", "com.example.camera"} {
		require.NoError(t, sets.Favorites.Add(ctx, id))
	}
	s := newSession(t, reg, sets)

	view, err := s.FavoritesView(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"com.example.phone", "com.example.camera"}, core.Identifiers(view))

	t.Run("never returns identifiers missing from the snapshot", func(t *testing.T) {
		snapshot := map[string]bool{}
		for _, a := range s.Snapshot() {
			snapshot[a.Identifier] = true
		}
		for _, a := range view {
			assert.True(t, snapshot[a.Identifier], a.Identifier)
		}
	})

	t.Run("follows reorder", func(t *testing.T) {
		require.NoError(t, sets.Favorites.Reorder(ctx, 0, 2))
		view, err := s.FavoritesView(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"com.example.camera", "com.example.phone"}, core.Identifiers(view))
	})
}

func TestEntries(t *testing.T) {
	_, sets := newSets(t)
	ctx := context.Background()
	bank := app("Bank", "com.example.bank")
	camera := app("Camera", "com.example.camera")
	require.NoError(t, sets.Favorites.Add(ctx, bank.Identifier))
	require.NoError(t, sets.Challenged.Add(ctx, bank.Identifier))
	require.NoError(t, sets.Hidden.Add(ctx, camera.Identifier))
	s := newSession(t, staticRegistry(bank, camera), sets)

	entries, err := s.Entries(ctx, []core.Application{bank, camera})
	require.NoError(t, err)
	assert.Equal(t, []core.Entry{
		{App: bank, Favorite: true, Challenged: true},
		{App: camera, Hidden: true},
	}, entries)
}

func TestVisibleApps_StoreFailure(t *testing.T) {
	store, sets := newSets(t)
	s := newSession(t, staticRegistry(app("Clock", "clock")), sets)
	require.NoError(t, store.Close())

	_, err := s.VisibleApps(context.Background(), "", false)
	assert.Error(t, err)
}

type recordingMonitor struct {
	queries []string
	matched int
	ranked  []string
	dropped []string
	visible []string
}

func (m *recordingMonitor) Start(query string, _ bool) { m.queries = append(m.queries, query) }
func (m *recordingMonitor) AfterMatch(matched []core.Application) {
	m.matched = len(matched)
}
func (m *recordingMonitor) AfterRank(ranked []core.Application) { m.ranked = displayNames(ranked) }
func (m *recordingMonitor) HiddenDropped(app core.Application) {
	m.dropped = append(m.dropped, app.Identifier)
}
func (m *recordingMonitor) Finish(visible []core.Application) { m.visible = displayNames(visible) }

func TestVisibleApps_Monitor(t *testing.T) {
	_, sets := newSets(t)
	ctx := context.Background()
	require.NoError(t, sets.Hidden.Add(ctx, "com.google.maps"))
	reg := staticRegistry(
		app("Google Maps", "com.google.maps"),
		app("Gmail", "com.google.gmail"),
		app("Settings", "com.android.settings"),
	)
	monitor := &recordingMonitor{}
	s := newSession(t, reg, sets, WithMonitor(monitor))

	_, err := s.VisibleApps(ctx, "gm", false)
	require.NoError(t, err)

	assert.Equal(t, []string{"gm"}, monitor.queries)
	assert.Equal(t, 2, monitor.matched)
	assert.Equal(t, []string{"Gmail", "Google Maps"}, monitor.ranked)
	assert.Equal(t, []string{"com.google.maps"}, monitor.dropped)
	assert.Equal(t, []string{"Gmail"}, monitor.visible)
}
