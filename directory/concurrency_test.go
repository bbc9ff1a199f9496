package directory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/poiesic/launchkit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_ConcurrentQueriesAndMutations(t *testing.T) {
	_, sets := newSets(t)
	ctx := context.Background()

	apps := make([]core.Application, 0, 20)
	for i := 0; i < 20; i++ {
		apps = append(apps, app(fmt.Sprintf("App %02d", i), fmt.Sprintf("app.%02d", i)))
	}
	s := newSession(t, staticRegistry(apps...), sets)
	for i := 0; i < 5; i++ {
		require.NoError(t, sets.Favorites.Add(ctx, apps[i].Identifier))
	}

	const rounds = 50
	var wg sync.WaitGroup
	wg.Add(5)
	go func() {
		defer wg.Done()
		for n := 0; n < rounds; n++ {
			visible, err := s.VisibleApps(ctx, "app", false)
			assert.NoError(t, err)
			assert.LessOrEqual(t, len(visible), len(apps))
		}
	}()
	go func() {
		defer wg.Done()
		for n := 0; n < rounds; n++ {
			_, err := s.FavoritesView(ctx)
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for n := 0; n < rounds; n++ {
			assert.NoError(t, s.Refresh(ctx))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			assert.NoError(t, sets.Favorites.Reorder(ctx, i%5, (i+1)%5))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			id := apps[10+i%10].Identifier
			if i%2 == 0 {
				assert.NoError(t, sets.Hidden.Add(ctx, id))
			} else {
				assert.NoError(t, sets.Hidden.Remove(ctx, id))
			}
		}
	}()
	wg.Wait()

	favorites, err := s.FavoritesView(ctx)
	require.NoError(t, err)
	assert.Len(t, favorites, 5)

	hidden, err := sets.Hidden.All(ctx)
	require.NoError(t, err)
	visible, err := s.VisibleApps(ctx, "", false)
	require.NoError(t, err)
	assert.Len(t, visible, len(apps)-len(hidden))
}
