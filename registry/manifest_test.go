package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/launchkit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifest_Enumerate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apps.yaml")
	content := `
applications:
  - name: Gmail
    id: com.google.gmail
    target: gmail --new-window
  - name: Google Maps
    id: com.google.maps
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	reg, err := NewManifest(path)
	require.NoError(t, err)
	assert.Equal(t, path, reg.Path())

	apps, err := reg.Enumerate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []core.Application{
		{DisplayName: "Gmail", Identifier: "com.google.gmail", Target: "gmail --new-window"},
		{DisplayName: "Google Maps", Identifier: "com.google.maps"},
	}, apps)
}

func TestManifest_Errors(t *testing.T) {
	_, err := NewManifest("")
	assert.ErrorIs(t, err, ErrManifestPathRequired)

	t.Run("missing file", func(t *testing.T) {
		reg, err := NewManifest(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		_, err = reg.Enumerate(context.Background())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := ParseManifest([]byte("applications: [unterminated"))
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		reg, err := NewManifest("apps.yaml")
		require.NoError(t, err)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = reg.Enumerate(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestWriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apps.yaml")
	apps := []core.Application{
		{DisplayName: "Settings", Identifier: "com.android.settings", Target: "settings"},
	}
	require.NoError(t, WriteManifest(path, apps))

	reg, err := NewManifest(path)
	require.NoError(t, err)
	got, err := reg.Enumerate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, apps, got)
}
