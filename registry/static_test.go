package registry

import (
	"context"
	"testing"

	"github.com/poiesic/launchkit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic_EnumerateReturnsCopy(t *testing.T) {
	reg := Static{{DisplayName: "Clock", Identifier: "clock"}}

	apps, err := reg.Enumerate(context.Background())
	require.NoError(t, err)
	apps[0].DisplayName = "changed"

	again, err := reg.Enumerate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []core.Application{{DisplayName: "Clock", Identifier: "clock"}}, again)
}
