package registry

import (
	"context"
	"slices"

	"github.com/poiesic/launchkit/core"
)

// Static is a fixed application list.
type Static []core.Application

// Enumerate returns a copy of the list.
func (s Static) Enumerate(_ context.Context) ([]core.Application, error) {
	return slices.Clone([]core.Application(s)), nil
}
