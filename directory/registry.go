package directory

import (
	"context"

	"github.com/poiesic/launchkit/core"
)

// Registry enumerates the host's launchable applications.
type Registry interface {
	Enumerate(ctx context.Context) ([]core.Application, error)
}

// RegistryFunc adapts a function to the Registry interface.
type RegistryFunc func(ctx context.Context) ([]core.Application, error)

// Enumerate calls f.
func (f RegistryFunc) Enumerate(ctx context.Context) ([]core.Application, error) {
	return f(ctx)
}
