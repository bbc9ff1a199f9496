package storage

import (
	"context"
)

// Store is a durable collection of named namespaces.
// Implementations must be safe for use by a single writer alongside readers.
type Store interface {
	// Namespace returns a handle for the named namespace.
	// The namespace comes into existence on its first committed write.
	Namespace(name string) Namespace

	// NamespaceExists reports whether the namespace has backing storage.
	NamespaceExists(ctx context.Context, name string) (bool, error)

	// ClearNamespace removes every key of the namespace but keeps it existing.
	ClearNamespace(ctx context.Context, name string) error

	// DeleteNamespace removes the namespace and its backing storage entirely.
	// Deleting a namespace that does not exist is not an error.
	DeleteNamespace(ctx context.Context, name string) error

	// Close closes the store and releases resources.
	Close() error
}

// Namespace provides typed access to one key space of a Store.
// Missing keys and values of a different kind return def.
type Namespace interface {
	// Name returns the namespace name.
	Name() string

	GetString(ctx context.Context, key, def string) (string, error)
	GetBool(ctx context.Context, key string, def bool) (bool, error)
	GetFloat(ctx context.Context, key string, def float64) (float64, error)
	GetInt(ctx context.Context, key string, def int32) (int32, error)
	GetLong(ctx context.Context, key string, def int64) (int64, error)
	GetStringSet(ctx context.Context, key string, def []string) ([]string, error)

	// Get returns the raw value stored under key and whether it exists.
	Get(ctx context.Context, key string) (Value, bool, error)

	// Contains reports whether key holds a value.
	Contains(ctx context.Context, key string) (bool, error)

	// Entries returns every key/value pair of the namespace ordered by key.
	Entries(ctx context.Context) ([]Entry, error)

	// Edit starts a batch of writes. Nothing is visible until Commit.
	Edit() Editor
}

// Editor buffers writes to a Namespace. Commit applies all buffered
// operations atomically: either every write lands or none does.
// Operations apply in call order; Clear drops everything before it.
type Editor interface {
	PutString(key, value string) Editor
	PutBool(key string, value bool) Editor
	PutFloat(key string, value float64) Editor
	PutInt(key string, value int32) Editor
	PutLong(key string, value int64) Editor
	PutStringSet(key string, value []string) Editor

	// Put stores an already-tagged value.
	Put(key string, value Value) Editor

	// Remove deletes key.
	Remove(key string) Editor

	// Clear deletes every key in the namespace.
	Clear() Editor

	// Commit applies the buffered operations.
	Commit(ctx context.Context) error
}
