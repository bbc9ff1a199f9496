package badger

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/launchkit/storage"
)

// Store implements storage.Store on top of a single BadgerDB instance.
// Each namespace is a key prefix; a marker key records its existence.
type Store struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.Store = (*Store)(nil)

// NewStore creates a Store over an open backend. Closing the store
// closes the backend.
func NewStore(backend *Backend) *Store {
	return &Store{
		backend: backend,
		logger:  slog.Default(),
	}
}

// OpenStore opens the backend at filePath and wraps it in a Store.
func OpenStore(filePath string, inMemory bool) (*Store, error) {
	backend, err := OpenBackend(filePath, inMemory)
	if err != nil {
		return nil, err
	}
	return NewStore(backend), nil
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Namespace returns a handle for the named namespace. Invalid names
// produce a handle whose reads and commits report storage.ErrInvalidNamespace.
func (s *Store) Namespace(name string) storage.Namespace {
	return &Namespace{store: s, name: name}
}

// NamespaceExists reports whether the namespace marker is present.
func (s *Store) NamespaceExists(ctx context.Context, name string) (bool, error) {
	if err := validateNamespaceName(name); err != nil {
		return false, err
	}
	exists := false
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeMarkerKey(name))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		exists = true
		return nil
	}, false)
	return exists, err
}

// Namespaces lists every existing namespace, ordered by name.
func (s *Store) Namespaces(ctx context.Context) ([]string, error) {
	var names []string
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = makeMarkerPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := string(iter.Item().Key())
			names = append(names, strings.TrimPrefix(key, string(makeMarkerPrefix())))
		}
		return nil
	}, false)
	return names, err
}

// ClearNamespace removes all values of the namespace but keeps its marker.
func (s *Store) ClearNamespace(ctx context.Context, name string) error {
	if err := validateNamespaceName(name); err != nil {
		return err
	}
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := deletePrefix(tx, makeValuePrefix(name)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// DeleteNamespace removes all values of the namespace and its marker.
func (s *Store) DeleteNamespace(ctx context.Context, name string) error {
	if err := validateNamespaceName(name); err != nil {
		return err
	}
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := deletePrefix(tx, makeValuePrefix(name)); err != nil {
			return err
		}
		if err := tx.Delete(makeMarkerKey(name)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// ReadNamespace returns every entry of the namespace.
// Together with NamespaceExists, ClearNamespace and DeleteNamespace this
// lets legacy namespaces that live in the same database be consolidated.
func (s *Store) ReadNamespace(ctx context.Context, name string) ([]storage.Entry, error) {
	return s.Namespace(name).Entries(ctx)
}

// deletePrefix deletes every key under prefix, including writes pending
// in tx. Keys are copied first since deleting while iterating is unsafe.
func deletePrefix(tx *badger.Txn, prefix []byte) error {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = prefix
	iter := tx.NewIterator(opts)

	var keys [][]byte
	for iter.Rewind(); iter.Valid(); iter.Next() {
		keys = append(keys, iter.Item().KeyCopy(nil))
	}
	iter.Close()

	for _, key := range keys {
		if err := tx.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
