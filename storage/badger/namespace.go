package badger

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/launchkit/storage"
)

// Namespace implements storage.Namespace for one key prefix of a Store.
type Namespace struct {
	store *Store
	name  string
}

var _ storage.Namespace = (*Namespace)(nil)

// Name returns the namespace name.
func (n *Namespace) Name() string {
	return n.name
}

// Get returns the raw value stored under key.
// Values that fail to decode are logged and reported as absent.
func (n *Namespace) Get(ctx context.Context, key string) (storage.Value, bool, error) {
	if err := validateNamespaceName(n.name); err != nil {
		return storage.Value{}, false, err
	}

	var (
		value storage.Value
		found bool
	)
	err := n.store.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeValueKey(n.name, key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			decoded, err := storage.UnmarshalValue(val)
			if err != nil {
				n.store.logger.Warn("ignoring malformed value", "namespace", n.name, "key", key, "err", err)
				return nil
			}
			value, found = decoded, true
			return nil
		})
	}, false)
	if err != nil {
		return storage.Value{}, false, fmt.Errorf("reading %s/%s: %w", n.name, key, err)
	}
	return value, found, nil
}

// GetString returns the string stored under key, or def.
func (n *Namespace) GetString(ctx context.Context, key, def string) (string, error) {
	v, found, err := n.Get(ctx, key)
	if err != nil || !found {
		return def, err
	}
	if s, ok := v.Str(); ok {
		return s, nil
	}
	return def, nil
}

// GetBool returns the boolean stored under key, or def.
func (n *Namespace) GetBool(ctx context.Context, key string, def bool) (bool, error) {
	v, found, err := n.Get(ctx, key)
	if err != nil || !found {
		return def, err
	}
	if b, ok := v.Bool(); ok {
		return b, nil
	}
	return def, nil
}

// GetFloat returns the float stored under key, or def.
func (n *Namespace) GetFloat(ctx context.Context, key string, def float64) (float64, error) {
	v, found, err := n.Get(ctx, key)
	if err != nil || !found {
		return def, err
	}
	if f, ok := v.Float(); ok {
		return f, nil
	}
	return def, nil
}

// GetInt returns the 32-bit integer stored under key, or def.
func (n *Namespace) GetInt(ctx context.Context, key string, def int32) (int32, error) {
	v, found, err := n.Get(ctx, key)
	if err != nil || !found {
		return def, err
	}
	if i, ok := v.Int(); ok {
		return i, nil
	}
	return def, nil
}

// GetLong returns the 64-bit integer stored under key, or def.
func (n *Namespace) GetLong(ctx context.Context, key string, def int64) (int64, error) {
	v, found, err := n.Get(ctx, key)
	if err != nil || !found {
		return def, err
	}
	if l, ok := v.Long(); ok {
		return l, nil
	}
	return def, nil
}

// GetStringSet returns the string set stored under key, or def.
func (n *Namespace) GetStringSet(ctx context.Context, key string, def []string) ([]string, error) {
	v, found, err := n.Get(ctx, key)
	if err != nil || !found {
		return def, err
	}
	if set, ok := v.StringSet(); ok {
		return set, nil
	}
	return def, nil
}

// Contains reports whether key holds a decodable value.
func (n *Namespace) Contains(ctx context.Context, key string) (bool, error) {
	_, found, err := n.Get(ctx, key)
	return found, err
}

// Entries returns all decodable entries ordered by key.
func (n *Namespace) Entries(ctx context.Context) ([]storage.Entry, error) {
	if err := validateNamespaceName(n.name); err != nil {
		return nil, err
	}

	entries := []storage.Entry{}
	err := n.store.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeValuePrefix(n.name)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := iter.Item()
			key := userKey(n.name, item.Key())
			err := item.Value(func(val []byte) error {
				decoded, err := storage.UnmarshalValue(val)
				if err != nil {
					n.store.logger.Warn("skipping malformed value", "namespace", n.name, "key", key, "err", err)
					return nil
				}
				entries = append(entries, storage.Entry{Key: key, Value: decoded})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", n.name, err)
	}
	return entries, nil
}

// Edit starts a batch of writes.
func (n *Namespace) Edit() storage.Editor {
	return &Editor{ns: n}
}

type opKind int

const (
	opPut opKind = iota
	opRemove
	opClear
)

type editOp struct {
	kind  opKind
	key   string
	value storage.Value
}

// Editor implements storage.Editor. All operations are applied in a
// single BadgerDB transaction on Commit.
type Editor struct {
	ns  *Namespace
	ops []editOp
	err error
}

var _ storage.Editor = (*Editor)(nil)

func (e *Editor) PutString(key, value string) storage.Editor {
	return e.Put(key, storage.StringValue(value))
}

func (e *Editor) PutBool(key string, value bool) storage.Editor {
	return e.Put(key, storage.BoolValue(value))
}

func (e *Editor) PutFloat(key string, value float64) storage.Editor {
	return e.Put(key, storage.FloatValue(value))
}

func (e *Editor) PutInt(key string, value int32) storage.Editor {
	return e.Put(key, storage.IntValue(value))
}

func (e *Editor) PutLong(key string, value int64) storage.Editor {
	return e.Put(key, storage.LongValue(value))
}

func (e *Editor) PutStringSet(key string, value []string) storage.Editor {
	return e.Put(key, storage.StringSetValue(value))
}

// Put buffers a write of an already-tagged value.
func (e *Editor) Put(key string, value storage.Value) storage.Editor {
	if key == "" {
		e.fail(fmt.Errorf("%w: empty key", storage.ErrInvalidKey))
		return e
	}
	if !value.Kind().Valid() {
		e.fail(fmt.Errorf("%w: key %q", storage.ErrUnknownKind, key))
		return e
	}
	e.ops = append(e.ops, editOp{kind: opPut, key: key, value: value})
	return e
}

// Remove buffers a deletion.
func (e *Editor) Remove(key string) storage.Editor {
	e.ops = append(e.ops, editOp{kind: opRemove, key: key})
	return e
}

// Clear buffers the deletion of every key, including earlier buffered puts.
func (e *Editor) Clear() storage.Editor {
	e.ops = append(e.ops, editOp{kind: opClear})
	return e
}

// Commit applies the buffered operations atomically. The first invalid
// operation recorded by the editor aborts the whole batch.
func (e *Editor) Commit(ctx context.Context) error {
	if e.err != nil {
		return e.err
	}
	if err := validateNamespaceName(e.ns.name); err != nil {
		return err
	}
	if len(e.ops) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	ops := slices.Clone(e.ops)
	err := e.ns.store.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeMarkerKey(e.ns.name), []byte{1}); err != nil {
			return err
		}
		for _, op := range ops {
			switch op.kind {
			case opPut:
				data, err := storage.MarshalValue(op.value)
				if err != nil {
					return fmt.Errorf("key %q: %w", op.key, err)
				}
				if err := tx.Set(makeValueKey(e.ns.name, op.key), data); err != nil {
					return err
				}
			case opRemove:
				if err := tx.Delete(makeValueKey(e.ns.name, op.key)); err != nil {
					return err
				}
			case opClear:
				if err := deletePrefix(tx, makeValuePrefix(e.ns.name)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return fmt.Errorf("committing %s: %w", e.ns.name, err)
	}

	e.ops = e.ops[:0]
	return nil
}

func (e *Editor) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}
