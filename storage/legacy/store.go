package legacy

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/poiesic/launchkit/storage"
)

const fileExt = ".toml"

// Store exposes a directory of legacy namespace files.
type Store struct {
	dir    string
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewStore creates a Store rooted at dir. The directory does not need to exist.
func NewStore(dir string, opts ...Option) *Store {
	s := &Store{
		dir:    dir,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file backing the named namespace.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+fileExt)
}

func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", storage.ErrInvalidNamespace, name)
	}
	return nil
}

// NamespaceExists reports whether the namespace file is present.
func (s *Store) NamespaceExists(ctx context.Context, name string) (bool, error) {
	if err := validateName(name); err != nil {
		return false, err
	}
	info, err := os.Stat(s.Path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// ReadNamespace decodes the namespace file into entries ordered by key.
// A missing file yields no entries.
func (s *Store) ReadNamespace(ctx context.Context, name string) ([]storage.Entry, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	raw := map[string]any{}
	if _, err := toml.DecodeFile(s.Path(name), &raw); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []storage.Entry{}, nil
		}
		return nil, fmt.Errorf("decoding legacy namespace %s: %w", name, err)
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	entries := make([]storage.Entry, 0, len(keys))
	for _, key := range keys {
		value, ok := toValue(raw[key])
		if !ok {
			s.logger.Warn("skipping legacy key with unsupported type",
				"namespace", name, "key", key, "type", fmt.Sprintf("%T", raw[key]))
			continue
		}
		entries = append(entries, storage.Entry{Key: key, Value: value})
	}
	return entries, nil
}

// ClearNamespace truncates the namespace file, leaving it in place.
func (s *Store) ClearNamespace(ctx context.Context, name string) error {
	exists, err := s.NamespaceExists(ctx, name)
	if err != nil || !exists {
		return err
	}
	return os.WriteFile(s.Path(name), nil, 0644)
}

// DeleteNamespace removes the namespace file. A missing file is not an error.
func (s *Store) DeleteNamespace(ctx context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := os.Remove(s.Path(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// WriteNamespace writes entries as a namespace file, replacing any previous
// content. Used to seed fixtures and by tooling that exports old stores.
func (s *Store) WriteNamespace(ctx context.Context, name string, entries []storage.Entry) error {
	if err := validateName(name); err != nil {
		return err
	}
	doc := make(map[string]any, len(entries))
	for _, entry := range entries {
		v, err := fromValue(entry.Value)
		if err != nil {
			return fmt.Errorf("key %q: %w", entry.Key, err)
		}
		doc[entry.Key] = v
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	f, err := os.Create(s.Path(name))
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(doc); err != nil {
		f.Close()
		return fmt.Errorf("encoding legacy namespace %s: %w", name, err)
	}
	return f.Close()
}

// toValue maps a decoded TOML value onto the storage union.
func toValue(v any) (storage.Value, bool) {
	switch t := v.(type) {
	case bool:
		return storage.BoolValue(t), true
	case float64:
		return storage.FloatValue(t), true
	case int64:
		if t >= math.MinInt32 && t <= math.MaxInt32 {
			return storage.IntValue(int32(t)), true
		}
		return storage.LongValue(t), true
	case string:
		return storage.StringValue(t), true
	case []any:
		set := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return storage.Value{}, false
			}
			set = append(set, s)
		}
		return storage.StringSetValue(set), true
	}
	return storage.Value{}, false
}

// fromValue maps a storage value onto a TOML-encodable value.
func fromValue(v storage.Value) (any, error) {
	switch v.Kind() {
	case storage.KindBool:
		b, _ := v.Bool()
		return b, nil
	case storage.KindFloat:
		f, _ := v.Float()
		return f, nil
	case storage.KindInt, storage.KindLong:
		l, _ := v.Long()
		return l, nil
	case storage.KindString:
		s, _ := v.Str()
		return s, nil
	case storage.KindStringSet:
		set, _ := v.StringSet()
		return set, nil
	}
	return nil, storage.ErrUnknownKind
}
