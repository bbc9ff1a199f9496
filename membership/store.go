package membership

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/poiesic/launchkit/core"
	"github.com/poiesic/launchkit/storage"
)

// Mode selects whether a set's order is significant.
type Mode int

const (
	// Unordered sets only track membership; members are kept sorted.
	Unordered Mode = iota
	// Ordered sets keep insertion order and support IndexOf and Reorder.
	Ordered
)

func (m Mode) String() string {
	if m == Ordered {
		return "ordered"
	}
	return "unordered"
}

// Store is a persisted set of identifiers with an in-memory cache.
type Store struct {
	ns     storage.Namespace
	key    string
	mode   Mode
	logger *slog.Logger

	mu     sync.Mutex
	loaded bool
	ids    []string
}

// Option configures a Store.
type Option func(*Store) error

// WithLogger sets the logger. A nil logger selects slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// New creates a Store for the set kept under key in ns.
func New(ns storage.Namespace, key string, mode Mode, opts ...Option) (*Store, error) {
	if ns == nil {
		return nil, ErrNamespaceRequired
	}
	if key == "" {
		return nil, storage.ErrInvalidKey
	}
	s := &Store{
		ns:     ns,
		key:    key,
		mode:   mode,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("set", key)
	return s, nil
}

// Key returns the namespace key holding the set.
func (s *Store) Key() string { return s.key }

// Mode returns the ordering mode.
func (s *Store) Mode() Mode { return s.mode }

// Contains reports whether id is in the set.
func (s *Store) Contains(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return false, err
	}
	return slices.Contains(s.ids, id), nil
}

// All returns the members in stored order.
func (s *Store) All(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(s.ids), nil
}

// Add inserts id. Adding a present id is a no-op.
func (s *Store) Add(ctx context.Context, id string) error {
	if id == "" {
		return core.ErrEmptyIdentifier
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return err
	}
	if slices.Contains(s.ids, id) {
		return nil
	}
	next := append(slices.Clone(s.ids), id)
	if s.mode == Unordered {
		slices.Sort(next)
	}
	return s.persist(ctx, next)
}

// Remove deletes id. Removing an absent id is a no-op.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return err
	}
	i := slices.Index(s.ids, id)
	if i < 0 {
		return nil
	}
	return s.persist(ctx, slices.Delete(slices.Clone(s.ids), i, i+1))
}

// IndexOf returns the position of id, or -1 when absent.
func (s *Store) IndexOf(ctx context.Context, id string) (int, error) {
	if s.mode != Ordered {
		return -1, ErrUnordered
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return -1, err
	}
	return slices.Index(s.ids, id), nil
}

// Reorder moves the member at from to position to, shifting the members in
// between. Out-of-range indices leave the set unchanged.
func (s *Store) Reorder(ctx context.Context, from, to int) error {
	if s.mode != Ordered {
		return ErrUnordered
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return err
	}
	n := len(s.ids)
	if from < 0 || from >= n || to < 0 || to >= n {
		s.logger.Debug("reorder out of range ignored", "from", from, "to", to, "size", n)
		return nil
	}
	if from == to {
		return nil
	}
	next := slices.Clone(s.ids)
	id := next[from]
	next = slices.Delete(next, from, from+1)
	next = slices.Insert(next, to, id)
	return s.persist(ctx, next)
}

// Clear empties the set and removes its key from the namespace.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ns.Edit().Remove(s.key).Commit(ctx); err != nil {
		return fmt.Errorf("clearing %s: %w", s.key, err)
	}
	s.ids = nil
	s.loaded = true
	return nil
}

// load populates the cache on first use. Callers hold s.mu.
func (s *Store) load(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	value, ok, err := s.ns.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("loading %s: %w", s.key, err)
	}
	s.ids = nil
	if ok {
		s.ids = s.decode(value)
	}
	if s.mode == Unordered {
		slices.Sort(s.ids)
	}
	s.loaded = true
	s.logger.Debug("membership set loaded", "size", len(s.ids))
	return nil
}

// decode extracts identifiers from a stored value. Anything unreadable
// is treated as an empty set.
func (s *Store) decode(value storage.Value) []string {
	switch value.Kind() {
	case storage.KindString:
		raw, _ := value.Str()
		ids, err := storage.UnmarshalIdentifiers([]byte(raw))
		if err != nil {
			s.logger.Warn("malformed membership set, treating as empty", "err", err)
			return nil
		}
		return dedupe(ids)
	case storage.KindStringSet:
		ids, _ := value.StringSet()
		return ids
	default:
		s.logger.Warn("unexpected membership value kind, treating as empty", "kind", value.Kind())
		return nil
	}
}

// persist writes ids and replaces the cache once the commit succeeds.
// Callers hold s.mu.
func (s *Store) persist(ctx context.Context, ids []string) error {
	data, err := storage.MarshalIdentifiers(ids)
	if err != nil {
		return err
	}
	if err := s.ns.Edit().PutString(s.key, string(data)).Commit(ctx); err != nil {
		return fmt.Errorf("saving %s: %w", s.key, err)
	}
	s.ids = ids
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
