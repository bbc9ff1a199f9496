// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package launchkit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/launchkit/consolidate"
	"github.com/poiesic/launchkit/directory"
	"github.com/poiesic/launchkit/membership"
	"github.com/poiesic/launchkit/storage"
	"github.com/poiesic/launchkit/storage/badger"
	"github.com/poiesic/launchkit/storage/legacy"
)

const (
	// UnifiedNamespace holds every launcher preference after consolidation.
	UnifiedNamespace = "prefs"

	// ShowHiddenKey is the preference surfacing hidden apps while searching.
	ShowHiddenKey = "search_shows_hidden"
)

// Launcher owns the unified store and the single instance of each
// membership set.
type Launcher struct {
	store  *badger.Store
	prefs  storage.Namespace
	sets   *membership.Sets
	report *consolidate.Report
	logger *slog.Logger
}

// Option configures a Launcher.
type Option func(*launcherOptions)

type launcherOptions struct {
	legacyDir        string
	legacyNamespaces []string
	inMemory         bool
	logger           *slog.Logger
}

// WithLegacyDir reads legacy namespaces from TOML files in dir instead of
// from namespaces of the unified database.
func WithLegacyDir(dir string) Option {
	return func(o *launcherOptions) {
		o.legacyDir = dir
	}
}

// WithLegacyNamespaces overrides consolidate.DefaultLegacyNamespaces.
func WithLegacyNamespaces(names []string) Option {
	return func(o *launcherOptions) {
		o.legacyNamespaces = names
	}
}

// WithInMemory keeps the database in memory. The path is ignored.
func WithInMemory() Option {
	return func(o *launcherOptions) {
		o.inMemory = true
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *launcherOptions) {
		o.logger = logger
	}
}

// Open opens the database at path, consolidates legacy preferences if that
// has not happened yet, and loads nothing else until first use.
func Open(ctx context.Context, path string, opts ...Option) (*Launcher, error) {
	options := &launcherOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	logger := options.logger

	store, err := badger.OpenStore(path, options.inMemory)
	if err != nil {
		return nil, err
	}
	prefs := store.Namespace(UnifiedNamespace)

	var source consolidate.LegacySource = store
	if options.legacyDir != "" {
		source = legacy.NewStore(options.legacyDir, legacy.WithLogger(logger))
	}

	consolidator, err := consolidate.New(prefs, source, options.legacyNamespaces, consolidate.WithLogger(logger))
	if err != nil {
		store.Close()
		return nil, err
	}
	report, err := consolidator.Run(ctx)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("consolidating preferences: %w", err)
	}

	sets, err := membership.NewSets(prefs, membership.WithLogger(logger))
	if err != nil {
		store.Close()
		return nil, err
	}

	return &Launcher{
		store:  store,
		prefs:  prefs,
		sets:   sets,
		report: report,
		logger: logger,
	}, nil
}

func (l *Launcher) Close() error {
	if err := l.store.Close(); err != nil {
		l.logger.Error("error closing store", "err", err)
		return err
	}
	return nil
}

func (l *Launcher) Favorites() *membership.Store {
	return l.sets.Favorites
}

func (l *Launcher) Hidden() *membership.Store {
	return l.sets.Hidden
}

func (l *Launcher) Challenged() *membership.Store {
	return l.sets.Challenged
}

func (l *Launcher) Sets() *membership.Sets {
	return l.sets
}

// Preferences returns the unified namespace.
func (l *Launcher) Preferences() storage.Namespace {
	return l.prefs
}

// MigrationReport describes the consolidation performed by Open.
func (l *Launcher) MigrationReport() *consolidate.Report {
	return l.report
}

// NewSession creates a directory session over registry using the
// launcher's membership sets.
func (l *Launcher) NewSession(registry directory.Registry, opts ...directory.Option) (*directory.Session, error) {
	opts = append([]directory.Option{directory.WithLogger(l.logger)}, opts...)
	return directory.NewSession(registry, l.sets, opts...)
}

// ShowHiddenOverride reports whether hidden apps should be shown for query:
// only while searching, and only when the user enabled it.
func (l *Launcher) ShowHiddenOverride(ctx context.Context, query string) (bool, error) {
	if query == "" {
		return false, nil
	}
	return l.prefs.GetBool(ctx, ShowHiddenKey, false)
}

// SetShowHiddenWhileSearching stores the show-hidden preference.
func (l *Launcher) SetShowHiddenWhileSearching(ctx context.Context, enabled bool) error {
	return l.prefs.Edit().PutBool(ShowHiddenKey, enabled).Commit(ctx)
}
