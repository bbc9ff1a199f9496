package consolidate

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/poiesic/launchkit/storage"
)

// CompletionFlagKey is the unified-namespace key marking a finished run.
const CompletionFlagKey = "migration_complete"

// DefaultLegacyNamespaces lists the namespaces used before consolidation.
var DefaultLegacyNamespaces = []string{
	"favorites",
	"hidden_apps",
	"challenge_apps",
	"launcher_settings",
	"search_settings",
}

// LegacySource is where legacy namespaces live. storage/legacy.Store and
// storage/badger.Store both satisfy it.
type LegacySource interface {
	NamespaceExists(ctx context.Context, name string) (bool, error)
	ReadNamespace(ctx context.Context, name string) ([]storage.Entry, error)
	ClearNamespace(ctx context.Context, name string) error
	DeleteNamespace(ctx context.Context, name string) error
}

// Report describes what a Run did.
type Report struct {
	// Skipped is set when the completion flag was already present.
	Skipped bool
	// Copied counts keys written to the unified namespace.
	Copied int
	// Migrated lists namespaces whose keys were copied.
	Migrated []string
	// Deleted lists namespaces whose backing storage was removed.
	Deleted []string
	// Absent lists namespaces that did not exist.
	Absent []string
}

// Consolidator runs the one-time merge.
type Consolidator struct {
	unified    storage.Namespace
	source     LegacySource
	namespaces []string
	logger     *slog.Logger
}

// Option configures a Consolidator.
type Option func(*Consolidator) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Consolidator) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// New creates a Consolidator copying namespaces from source into unified.
// A nil namespaces list selects DefaultLegacyNamespaces.
func New(unified storage.Namespace, source LegacySource, namespaces []string, opts ...Option) (*Consolidator, error) {
	if unified == nil {
		return nil, ErrUnifiedRequired
	}
	if source == nil {
		return nil, ErrSourceRequired
	}
	if namespaces == nil {
		namespaces = DefaultLegacyNamespaces
	}
	if slices.Contains(namespaces, unified.Name()) {
		return nil, fmt.Errorf("%w: %s", ErrUnifiedIsLegacy, unified.Name())
	}

	c := &Consolidator{
		unified:    unified,
		source:     source,
		namespaces: slices.Clone(namespaces),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Migrated reports whether the completion flag is set.
func (c *Consolidator) Migrated(ctx context.Context) (bool, error) {
	done, err := c.unified.GetBool(ctx, CompletionFlagKey, false)
	if err != nil {
		return false, fmt.Errorf("reading completion flag: %w", err)
	}
	return done, nil
}

// Run performs the merge unless it has already completed. Errors leave the
// flag unset so a later Run can finish the work.
func (c *Consolidator) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	done, err := c.Migrated(ctx)
	if err != nil {
		return report, err
	}
	if done {
		report.Skipped = true
		c.logger.Debug("preferences already consolidated")
		return report, nil
	}

	for _, name := range c.namespaces {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := c.migrateNamespace(ctx, name, report); err != nil {
			return report, err
		}
	}

	if err := c.unified.Edit().PutBool(CompletionFlagKey, true).Commit(ctx); err != nil {
		return report, fmt.Errorf("setting completion flag: %w", err)
	}
	c.logger.Info("preferences consolidated",
		"copied", report.Copied,
		"migrated", len(report.Migrated),
		"deleted", len(report.Deleted))
	return report, nil
}

func (c *Consolidator) migrateNamespace(ctx context.Context, name string, report *Report) error {
	exists, err := c.source.NamespaceExists(ctx, name)
	if err != nil {
		return fmt.Errorf("checking legacy namespace %s: %w", name, err)
	}
	if !exists {
		report.Absent = append(report.Absent, name)
		return nil
	}

	entries, err := c.source.ReadNamespace(ctx, name)
	if err != nil {
		return fmt.Errorf("reading legacy namespace %s: %w", name, err)
	}

	editor := c.unified.Edit()
	for _, entry := range entries {
		if err := copyValue(editor, entry); err != nil {
			return fmt.Errorf("legacy namespace %s: %w", name, err)
		}
	}
	if err := editor.Commit(ctx); err != nil {
		return fmt.Errorf("copying legacy namespace %s: %w", name, err)
	}
	report.Copied += len(entries)
	report.Migrated = append(report.Migrated, name)

	if err := c.source.ClearNamespace(ctx, name); err != nil {
		return fmt.Errorf("clearing legacy namespace %s: %w", name, err)
	}
	if err := c.source.DeleteNamespace(ctx, name); err != nil {
		return fmt.Errorf("deleting legacy namespace %s: %w", name, err)
	}
	report.Deleted = append(report.Deleted, name)
	c.logger.Debug("legacy namespace migrated", "namespace", name, "keys", len(entries))
	return nil
}

// copyValue writes entry into editor through the setter matching its kind.
func copyValue(editor storage.Editor, entry storage.Entry) error {
	v := entry.Value
	switch v.Kind() {
	case storage.KindBool:
		b, _ := v.Bool()
		editor.PutBool(entry.Key, b)
	case storage.KindFloat:
		f, _ := v.Float()
		editor.PutFloat(entry.Key, f)
	case storage.KindInt:
		i, _ := v.Int()
		editor.PutInt(entry.Key, i)
	case storage.KindLong:
		l, _ := v.Long()
		editor.PutLong(entry.Key, l)
	case storage.KindString:
		s, _ := v.Str()
		editor.PutString(entry.Key, s)
	case storage.KindStringSet:
		set, _ := v.StringSet()
		editor.PutStringSet(entry.Key, set)
	default:
		return fmt.Errorf("key %q: %w", entry.Key, storage.ErrUnknownKind)
	}
	return nil
}
