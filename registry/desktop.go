package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/launchkit/core"
)

const desktopSuffix = ".desktop"

// Desktop enumerates freedesktop.org application entries below a list of
// directories, typically $XDG_DATA_DIRS/applications. Directories are
// walked with fastwalk and entry files parsed on a worker pool.
//
// The identifier of an entry is its desktop file ID: the path relative to
// its directory with separators replaced by "-" and the suffix removed.
// When two directories provide the same ID, the earlier directory wins.
type Desktop struct {
	dirs   []string
	pool   *ants.Pool
	logger *slog.Logger
}

// DesktopOption configures a Desktop registry.
type DesktopOption func(*Desktop) error

// WithPoolSize sets the number of parser workers.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) DesktopOption {
	return func(d *Desktop) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if d.pool != nil {
			d.pool.Release()
		}
		d.pool = pool
		return nil
	}
}

// WithDesktopLogger sets a custom logger.
// Default is slog.Default().
func WithDesktopLogger(logger *slog.Logger) DesktopOption {
	return func(d *Desktop) error {
		if logger == nil {
			logger = slog.Default()
		}
		d.logger = logger
		return nil
	}
}

// NewDesktop creates a scanner over dirs. Release must be called when the
// registry is no longer needed.
func NewDesktop(dirs []string, opts ...DesktopOption) (*Desktop, error) {
	if len(dirs) == 0 {
		return nil, ErrNoDirectories
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	d := &Desktop{
		dirs:   append([]string(nil), dirs...),
		pool:   pool,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			d.Release()
			return nil, err
		}
	}
	return d, nil
}

// Release releases the worker pool.
func (d *Desktop) Release() {
	if d.pool != nil {
		d.pool.Release()
	}
}

type desktopFile struct {
	id   string
	path string
}

// Enumerate scans every directory and returns the launchable entries.
// Missing directories are skipped; unreadable entry files are logged and
// skipped.
func (d *Desktop) Enumerate(ctx context.Context) ([]core.Application, error) {
	var files []desktopFile
	seen := make(map[string]struct{})
	for _, dir := range d.dirs {
		found, err := d.collect(ctx, dir)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if _, dup := seen[f.id]; dup {
				continue
			}
			seen[f.id] = struct{}{}
			files = append(files, f)
		}
	}

	results := make([]*core.Application, len(files))
	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		err := d.pool.Submit(func() {
			defer wg.Done()
			results[i] = d.parse(f)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("scheduling %s: %w", f.path, err)
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	apps := make([]core.Application, 0, len(results))
	for _, app := range results {
		if app != nil {
			apps = append(apps, *app)
		}
	}
	d.logger.Debug("desktop entries scanned", "files", len(files), "apps", len(apps))
	return apps, nil
}

// collect walks dir for .desktop files. The walk callback runs on several
// goroutines at once.
func (d *Desktop) collect(ctx context.Context, dir string) ([]desktopFile, error) {
	var (
		mu    sync.Mutex
		found []desktopFile
	)
	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, dir, func(p string, entry os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil || entry.IsDir() || !strings.HasSuffix(p, desktopSuffix) {
			return nil
		}
		rel, relErr := filepath.Rel(dir, p)
		if relErr != nil {
			return nil
		}
		id := strings.TrimSuffix(filepath.ToSlash(rel), desktopSuffix)
		id = strings.ReplaceAll(id, "/", "-")

		mu.Lock()
		found = append(found, desktopFile{id: id, path: p})
		mu.Unlock()
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			d.logger.Debug("application directory missing", "dir", dir)
			return nil, nil
		}
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}

	// Walk order is not deterministic.
	slices.SortFunc(found, func(a, b desktopFile) int { return strings.Compare(a.path, b.path) })
	return found, nil
}

func (d *Desktop) parse(f desktopFile) *core.Application {
	file, err := os.Open(f.path)
	if err != nil {
		d.logger.Warn("skipping unreadable desktop entry", "path", f.path, "err", err)
		return nil
	}
	defer file.Close()

	entry, err := parseDesktopEntry(file)
	if err != nil {
		d.logger.Warn("skipping malformed desktop entry", "path", f.path, "err", err)
		return nil
	}
	if !entry.launchable() {
		return nil
	}
	return &core.Application{DisplayName: entry.Name, Identifier: f.id, Target: entry.Exec}
}
