package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/poiesic/launchkit"
	"github.com/poiesic/launchkit/config"
	"github.com/poiesic/launchkit/core"
	"github.com/poiesic/launchkit/directory"
	"github.com/poiesic/launchkit/membership"
	"github.com/poiesic/launchkit/registry"
	"github.com/urfave/cli/v2"
)

// withLauncher opens the launcher described by the configuration, runs fn
// and closes the launcher.
func withLauncher(c *cli.Context, fn func(ctx context.Context, l *launchkit.Launcher, cfg *config.Config) error) error {
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := configFrom(c)

	opts := []launchkit.Option{launchkit.WithLogger(slog.Default())}
	if cfg.LegacyDir != "" {
		opts = append(opts, launchkit.WithLegacyDir(cfg.LegacyDir))
	}
	if len(cfg.LegacyNamespaces) > 0 {
		opts = append(opts, launchkit.WithLegacyNamespaces(cfg.LegacyNamespaces))
	}

	l, err := launchkit.Open(ctx, cfg.DataDir, opts...)
	if err != nil {
		return fmt.Errorf("opening launcher data: %w", err)
	}
	defer l.Close()

	return fn(ctx, l, cfg)
}

// openRegistry builds the configured registry. The returned release
// function must be called when done.
func openRegistry(cfg *config.Config) (directory.Registry, func(), error) {
	switch cfg.Registry.Kind {
	case config.RegistryManifest:
		reg, err := registry.NewManifest(cfg.Registry.Manifest)
		if err != nil {
			return nil, nil, err
		}
		return reg, func() {}, nil
	case config.RegistryDesktop:
		reg, err := registry.NewDesktop(cfg.Registry.DesktopDirs, registry.WithDesktopLogger(slog.Default()))
		if err != nil {
			return nil, nil, err
		}
		return reg, reg.Release, nil
	default:
		return nil, nil, fmt.Errorf("unknown registry kind %q", cfg.Registry.Kind)
	}
}

func newSession(l *launchkit.Launcher, cfg *config.Config) (*directory.Session, func(), error) {
	reg, release, err := openRegistry(cfg)
	if err != nil {
		return nil, nil, err
	}
	session, err := l.NewSession(reg, directory.WithSelfIdentifier(cfg.SelfIdentifier))
	if err != nil {
		release()
		return nil, nil, err
	}
	return session, release, nil
}

func migrateCommand(c *cli.Context) error {
	return withLauncher(c, func(_ context.Context, l *launchkit.Launcher, _ *config.Config) error {
		renderReport(c.App.Writer, l.MigrationReport())
		return nil
	})
}

func listCommand(c *cli.Context) error {
	return withLauncher(c, func(ctx context.Context, l *launchkit.Launcher, cfg *config.Config) error {
		session, release, err := newSession(l, cfg)
		if err != nil {
			return err
		}
		defer release()

		if err := session.Refresh(ctx); err != nil {
			slog.Warn("registry enumeration failed", "err", err)
		}

		var apps []core.Application
		if c.Bool("favorites") {
			apps, err = session.FavoritesView(ctx)
		} else {
			query := c.String("query")
			showHidden := c.Bool("show-hidden")
			if !c.IsSet("show-hidden") {
				showHidden, err = l.ShowHiddenOverride(ctx, query)
				if err != nil {
					return err
				}
			}
			apps, err = session.VisibleApps(ctx, query, showHidden)
		}
		if err != nil {
			return err
		}

		entries, err := session.Entries(ctx, apps)
		if err != nil {
			return err
		}
		return renderList(c.App.Writer, entries)
	})
}

func favoritesSet(l *launchkit.Launcher) *membership.Store  { return l.Favorites() }
func hiddenSet(l *launchkit.Launcher) *membership.Store     { return l.Hidden() }
func challengedSet(l *launchkit.Launcher) *membership.Store { return l.Challenged() }

// membershipCommand builds the list/add/remove subcommands for one set,
// plus move for ordered sets.
func membershipCommand(name, usage string, pick func(*launchkit.Launcher) *membership.Store, ordered bool) *cli.Command {
	subcommands := []*cli.Command{
		{
			Name:  "list",
			Usage: "Print the identifiers in the set",
			Action: func(c *cli.Context) error {
				return withLauncher(c, func(ctx context.Context, l *launchkit.Launcher, _ *config.Config) error {
					ids, err := pick(l).All(ctx)
					if err != nil {
						return err
					}
					renderIdentifiers(c.App.Writer, ids)
					return nil
				})
			},
		},
		{
			Name:      "add",
			Usage:     "Add applications to the set",
			ArgsUsage: "IDENTIFIER...",
			Action: func(c *cli.Context) error {
				return eachIdentifier(c, func(ctx context.Context, set *membership.Store, id string) error {
					return set.Add(ctx, id)
				}, pick)
			},
		},
		{
			Name:      "remove",
			Usage:     "Remove applications from the set",
			ArgsUsage: "IDENTIFIER...",
			Action: func(c *cli.Context) error {
				return eachIdentifier(c, func(ctx context.Context, set *membership.Store, id string) error {
					return set.Remove(ctx, id)
				}, pick)
			},
		},
	}
	if ordered {
		subcommands = append(subcommands, &cli.Command{
			Name:      "move",
			Usage:     "Move the entry at FROM to position TO",
			ArgsUsage: "FROM TO",
			Action: func(c *cli.Context) error {
				from, to, err := positions(c)
				if err != nil {
					return err
				}
				return withLauncher(c, func(ctx context.Context, l *launchkit.Launcher, _ *config.Config) error {
					return pick(l).Reorder(ctx, from, to)
				})
			},
		})
	}

	return &cli.Command{
		Name:        name,
		Usage:       usage,
		Subcommands: subcommands,
	}
}

func eachIdentifier(c *cli.Context, fn func(context.Context, *membership.Store, string) error, pick func(*launchkit.Launcher) *membership.Store) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one identifier is required")
	}
	return withLauncher(c, func(ctx context.Context, l *launchkit.Launcher, _ *config.Config) error {
		set := pick(l)
		for _, id := range c.Args().Slice() {
			if err := fn(ctx, set, id); err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
		}
		return nil
	})
}

func positions(c *cli.Context) (int, int, error) {
	if c.NArg() != 2 {
		return 0, 0, fmt.Errorf("expected FROM and TO positions, got %d arguments", c.NArg())
	}
	from, err := strconv.Atoi(c.Args().Get(0))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid FROM position %q: %w", c.Args().Get(0), err)
	}
	to, err := strconv.Atoi(c.Args().Get(1))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid TO position %q: %w", c.Args().Get(1), err)
	}
	return from, to, nil
}

func settingsShowCommand(c *cli.Context) error {
	return withLauncher(c, func(ctx context.Context, l *launchkit.Launcher, _ *config.Config) error {
		entries, err := l.Preferences().Entries(ctx)
		if err != nil {
			return err
		}
		return renderSettings(c.App.Writer, entries)
	})
}

func showHiddenCommand(c *cli.Context) error {
	var enabled bool
	switch c.Args().First() {
	case "on", "true":
		enabled = true
	case "off", "false":
		enabled = false
	default:
		return fmt.Errorf("expected on or off, got %q", c.Args().First())
	}
	return withLauncher(c, func(ctx context.Context, l *launchkit.Launcher, _ *config.Config) error {
		return l.SetShowHiddenWhileSearching(ctx, enabled)
	})
}
