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


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/launchkit/config"
	"github.com/urfave/cli/v2"
)

const configMetadataKey = "config"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "launchkit",
		Usage: "Inspect and manage a launcher's application list and preferences",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
				EnvVars: []string{"LAUNCHKIT_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory (overrides data_dir)",
			},
			&cli.StringFlag{
				Name:  "legacy-dir",
				Usage: "Directory of legacy TOML preference files (overrides legacy_dir)",
			},
			&cli.StringFlag{
				Name:  "manifest",
				Usage: "Enumerate applications from a YAML manifest instead of desktop entries",
			},
		},
		Metadata: map[string]interface{}{},
		Before:   before,
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Consolidate legacy preferences into the unified store",
				Action: migrateCommand,
			},
			{
				Name:   "list",
				Usage:  "List visible applications, optionally filtered by a query",
				Action: listCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Search query",
					},
					&cli.BoolFlag{
						Name:  "show-hidden",
						Usage: "Include hidden applications (defaults to the stored preference while searching)",
					},
					&cli.BoolFlag{
						Name:  "favorites",
						Usage: "List favorites in their pinned order",
					},
				},
			},
			membershipCommand("favorites", "Manage favorite applications", favoritesSet, true),
			membershipCommand("hidden", "Manage hidden applications", hiddenSet, false),
			membershipCommand("challenged", "Manage applications that need confirmation to open", challengedSet, false),
			{
				Name:  "settings",
				Usage: "Show or change preferences",
				Subcommands: []*cli.Command{
					{
						Name:   "show",
						Usage:  "Print every stored preference",
						Action: settingsShowCommand,
					},
					{
						Name:      "show-hidden-while-searching",
						Usage:     "Surface hidden applications while a query is typed",
						ArgsUsage: "on|off",
						Action:    showHiddenCommand,
					},
				},
			},
		},
	}
}

// before loads the configuration and installs the logger.
func before(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	c.App.Metadata[configMetadataKey] = cfg
	return setupLogger(c)
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if db := c.String("db"); db != "" {
		cfg.DataDir = db
	}
	if dir := c.String("legacy-dir"); dir != "" {
		cfg.LegacyDir = dir
	}
	if manifest := c.String("manifest"); manifest != "" {
		cfg.Registry.Kind = config.RegistryManifest
		cfg.Registry.Manifest = manifest
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configFrom(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[configMetadataKey].(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))
	if !c.IsSet("log-level") {
		if cfg, ok := c.App.Metadata[configMetadataKey].(*config.Config); ok && cfg.Logging.Level != "" {
			levelStr = strings.ToLower(cfg.Logging.Level)
		}
	}

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
