package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Registry kinds.
const (
	RegistryManifest = "manifest"
	RegistryDesktop  = "desktop"
)

// Config is the top-level configuration.
type Config struct {
	// DataDir holds the unified preference database.
	DataDir string `yaml:"data_dir"`

	// LegacyDir holds legacy TOML namespaces to consolidate. When empty,
	// legacy namespaces are looked up in the unified database.
	LegacyDir string `yaml:"legacy_dir"`

	// LegacyNamespaces overrides the namespaces consolidated on first run.
	LegacyNamespaces []string `yaml:"legacy_namespaces"`

	// SelfIdentifier is the launcher's own application identifier.
	SelfIdentifier string `yaml:"self_identifier"`

	Registry RegistryConfig `yaml:"registry"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// RegistryConfig selects where applications are enumerated from.
type RegistryConfig struct {
	Kind        string   `yaml:"kind"`
	Manifest    string   `yaml:"manifest"`
	DesktopDirs []string `yaml:"desktop_dirs"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given, following
// the XDG base directory layout.
func Default() *Config {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dataHome = filepath.Join(home, ".local", "share")
		}
	}
	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}

	var desktopDirs []string
	if dataHome != "" {
		desktopDirs = append(desktopDirs, filepath.Join(dataHome, "applications"))
	}
	for _, dir := range filepath.SplitList(dataDirs) {
		if dir != "" {
			desktopDirs = append(desktopDirs, filepath.Join(dir, "applications"))
		}
	}

	return &Config{
		DataDir: filepath.Join(dataHome, "launchkit"),
		Registry: RegistryConfig{
			Kind:        RegistryDesktop,
			DesktopDirs: desktopDirs,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Environment variables in the format ${VAR_NAME} are expanded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envVarPattern.FindStringSubmatch(match)[1])
	})
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	switch c.Registry.Kind {
	case RegistryManifest:
		if c.Registry.Manifest == "" {
			return fmt.Errorf("registry.manifest is required when registry.kind is %q", RegistryManifest)
		}
	case RegistryDesktop:
		if len(c.Registry.DesktopDirs) == 0 {
			return fmt.Errorf("registry.desktop_dirs is required when registry.kind is %q", RegistryDesktop)
		}
	default:
		return fmt.Errorf("registry.kind %q must be one of %s, %s", c.Registry.Kind, RegistryManifest, RegistryDesktop)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}

	for _, name := range c.LegacyNamespaces {
		if name == "" {
			return fmt.Errorf("legacy_namespaces must not contain empty names")
		}
	}
	return nil
}
