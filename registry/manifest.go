package registry

import (
	"context"
	"fmt"
	"os"

	"github.com/poiesic/launchkit/core"
	"gopkg.in/yaml.v3"
)

// Manifest enumerates the applications listed in a YAML file:
//
//	applications:
//	  - name: Gmail
//	    id: com.google.gmail
//	    target: gmail --new-window
//
// The file is re-read on every enumeration.
type Manifest struct {
	path string
}

type manifestFile struct {
	Applications []manifestEntry `yaml:"applications"`
}

type manifestEntry struct {
	Name   string `yaml:"name"`
	ID     string `yaml:"id"`
	Target string `yaml:"target"`
}

// NewManifest creates a registry backed by the manifest at path.
func NewManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, ErrManifestPathRequired
	}
	return &Manifest{path: path}, nil
}

// Path returns the manifest location.
func (m *Manifest) Path() string { return m.path }

// Enumerate reads and parses the manifest.
func (m *Manifest) Enumerate(ctx context.Context) ([]core.Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(m.path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes manifest YAML. Entries are returned as listed,
// without validation.
func ParseManifest(data []byte) ([]core.Application, error) {
	var file manifestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	apps := make([]core.Application, len(file.Applications))
	for i, e := range file.Applications {
		apps[i] = core.Application{DisplayName: e.Name, Identifier: e.ID, Target: e.Target}
	}
	return apps, nil
}

// WriteManifest encodes apps as manifest YAML.
func WriteManifest(path string, apps []core.Application) error {
	file := manifestFile{Applications: make([]manifestEntry, len(apps))}
	for i, app := range apps {
		file.Applications[i] = manifestEntry{Name: app.DisplayName, ID: app.Identifier, Target: app.Target}
	}
	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
