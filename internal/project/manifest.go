// Package project locates a workspace root, reads its ww.toml manifest,
// and enumerates the .ww source files that make up a world.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file that marks a project root.
const ManifestName = "ww.toml"

// Manifest mirrors the ww.toml layout.
type Manifest struct {
	Project ProjectSection `toml:"project"`
	Check   CheckSection   `toml:"check"`
}

// ProjectSection is the [project] table.
type ProjectSection struct {
	Name    string   `toml:"name"`
	Sources []string `toml:"sources"`
	Exclude []string `toml:"exclude"`
}

// CheckSection is the [check] table.
type CheckSection struct {
	MaxDiagnostics   int  `toml:"max_diagnostics"`
	WarningsAsErrors bool `toml:"warnings_as_errors"`
}

var (
	// ErrNoProjectSection reports a manifest without a [project] table.
	ErrNoProjectSection = errors.New("missing [project] section")
	// ErrNoProjectName reports a [project] table without a name.
	ErrNoProjectName = errors.New("missing [project].name")
)

// FindManifest walks up from startDir looking for ww.toml. It returns
// the manifest path and true when found, or ok=false when the search
// reaches the filesystem root without a hit.
func FindManifest(startDir string) (path string, ok bool, err error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolve %s: %w", startDir, err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate, true, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// LoadManifest parses a ww.toml file. The [project] table and its name
// are required; everything else is optional.
func LoadManifest(path string) (Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", path, err)
	}
	if !meta.IsDefined("project") {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrNoProjectSection)
	}
	if m.Project.Name == "" {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrNoProjectName)
	}
	return m, nil
}
