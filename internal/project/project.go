package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tbsvttr/weltenwanderer2/internal/diag"
	"github.com/tbsvttr/weltenwanderer2/internal/source"
)

// SourceExt is the extension of world source files.
const SourceExt = ".ww"

// Directories never walked for sources.
var skipDirs = map[string]bool{
	"node_modules": true,
	"target":       true,
	".ww":          true,
}

// Project is an opened workspace: a root directory, optionally pinned
// by a ww.toml manifest.
type Project struct {
	Root         string
	ManifestPath string // empty when the workspace has no manifest
	Manifest     Manifest
}

// Open locates the project that contains startDir. When no manifest is
// found the directory itself becomes a manifest-less root, so every
// command keeps working in loose collections of .ww files.
func Open(startDir string) (*Project, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		root, err := filepath.Abs(startDir)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", startDir, err)
		}
		return &Project{Root: root}, nil
	}
	m, err := LoadManifest(path)
	if err != nil {
		return nil, err
	}
	return &Project{Root: filepath.Dir(path), ManifestPath: path, Manifest: m}, nil
}

// HasManifest reports whether the project was opened from a ww.toml.
func (p *Project) HasManifest() bool { return p.ManifestPath != "" }

// Name returns the manifest's project name, or the root directory's
// base name for manifest-less workspaces.
func (p *Project) Name() string {
	if p.Manifest.Project.Name != "" {
		return p.Manifest.Project.Name
	}
	return filepath.Base(p.Root)
}

func (p *Project) sources() []string {
	if len(p.Manifest.Project.Sources) > 0 {
		return p.Manifest.Project.Sources
	}
	return []string{"."}
}

// SourceFiles walks the source directories and returns every .ww file
// as a slash path relative to the root, sorted and deduplicated.
// Hidden directories, the cache directory, and manifest excludes are
// skipped; an explicitly listed source directory is walked even when
// its own name would be skipped.
func (p *Project) SourceFiles() ([]string, error) {
	exclude := make(map[string]bool, len(p.Manifest.Project.Exclude))
	for _, name := range p.Manifest.Project.Exclude {
		exclude[name] = true
	}

	seen := make(map[string]bool)
	var files []string
	for _, src := range p.sources() {
		dir := filepath.Join(p.Root, filepath.FromSlash(src))
		walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			name := d.Name()
			if d.IsDir() {
				if path != dir && (skipDirs[name] || exclude[name] || strings.HasPrefix(name, ".")) {
					return filepath.SkipDir
				}
				return nil
			}
			if !strings.HasSuffix(name, SourceExt) || exclude[name] {
				return nil
			}
			rel, err := filepath.Rel(p.Root, path)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)
			if !seen[rel] {
				seen[rel] = true
				files = append(files, rel)
			}
			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("walk %s: %w", dir, walkErr)
		}
	}
	slices.Sort(files)
	return files, nil
}

// LoadSnapshot reads every source file into memory. Unreadable files
// become IO diagnostics instead of aborting the load, so one bad file
// does not hide the rest of the workspace.
func (p *Project) LoadSnapshot() (map[string]string, []diag.Diagnostic, error) {
	files, err := p.SourceFiles()
	if err != nil {
		return nil, nil, err
	}
	snap := make(map[string]string, len(files))
	var diags []diag.Diagnostic
	for _, rel := range files {
		content, err := os.ReadFile(filepath.Join(p.Root, filepath.FromSlash(rel)))
		if err != nil {
			msg := fmt.Sprintf("%s: failed to load file: %v", rel, err)
			diags = append(diags, diag.NewError(diag.IOLoadFileError, source.Span{}, msg))
			continue
		}
		snap[rel] = string(content)
	}
	return snap, diags, nil
}

// CacheDir returns the on-disk cache location for this project.
func (p *Project) CacheDir() string {
	return filepath.Join(p.Root, ".ww", "cache")
}
