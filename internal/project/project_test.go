package project

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/tbsvttr/weltenwanderer2/internal/diag"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "[project]\nname = \"realm\"\n")
	nested := filepath.Join(root, "chapters", "arc1")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, ok, err := FindManifest(nested)
	if err != nil {
		t.Fatalf("FindManifest: %v", err)
	}
	if !ok {
		t.Fatal("expected manifest to be found from nested dir")
	}
	if path != filepath.Join(root, ManifestName) {
		t.Fatalf("found %s, want manifest at root", path)
	}

	_, ok, err = FindManifest(t.TempDir())
	if err != nil {
		t.Fatalf("FindManifest: %v", err)
	}
	if ok {
		t.Fatal("expected no manifest in empty dir")
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()

	full := filepath.Join(dir, "full.toml")
	writeFile(t, full, `
[project]
name = "shattered-realm"
sources = ["canon", "drafts"]
exclude = ["scratch"]

[check]
max_diagnostics = 64
warnings_as_errors = true
`)
	m, err := LoadManifest(full)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Project.Name != "shattered-realm" {
		t.Fatalf("name = %q", m.Project.Name)
	}
	if !slices.Equal(m.Project.Sources, []string{"canon", "drafts"}) {
		t.Fatalf("sources = %v", m.Project.Sources)
	}
	if !slices.Equal(m.Project.Exclude, []string{"scratch"}) {
		t.Fatalf("exclude = %v", m.Project.Exclude)
	}
	if m.Check.MaxDiagnostics != 64 || !m.Check.WarningsAsErrors {
		t.Fatalf("check = %+v", m.Check)
	}

	noSection := filepath.Join(dir, "nosection.toml")
	writeFile(t, noSection, "[check]\nmax_diagnostics = 8\n")
	if _, err := LoadManifest(noSection); !errors.Is(err, ErrNoProjectSection) {
		t.Fatalf("want ErrNoProjectSection, got %v", err)
	}

	noName := filepath.Join(dir, "noname.toml")
	writeFile(t, noName, "[project]\nsources = [\".\"]\n")
	if _, err := LoadManifest(noName); !errors.Is(err, ErrNoProjectName) {
		t.Fatalf("want ErrNoProjectName, got %v", err)
	}
}

func TestOpenWithoutManifest(t *testing.T) {
	dir := t.TempDir()
	p, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if p.HasManifest() {
		t.Fatal("expected manifest-less project")
	}
	abs, _ := filepath.Abs(dir)
	if p.Root != abs {
		t.Fatalf("root = %s, want %s", p.Root, abs)
	}
	if p.Name() != filepath.Base(dir) {
		t.Fatalf("name = %q", p.Name())
	}
}

func TestOpenFromNestedDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "[project]\nname = \"realm\"\n")
	nested := filepath.Join(root, "canon")
	writeFile(t, filepath.Join(nested, "a.ww"), "world \"Realm\" {\n}\n")

	p, err := Open(nested)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !p.HasManifest() {
		t.Fatal("expected manifest")
	}
	if p.Root != root {
		t.Fatalf("root = %s, want %s", p.Root, root)
	}
	if p.Name() != "realm" {
		t.Fatalf("name = %q", p.Name())
	}
}

func TestSourceFilesSkipsAndSorts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), `
[project]
name = "realm"
exclude = ["drafts"]
`)
	writeFile(t, filepath.Join(root, "z.ww"), "")
	writeFile(t, filepath.Join(root, "a.ww"), "")
	writeFile(t, filepath.Join(root, "notes.txt"), "")
	writeFile(t, filepath.Join(root, "chapters", "b.ww"), "")
	writeFile(t, filepath.Join(root, ".git", "hidden.ww"), "")
	writeFile(t, filepath.Join(root, "node_modules", "dep.ww"), "")
	writeFile(t, filepath.Join(root, ".ww", "cache", "stale.ww"), "")
	writeFile(t, filepath.Join(root, "drafts", "old.ww"), "")

	p, err := Open(root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	files, err := p.SourceFiles()
	if err != nil {
		t.Fatalf("SourceFiles: %v", err)
	}
	want := []string{"a.ww", "chapters/b.ww", "z.ww"}
	if !slices.Equal(files, want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
}

func TestSourceFilesHonorsSourceDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), `
[project]
name = "realm"
sources = ["canon", "canon"]
`)
	writeFile(t, filepath.Join(root, "stray.ww"), "")
	writeFile(t, filepath.Join(root, "canon", "x.ww"), "")
	writeFile(t, filepath.Join(root, "canon", "deep", "y.ww"), "")

	p, err := Open(root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	files, err := p.SourceFiles()
	if err != nil {
		t.Fatalf("SourceFiles: %v", err)
	}
	want := []string{"canon/deep/y.ww", "canon/x.ww"}
	if !slices.Equal(files, want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
}

func TestLoadSnapshot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.ww"), "Kael is a character {\n}\n")
	writeFile(t, filepath.Join(root, "canon", "b.ww"), "world \"Realm\" {\n}\n")

	p, err := Open(root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	snap, diags, err := p.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(snap) != 2 {
		t.Fatalf("snapshot has %d files", len(snap))
	}
	if !strings.Contains(snap["a.ww"], "Kael") {
		t.Fatalf("a.ww content = %q", snap["a.ww"])
	}
	if !strings.Contains(snap["canon/b.ww"], "Realm") {
		t.Fatalf("canon/b.ww content = %q", snap["canon/b.ww"])
	}
}

func TestLoadSnapshotReportsUnreadableFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "good.ww"), "Kael is a character {\n}\n")
	if err := os.Symlink(filepath.Join(root, "gone"), filepath.Join(root, "bad.ww")); err != nil {
		t.Skipf("symlink not supported: %v", err)
	}

	p, err := Open(root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	snap, diags, err := p.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if _, ok := snap["good.ww"]; !ok {
		t.Fatal("good.ww missing from snapshot")
	}
	if _, ok := snap["bad.ww"]; ok {
		t.Fatal("bad.ww should not be in snapshot")
	}
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %v, want one IO error", diags)
	}
	if diags[0].Code != diag.IOLoadFileError {
		t.Fatalf("code = %v", diags[0].Code)
	}
	if !strings.Contains(diags[0].Message, "bad.ww") {
		t.Fatalf("message = %q", diags[0].Message)
	}
}
