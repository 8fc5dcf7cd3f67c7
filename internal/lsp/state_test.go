package lsp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tbsvttr/weltenwanderer2/internal/diag"
)

func writeWorkspace(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestOverlayReplacesDiskCopy(t *testing.T) {
	dir := writeWorkspace(t, map[string]string{
		"a.ww": "Kael is a character {\n}\n",
		"b.ww": "the Keep is a fortress {\n}\n",
	})

	ws := newWorkspaceState()
	ws.setRoot(dir)
	ws.openOverlay(filepath.Join(dir, "a.ww"), "Mira is a character {\n\tin the Keep\n}\n")

	a, err := ws.analysis(0)
	if err != nil {
		t.Fatalf("analysis: %v", err)
	}

	if got := len(a.Result.Files); got != 2 {
		t.Errorf("compiled %d files, want 2 (open document must not compile twice)", got)
	}
	for _, d := range a.Result.Bag.Items() {
		if d.Code == diag.SemDuplicateEntity {
			t.Errorf("spurious duplicate: %s", d.Message)
		}
	}

	w := a.Result.World
	if _, ok := w.Lookup("Mira"); !ok {
		t.Error("overlay content did not win over the disk copy")
	}
	if _, ok := w.Lookup("Kael"); ok {
		t.Error("stale disk content still in the compiled world")
	}

	// Files the client never opened stay reachable under the same keys.
	if a.File(filepath.Join(dir, "b.ww")) == nil {
		t.Error("closed file not indexed by absolute path")
	}
	if a.File(filepath.Join(dir, "a.ww")) == nil {
		t.Error("open file not indexed by absolute path")
	}
}

func TestOverlayForUnsavedFileJoinsWorkspace(t *testing.T) {
	dir := writeWorkspace(t, map[string]string{
		"a.ww": "the Keep is a fortress {\n}\n",
	})

	ws := newWorkspaceState()
	ws.setRoot(dir)
	ws.openOverlay(filepath.Join(dir, "new.ww"), "Mira is a character {\n\tin the Keep\n}\n")

	a, err := ws.analysis(0)
	if err != nil {
		t.Fatalf("analysis: %v", err)
	}
	if got := len(a.Result.Files); got != 2 {
		t.Fatalf("compiled %d files, want 2", got)
	}
	if a.Result.Bag.HasErrors() {
		t.Errorf("unexpected errors: %+v", a.Result.Bag.Items())
	}
	mira, ok := a.Result.World.Lookup("Mira")
	if !ok {
		t.Fatal("unsaved overlay missing from the world")
	}
	if len(a.Result.World.Outgoing(mira.ID)) != 1 {
		t.Error("overlay reference to a disk entity did not resolve")
	}

	ws.closeOverlay(filepath.Join(dir, "new.ww"))
	a, err = ws.analysis(0)
	if err != nil {
		t.Fatalf("analysis after close: %v", err)
	}
	if _, ok := a.Result.World.Lookup("Mira"); ok {
		t.Error("closed overlay still in the compiled world")
	}
}
