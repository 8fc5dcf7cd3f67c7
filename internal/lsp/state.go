package lsp

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/tbsvttr/weltenwanderer2/internal/driver"
	"github.com/tbsvttr/weltenwanderer2/internal/project"
)

// workspaceState holds the server's compile state: the workspace root,
// editor overlays and the incremental cache. All access goes through
// the server's mutex.
type workspaceState struct {
	root     string
	overlays map[string]string // abs path -> unsaved editor content
	cache    *driver.Cache
	current  *Analysis // nil or stale when dirty
	dirty    bool
}

func newWorkspaceState() *workspaceState {
	return &workspaceState{
		overlays: make(map[string]string),
		cache:    driver.NewCache(nil),
		dirty:    true,
	}
}

func (ws *workspaceState) setRoot(root string) {
	ws.root = root
	ws.dirty = true
}

func (ws *workspaceState) openOverlay(path, text string) {
	ws.overlays[path] = text
	ws.dirty = true
}

func (ws *workspaceState) closeOverlay(path string) {
	delete(ws.overlays, path)
	ws.dirty = true
}

// snapshot assembles path -> content for the whole workspace: source
// files from disk with open documents overriding, plus overlays that
// have no on-disk counterpart yet. Everything is keyed by absolute
// path: the project layer hands out root-relative keys while overlay
// paths arrive absolute from the client, and only one key space lets
// an open document override its disk copy instead of compiling twice.
func (ws *workspaceState) snapshot() driver.Snapshot {
	snap := make(driver.Snapshot)
	if ws.root != "" {
		if proj, err := project.Open(ws.root); err == nil {
			if disk, _, err := proj.LoadSnapshot(); err == nil {
				for rel, content := range disk {
					snap[filepath.Join(proj.Root, filepath.FromSlash(rel))] = content
				}
			}
		}
	}
	for path, text := range ws.overlays {
		if !strings.HasSuffix(path, ".ww") {
			continue
		}
		snap[path] = text
	}
	return snap
}

// analysis recompiles when dirty and returns the navigation index.
func (ws *workspaceState) analysis(maxDiagnostics int) (*Analysis, error) {
	if !ws.dirty && ws.current != nil {
		return ws.current, nil
	}
	res, err := ws.cache.Compile(context.Background(), ws.snapshot(), driver.Options{
		MaxDiagnostics: maxDiagnostics,
	})
	if err != nil {
		return nil, err
	}
	ws.current = Analyze(res)
	ws.dirty = false
	return ws.current, nil
}

// diskRoot guesses a workspace root for a loose file when the client
// did not hand one over.
func diskRoot(path string) string {
	dir := filepath.Dir(path)
	if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
		return dir
	}
	return ""
}
