package driver

import (
	"context"

	"github.com/tbsvttr/weltenwanderer2/internal/ast"
	"github.com/tbsvttr/weltenwanderer2/internal/diag"
	"github.com/tbsvttr/weltenwanderer2/internal/merge"
	"github.com/tbsvttr/weltenwanderer2/internal/observ"
	"github.com/tbsvttr/weltenwanderer2/internal/source"
	"github.com/tbsvttr/weltenwanderer2/internal/world"
)

// Snapshot is the workspace content to compile, path to source text.
// Paths are used as-is for ordering and reporting; the project layer
// decides how they are spelled.
type Snapshot map[string]string

// Options configures one compile run.
type Options struct {
	// MaxDiagnostics caps both each file's parse findings and the
	// final bag. Zero or negative selects DefaultMaxDiagnostics.
	MaxDiagnostics int

	// Jobs limits parallel parses; zero or negative uses GOMAXPROCS.
	Jobs int

	// Timer, when set, records the pipeline phases.
	Timer *observ.Timer

	// Progress, when set, is called once per snapshot file as its
	// parse (or cache hit) completes. Called from worker goroutines;
	// the callback must be safe for concurrent use.
	Progress func(path string, cached bool, done, total int)
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

// FileResult is the per-file outcome of a compile run.
type FileResult struct {
	Path   string
	FileID source.FileID
	AST    *ast.File
	Diags  []diag.Diagnostic
	Cached bool // true when the parse was reused from the cache
}

// Result is a fully compiled snapshot.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult // canonical (path) order
	Program *merge.Program
	World   *world.World

	// Bag holds every finding of the run: replayed parse diagnostics
	// in canonical file order, then resolution diagnostics.
	Bag *diag.Bag
}

// Compile builds a snapshot from scratch, without reuse across calls.
func Compile(ctx context.Context, snap Snapshot, opts Options) (*Result, error) {
	return NewCache(nil).Compile(ctx, snap, opts)
}
