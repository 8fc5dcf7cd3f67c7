package driver

import (
	"context"
	"runtime"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"github.com/tbsvttr/weltenwanderer2/internal/ast"
	"github.com/tbsvttr/weltenwanderer2/internal/diag"
	"github.com/tbsvttr/weltenwanderer2/internal/parser"
	"github.com/tbsvttr/weltenwanderer2/internal/source"
)

type parseJob struct {
	path string
	file *source.File
}

type parsedFile struct {
	tree  *ast.File
	diags []diag.Diagnostic
}

// parseAll parses the jobs on a bounded worker pool. Each worker owns
// its result slot, so no locking is needed; onDone fires as files
// finish, in completion order.
func parseAll(ctx context.Context, jobs []parseJob, maxDiagnostics, workers int, onDone func(path string)) ([]parsedFile, error) {
	if len(jobs) == 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, err
	}

	results := make([]parsedFile, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(workers, len(jobs)))
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			bag := diag.NewBag(maxDiagnostics)
			tree := parser.Parse(job.file, parser.Options{
				Reporter:  diag.BagReporter{Bag: bag},
				MaxErrors: maxErrors,
			})
			results[i] = parsedFile{tree: tree, diags: bag.Items()}
			if onDone != nil {
				onDone(job.path)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
