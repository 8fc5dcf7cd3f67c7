package driver

import (
	"context"
	"crypto/sha256"
	"fmt"
	"maps"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/tbsvttr/weltenwanderer2/internal/ast"
	"github.com/tbsvttr/weltenwanderer2/internal/diag"
	"github.com/tbsvttr/weltenwanderer2/internal/merge"
	"github.com/tbsvttr/weltenwanderer2/internal/resolve"
	"github.com/tbsvttr/weltenwanderer2/internal/source"
)

// entry is one cached parse, pinned to the file version it was made
// against. The FileSet keeps old versions addressable, so the spans in
// the tree and its diagnostics stay valid across later edits.
type entry struct {
	hash   [32]byte
	fileID source.FileID
	tree   *ast.File
	diags  []diag.Diagnostic
}

// Stats counts cache behavior over a Cache's lifetime.
type Stats struct {
	Parses   map[string]int // parse count per path
	Hits     int            // unchanged files served from memory
	DiskHits int            // unchanged files restored from the disk cache
	Misses   int            // files that had to be parsed
	Evicted  int            // entries dropped when their file left the snapshot
}

// Cache reuses per-file parses across Compile calls. Merging and
// resolution always run in full; only parsing is incremental, keyed by
// the content fingerprint of each file.
type Cache struct {
	mu      sync.Mutex
	fs      *source.FileSet
	entries map[string]*entry
	stats   Stats
	disk    *DiskCache
}

// NewCache creates an empty cache. disk may be nil for memory-only use.
func NewCache(disk *DiskCache) *Cache {
	return &Cache{
		fs:      source.NewFileSet(),
		entries: make(map[string]*entry),
		stats:   Stats{Parses: make(map[string]int)},
		disk:    disk,
	}
}

// FileSet returns the cache's long-lived FileSet. Spans from any
// compile Result resolve against it.
func (c *Cache) FileSet() *source.FileSet { return c.fs }

// Stats returns a copy of the counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Parses = maps.Clone(c.stats.Parses)
	return s
}

// Compile brings the cache up to date with the snapshot and builds the
// world. Files whose fingerprint is unchanged are not re-parsed.
func (c *Cache) Compile(ctx context.Context, snap Snapshot, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	begin := func(name string) int {
		if opts.Timer == nil {
			return -1
		}
		return opts.Timer.Begin(name)
	}
	end := func(idx int, note string) {
		if opts.Timer != nil {
			opts.Timer.End(idx, note)
		}
	}

	paths := make([]string, 0, len(snap))
	for path := range snap {
		paths = append(paths, path)
	}
	slices.Sort(paths)

	for path := range c.entries {
		if _, live := snap[path]; !live {
			delete(c.entries, path)
			c.stats.Evicted++
		}
	}

	total := len(paths)
	reused := 0
	diskHits := 0

	fpIdx := begin("fingerprint")
	type pending struct {
		path string
		id   source.FileID
		sum  [32]byte
	}
	var misses []pending
	for _, path := range paths {
		content, flags := source.NormalizeSource([]byte(snap[path]))
		sum := sha256.Sum256(content)
		if e, ok := c.entries[path]; ok && e.hash == sum {
			c.stats.Hits++
			reused++
			if opts.Progress != nil {
				opts.Progress(path, true, reused, total)
			}
			continue
		}
		id := c.fs.Add(path, content, flags)
		if c.restoreFromDisk(path, id, sum) {
			c.stats.DiskHits++
			reused++
			diskHits++
			if opts.Progress != nil {
				opts.Progress(path, true, reused, total)
			}
			continue
		}
		misses = append(misses, pending{path: path, id: id, sum: sum})
	}
	end(fpIdx, fmt.Sprintf("files=%d", total))

	parseIdx := begin("parse")
	var done atomic.Int64
	done.Store(int64(reused))
	jobs := make([]parseJob, len(misses))
	for i, m := range misses {
		jobs[i] = parseJob{path: m.path, file: c.fs.Get(m.id)}
	}
	parsed, err := parseAll(ctx, jobs, opts.maxDiagnostics(), opts.Jobs, func(path string) {
		if opts.Progress != nil {
			opts.Progress(path, false, int(done.Add(1)), total)
		}
	})
	if err != nil {
		end(parseIdx, "cancelled")
		return nil, err
	}
	missSet := make(map[string]bool, len(misses))
	for i, m := range misses {
		e := &entry{hash: m.sum, fileID: m.id, tree: parsed[i].tree, diags: parsed[i].diags}
		c.entries[m.path] = e
		c.stats.Misses++
		c.stats.Parses[m.path]++
		missSet[m.path] = true
		if c.disk != nil {
			_ = c.disk.store(m.path, m.sum, c.fs.Get(m.id).Content, e.tree, e.diags)
		}
	}
	end(parseIdx, fmt.Sprintf("parsed=%d reused=%d disk=%d", len(misses), reused, diskHits))

	mergeIdx := begin("merge")
	res := &Result{FileSet: c.fs}
	bag := diag.NewBag(opts.maxDiagnostics())
	sources := make([]merge.SourceFile, 0, len(paths))
	for _, path := range paths {
		e := c.entries[path]
		if e == nil {
			continue
		}
		res.Files = append(res.Files, FileResult{
			Path:   path,
			FileID: e.fileID,
			AST:    e.tree,
			Diags:  e.diags,
			Cached: !missSet[path],
		})
		for _, d := range e.diags {
			bag.Add(d)
		}
		sources = append(sources, merge.SourceFile{Path: path, File: e.fileID, AST: e.tree})
	}
	res.Program = merge.Merge(sources)
	end(mergeIdx, fmt.Sprintf("decls=%d", len(res.Program.Decls)))

	resolveIdx := begin("resolve")
	res.World = resolve.Resolve(res.Program, c.fs, resolve.Options{Reporter: diag.BagReporter{Bag: bag}})
	res.Bag = bag
	end(resolveIdx, fmt.Sprintf("entities=%d diags=%d", res.World.Len(), bag.Len()))
	return res, nil
}

// restoreFromDisk revives a parse from the disk cache onto the freshly
// added file version.
func (c *Cache) restoreFromDisk(path string, id source.FileID, sum [32]byte) bool {
	if c.disk == nil {
		return false
	}
	p, ok := c.disk.load(sum)
	if !ok || p.AST == nil {
		return false
	}
	p.AST.Rebind(id)
	c.entries[path] = &entry{
		hash:   sum,
		fileID: id,
		tree:   p.AST,
		diags:  rebindDiags(p.Diags, id),
	}
	return true
}
