package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/tbsvttr/weltenwanderer2/internal/ast"
	"github.com/tbsvttr/weltenwanderer2/internal/diag"
	"github.com/tbsvttr/weltenwanderer2/internal/source"
)

// diskSchemaVersion invalidates stored payloads when the format
// changes; bump it on any filePayload edit.
const diskSchemaVersion uint16 = 1

// DiskCache persists parse results keyed by content hash, so a fresh
// process skips re-parsing files any earlier run has seen. Payloads
// are self-validating: schema and hash mismatches read as misses.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache ensures dir exists and opens the cache in it.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(filepath.Join(dir, "files"), 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// DefaultCacheDir is where a project keeps its cache.
func DefaultCacheDir(root string) string {
	return filepath.Join(root, ".ww", "cache")
}

// filePayload is the stored form of one parsed file. Content is kept
// so a payload can be verified against its key without trusting the
// file name.
type filePayload struct {
	Schema  uint16
	Path    string
	Hash    [32]byte
	Content []byte
	AST     *ast.File
	Diags   []diag.Diagnostic
}

func (c *DiskCache) pathFor(hash [32]byte) string {
	return filepath.Join(c.dir, "files", hex.EncodeToString(hash[:])+".mp")
}

// store writes one payload atomically: encode to a temp file in the
// same directory, then rename over the final name.
func (c *DiskCache) store(path string, hash [32]byte, content []byte, tree *ast.File, diags []diag.Diagnostic) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	target := c.pathFor(hash)
	f, err := os.CreateTemp(filepath.Dir(target), "tmp-*")
	if err != nil {
		return err
	}
	payload := &filePayload{
		Schema:  diskSchemaVersion,
		Path:    path,
		Hash:    hash,
		Content: content,
		AST:     tree,
		Diags:   diags,
	}
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), target)
}

// load reads the payload for a content hash. Any failure, including a
// corrupt or stale payload, reads as a miss.
func (c *DiskCache) load(hash [32]byte) (*filePayload, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(hash))
	if err != nil {
		return nil, false
	}
	defer func() { _ = f.Close() }()

	var p filePayload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		return nil, false
	}
	if p.Schema != diskSchemaVersion || sha256.Sum256(p.Content) != hash {
		return nil, false
	}
	return &p, true
}

// DropAll removes every stored payload and leaves an empty cache
// behind, for explicit resets and schema migrations.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(filepath.Join(c.dir, "files"), 0o755)
}

// rebindDiags deep-copies stored diagnostics onto a fresh file
// version. Parse diagnostics only ever reference their own file, so
// the blanket rewrite is sound.
func rebindDiags(in []diag.Diagnostic, id source.FileID) []diag.Diagnostic {
	out := slices.Clone(in)
	for i := range out {
		d := &out[i]
		d.Primary.File = id
		d.Notes = slices.Clone(d.Notes)
		for j := range d.Notes {
			d.Notes[j].Span.File = id
		}
		d.Fixes = slices.Clone(d.Fixes)
		for j := range d.Fixes {
			edits := slices.Clone(d.Fixes[j].Edits)
			for k := range edits {
				edits[k].Span.File = id
			}
			d.Fixes[j].Edits = edits
		}
	}
	return out
}
