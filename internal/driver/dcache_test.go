package driver

import (
	"os"
	"testing"
)

func storedParse(t *testing.T, text string) *ParseResult {
	t.Helper()
	r, err := ParseText("entry.ww", text, 32)
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	return r
}

func TestDiskCacheRoundTrip(t *testing.T) {
	dc, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	r := storedParse(t, "Kael is a character {\n\tage 30\n}\n")
	if err := dc.store("entry.ww", r.File.Hash, r.File.Content, r.AST, r.Bag.Items()); err != nil {
		t.Fatalf("store: %v", err)
	}

	p, ok := dc.load(r.File.Hash)
	if !ok {
		t.Fatal("stored payload did not load")
	}
	if p.Schema != diskSchemaVersion || p.Path != "entry.ww" {
		t.Errorf("payload header = %d %q", p.Schema, p.Path)
	}
	if len(p.AST.Decls) != 1 {
		t.Errorf("restored %d declarations, want 1", len(p.AST.Decls))
	}
	if p.AST.Decls[0].Entity.Name.Text != "Kael" {
		t.Errorf("restored name = %q", p.AST.Decls[0].Entity.Name.Text)
	}

	var other [32]byte
	other[0] = 1
	if _, ok := dc.load(other); ok {
		t.Error("unknown hash should miss")
	}
}

func TestDiskCacheRejectsCorruptPayload(t *testing.T) {
	dc, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	r := storedParse(t, "Kael is a character {\n}\n")
	if err := dc.store("entry.ww", r.File.Hash, r.File.Content, r.AST, nil); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := os.WriteFile(dc.pathFor(r.File.Hash), []byte("not msgpack"), 0o644); err != nil {
		t.Fatalf("corrupt: %v", err)
	}
	if _, ok := dc.load(r.File.Hash); ok {
		t.Error("corrupt payload should read as a miss")
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	dc, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	r := storedParse(t, "Kael is a character {\n}\n")
	if err := dc.store("entry.ww", r.File.Hash, r.File.Content, r.AST, nil); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := dc.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if _, ok := dc.load(r.File.Hash); ok {
		t.Error("payload survived DropAll")
	}
	// The cache stays usable after a reset.
	if err := dc.store("entry.ww", r.File.Hash, r.File.Content, r.AST, nil); err != nil {
		t.Fatalf("store after DropAll: %v", err)
	}
	if _, ok := dc.load(r.File.Hash); !ok {
		t.Error("store after DropAll did not take")
	}
}

func TestRebindDiagsRewritesEverySpan(t *testing.T) {
	r := storedParse(t, "Kael is a character {\n\t[ broken\n}\n")
	in := r.Bag.Items()
	if len(in) == 0 {
		t.Fatal("fixture produced no diagnostics")
	}
	out := rebindDiags(in, 7)
	for _, d := range out {
		if d.Primary.File != 7 {
			t.Errorf("primary not rebound: %+v", d.Primary)
		}
		for _, n := range d.Notes {
			if n.Span.File != 7 {
				t.Errorf("note not rebound: %+v", n)
			}
		}
		for _, fx := range d.Fixes {
			for _, e := range fx.Edits {
				if e.Span.File != 7 {
					t.Errorf("fix edit not rebound: %+v", e)
				}
			}
		}
	}
	// The originals keep their binding; restore must not alias.
	for _, d := range in {
		if d.Primary.File == 7 {
			t.Error("rebind mutated the stored diagnostics")
		}
	}
}
