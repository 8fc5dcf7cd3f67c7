package merge_test

import (
	"testing"

	"github.com/tbsvttr/weltenwanderer2/internal/ast"
	"github.com/tbsvttr/weltenwanderer2/internal/diag"
	"github.com/tbsvttr/weltenwanderer2/internal/merge"
	"github.com/tbsvttr/weltenwanderer2/internal/parser"
	"github.com/tbsvttr/weltenwanderer2/internal/source"
)

func parseOne(t *testing.T, fs *source.FileSet, path, text string) merge.SourceFile {
	t.Helper()
	id := fs.AddText(path, text)
	bag := diag.NewBag(16)
	f := parser.Parse(fs.Get(id), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		t.Fatalf("%s: %+v", path, bag.Items())
	}
	return merge.SourceFile{Path: path, File: id, AST: f}
}

func declNames(p *merge.Program) []string {
	names := make([]string, 0, len(p.Decls))
	for _, d := range p.Decls {
		switch d.Decl.Kind {
		case ast.DeclEntity:
			names = append(names, d.Decl.Entity.Name.Text)
		case ast.DeclWorld:
			names = append(names, "world:"+d.Decl.World.Title.Text)
		}
	}
	return names
}

func TestMergeOrdersByPath(t *testing.T) {
	fs := source.NewFileSet()
	b := parseOne(t, fs, "b.ww", "Mira is a character {\n}\nthe Keep is a fortress {\n}\n")
	a := parseOne(t, fs, "a.ww", "Kael is a character {\n}\n")

	p := merge.Merge([]merge.SourceFile{b, a})
	want := []string{"Kael", "Mira", "the Keep"}
	got := declNames(p)
	if len(got) != len(want) {
		t.Fatalf("decls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("decls = %v, want %v", got, want)
		}
	}
	if p.Files[0].Path != "a.ww" || p.Files[1].Path != "b.ww" {
		t.Errorf("files = %v", p.Files)
	}
}

func TestMergeIsOrderIndependent(t *testing.T) {
	fs := source.NewFileSet()
	a := parseOne(t, fs, "a.ww", "Kael is a character {\n}\n")
	b := parseOne(t, fs, "b.ww", "Mira is a character {\n}\n")
	c := parseOne(t, fs, "c.ww", "world \"Realm\" {\n}\n")

	first := declNames(merge.Merge([]merge.SourceFile{a, b, c}))
	second := declNames(merge.Merge([]merge.SourceFile{c, b, a}))
	third := declNames(merge.Merge([]merge.SourceFile{b, c, a}))
	for i := range first {
		if first[i] != second[i] || first[i] != third[i] {
			t.Fatalf("orders differ: %v / %v / %v", first, second, third)
		}
	}
}

func TestMergeKeepsOrigins(t *testing.T) {
	fs := source.NewFileSet()
	a := parseOne(t, fs, "a.ww", "Kael is a character {\n}\n")
	b := parseOne(t, fs, "b.ww", "Mira is a character {\n}\n")
	p := merge.Merge([]merge.SourceFile{b, a})
	if p.Decls[0].Path != "a.ww" || p.Decls[0].File != a.File {
		t.Errorf("decl 0 origin = %s/%d", p.Decls[0].Path, p.Decls[0].File)
	}
	if p.Decls[1].Path != "b.ww" || p.Decls[1].File != b.File {
		t.Errorf("decl 1 origin = %s/%d", p.Decls[1].Path, p.Decls[1].File)
	}
	// The merged declaration aliases the tree, not a copy.
	if p.Decls[0].Decl != &a.AST.Decls[0] {
		t.Error("merged declaration is not aliased into the source tree")
	}
}

func TestMergeSkipsNilTrees(t *testing.T) {
	p := merge.Merge([]merge.SourceFile{{Path: "a.ww"}, {Path: "b.ww"}})
	if len(p.Decls) != 0 || len(p.Files) != 2 {
		t.Errorf("program = %+v", p)
	}
}
