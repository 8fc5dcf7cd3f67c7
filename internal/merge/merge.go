// Package merge combines per-file parse trees into one program with a
// canonical declaration order.
//
// Files are ordered by path, declarations by position within their
// file. Later phases that resolve name collisions by "first wins"
// therefore produce the same result no matter in which order the files
// were parsed or handed in.
package merge

import (
	"slices"
	"strings"

	"github.com/tbsvttr/weltenwanderer2/internal/ast"
	"github.com/tbsvttr/weltenwanderer2/internal/source"
)

// SourceFile pairs one parsed file with its origin.
type SourceFile struct {
	Path string
	File source.FileID
	AST  *ast.File
}

// Decl is one declaration in canonical order, tagged with its origin.
// The pointer aliases the declaration inside the file's tree.
type Decl struct {
	Path string
	File source.FileID
	Decl *ast.Decl
}

// Program is the merged view of a workspace.
type Program struct {
	Files []SourceFile
	Decls []Decl
}

// Merge builds the canonical program from per-file trees. The input
// slice is not modified; files with a nil tree contribute nothing.
func Merge(files []SourceFile) *Program {
	sorted := slices.Clone(files)
	slices.SortStableFunc(sorted, func(a, b SourceFile) int {
		return strings.Compare(a.Path, b.Path)
	})
	p := &Program{Files: sorted}
	for _, sf := range sorted {
		if sf.AST == nil {
			continue
		}
		for i := range sf.AST.Decls {
			p.Decls = append(p.Decls, Decl{Path: sf.Path, File: sf.File, Decl: &sf.AST.Decls[i]})
		}
	}
	return p
}
