package lsp

import (
	"slices"

	"github.com/tbsvttr/weltenwanderer2/internal/ast"
	"github.com/tbsvttr/weltenwanderer2/internal/driver"
	"github.com/tbsvttr/weltenwanderer2/internal/source"
	"github.com/tbsvttr/weltenwanderer2/internal/world"
)

// Occurrence is one place in the workspace where an entity name is
// written: its defining declaration or a reference target.
type Occurrence struct {
	Path string
	Span source.Span
	Raw  string // name text as written, annotations excluded

	// Entity is the resolved entity, nil when the name is undefined.
	Entity *world.Entity
	// Definition marks the winning declaration's name.
	Definition bool
}

// Analysis is the navigation index over one compile result. It is
// immutable after Analyze and safe for concurrent reads.
type Analysis struct {
	Result *driver.Result

	byPath map[string][]Occurrence
	files  map[string]*source.File
	defs   map[world.EntityID]Occurrence
	refs   map[world.EntityID][]Occurrence
}

// Analyze builds the navigation index from a compile result.
func Analyze(res *driver.Result) *Analysis {
	a := &Analysis{
		Result: res,
		byPath: make(map[string][]Occurrence),
		files:  make(map[string]*source.File),
		defs:   make(map[world.EntityID]Occurrence),
		refs:   make(map[world.EntityID][]Occurrence),
	}
	for _, fr := range res.Files {
		a.files[fr.Path] = res.FileSet.Get(fr.FileID)
	}
	for _, d := range res.Program.Decls {
		if d.Decl.Kind != ast.DeclEntity || d.Decl.Entity == nil {
			continue
		}
		ent := d.Decl.Entity
		a.addName(d.Path, ent.Name, true)
		for _, ann := range ent.Annotations {
			a.addName(d.Path, ann.Target, false)
		}
		ast.WalkStmts(ent.Body, func(st *ast.Stmt) bool {
			switch st.Kind {
			case ast.StmtRelation:
				for _, t := range st.Relation.Targets {
					a.addName(d.Path, t, false)
				}
			case ast.StmtExit:
				a.addName(d.Path, st.Exit.Target, false)
			}
			return true
		})
	}
	for path := range a.byPath {
		slices.SortStableFunc(a.byPath[path], func(x, y Occurrence) int {
			return int(x.Span.Start) - int(y.Span.Start)
		})
	}
	return a
}

// addName records one written name. asDecl marks declaration-name
// positions; only the declaration that won resolution counts as the
// definition, a dropped duplicate indexes as a plain reference to the
// winner.
func (a *Analysis) addName(path string, name ast.Name, asDecl bool) {
	if name.Text == "" {
		return
	}
	occ := Occurrence{Path: path, Span: name.Span, Raw: name.Text}
	if e, ok := a.Result.World.Lookup(name.Text); ok {
		occ.Entity = e
		occ.Definition = asDecl && e.NameSpan == name.Span
	}
	a.byPath[path] = append(a.byPath[path], occ)
	if occ.Entity == nil {
		return
	}
	if occ.Definition {
		a.defs[occ.Entity.ID] = occ
	} else {
		a.refs[occ.Entity.ID] = append(a.refs[occ.Entity.ID], occ)
	}
}

// File returns the compiled file for a path, or nil.
func (a *Analysis) File(path string) *source.File { return a.files[path] }

// Occurrences returns every indexed name in the file, ordered by
// position.
func (a *Analysis) Occurrences(path string) []Occurrence { return a.byPath[path] }

// At finds the occurrence covering the byte offset. The end offset of
// a name still counts as inside, so a cursor right behind the last
// character hits.
func (a *Analysis) At(path string, off uint32) (Occurrence, bool) {
	for _, occ := range a.byPath[path] {
		if occ.Span.Contains(off) || occ.Span.End == off {
			return occ, true
		}
	}
	return Occurrence{}, false
}

// Definition returns the defining occurrence of an entity.
func (a *Analysis) Definition(e *world.Entity) (Occurrence, bool) {
	occ, ok := a.defs[e.ID]
	return occ, ok
}

// References returns every reference to the entity, optionally with
// the definition in front.
func (a *Analysis) References(e *world.Entity, includeDefinition bool) []Occurrence {
	var out []Occurrence
	if includeDefinition {
		if def, ok := a.defs[e.ID]; ok {
			out = append(out, def)
		}
	}
	return append(out, a.refs[e.ID]...)
}
