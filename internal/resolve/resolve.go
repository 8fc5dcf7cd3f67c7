// Package resolve turns the merged program into a world model: it
// registers entity names, flattens declaration bodies, resolves
// relationship targets and assembles the world metadata.
//
// Name matching is article-insensitive and case-insensitive (see
// world.Normalize). Colliding declarations keep the first one in
// canonical order; because the merger sorts files by path, "first" is
// stable no matter how the workspace was handed in.
package resolve

import (
	"github.com/tbsvttr/weltenwanderer2/internal/ast"
	"github.com/tbsvttr/weltenwanderer2/internal/diag"
	"github.com/tbsvttr/weltenwanderer2/internal/merge"
	"github.com/tbsvttr/weltenwanderer2/internal/source"
	"github.com/tbsvttr/weltenwanderer2/internal/world"
)

type Options struct {
	Reporter diag.Reporter
}

type resolver struct {
	fs   *source.FileSet
	opts Options

	entities []*world.Entity
	decls    []merge.Decl // winning declaration per entity, aligned by ID
	byName   map[string]*world.Entity
	worlds   []merge.Decl
}

// Resolve builds the world from the merged program. Diagnostics go
// through opts.Reporter; the model is returned best-effort even when
// errors were reported, so read-only tooling keeps working.
func Resolve(program *merge.Program, fs *source.FileSet, opts Options) *world.World {
	r := &resolver{fs: fs, opts: opts, byName: make(map[string]*world.Entity)}
	r.register(program)
	for i, e := range r.entities {
		r.resolveBody(e, r.decls[i].Decl.Entity)
	}
	for i, e := range r.entities {
		r.resolveRelations(e, r.decls[i].Decl.Entity)
	}
	title, props := r.resolveWorldMeta()
	return world.New(title, props, r.entities)
}

// register assigns entity IDs in canonical order. A name that is
// already taken keeps its first declaration; the later one is reported
// and dropped.
func (r *resolver) register(program *merge.Program) {
	for _, d := range program.Decls {
		switch d.Decl.Kind {
		case ast.DeclWorld:
			r.worlds = append(r.worlds, d)
		case ast.DeclEntity:
			ent := d.Decl.Entity
			key := world.Normalize(ent.Name.Text)
			if prev, taken := r.byName[key]; taken {
				diag.ReportError(r.opts.Reporter, diag.SemDuplicateEntity, ent.Name.Span,
					"entity already exists: \""+ent.Name.Text+"\"").
					WithNote(prev.NameSpan, "first defined here").
					Emit()
				continue
			}
			kind, subtype := world.ClassifyKind(ent.Kind.Text)
			e := &world.Entity{
				ID:         world.EntityID(len(r.entities)),
				Name:       ent.Name.Text,
				Kind:       kind,
				Subtype:    subtype,
				Properties: make(map[string]ast.Value),
				Path:       d.Path,
				DeclSpan:   d.Decl.Span,
				NameSpan:   ent.Name.Span,
			}
			if kind == world.KindCustom {
				e.CustomKind = ent.Kind.Text
			}
			r.entities = append(r.entities, e)
			r.decls = append(r.decls, d)
			r.byName[key] = e
		}
	}
}
