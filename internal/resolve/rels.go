package resolve

import (
	"fortio.org/safecast"

	"github.com/tbsvttr/weltenwanderer2/internal/ast"
	"github.com/tbsvttr/weltenwanderer2/internal/diag"
	"github.com/tbsvttr/weltenwanderer2/internal/source"
	"github.com/tbsvttr/weltenwanderer2/internal/world"
)

// resolveRelations resolves the annotations and top-level clauses of
// one declaration into edges. Edges always land on their source
// entity, which for the passive-voice clauses (`led by`, `owned by`)
// and for `involving` is the named entity, not the declaring one.
func (r *resolver) resolveRelations(e *world.Entity, decl *ast.EntityDecl) {
	for _, ann := range decl.Annotations {
		if t, ok := r.lookupTarget(ann.Target, guessKind(ann.Keyword)); ok {
			r.addEdge(e, t, ann.Keyword, "", ann.Span)
		}
	}
	for i := range decl.Body {
		st := &decl.Body[i]
		switch st.Kind {
		case ast.StmtRelation:
			for _, target := range st.Relation.Targets {
				if t, ok := r.lookupTarget(target, guessKind(st.Relation.Keyword)); ok {
					r.addEdge(e, t, st.Relation.Keyword, "", st.Span)
				}
			}
		case ast.StmtExit:
			if t, ok := r.lookupTarget(st.Exit.Target, "location"); ok {
				r.push(e, world.RelConnection, t, st.Exit.Direction.Text, st.Span)
			}
		}
	}
}

// addEdge maps a clause keyword to its edge. The passive-voice clauses
// invert: `F { led by X }` and `X (leader of F)` both produce the edge
// (X, leadership, F). `involving [A]` on an event E yields
// (A, participation, E) per participant.
func (r *resolver) addEdge(self, other *world.Entity, kw ast.RelKeyword, direction string, span source.Span) {
	switch kw {
	case ast.RelIn:
		r.push(self, world.RelContainment, other, direction, span)
	case ast.RelMemberOf:
		r.push(self, world.RelMembership, other, direction, span)
	case ast.RelLocatedAt:
		r.push(self, world.RelLocation, other, direction, span)
	case ast.RelAlliedWith:
		r.push(self, world.RelAlliance, other, direction, span)
	case ast.RelRivalOf:
		r.push(self, world.RelRivalry, other, direction, span)
	case ast.RelBasedAt:
		r.push(self, world.RelHeadquarters, other, direction, span)
	case ast.RelCausedBy:
		r.push(self, world.RelCausation, other, direction, span)
	case ast.RelReferences:
		r.push(self, world.RelReference, other, direction, span)
	case ast.RelOwnedBy:
		r.push(other, world.RelOwnership, self, direction, span)
	case ast.RelLedBy:
		r.push(other, world.RelLeadership, self, direction, span)
	case ast.RelInvolving:
		r.push(other, world.RelParticipation, self, direction, span)
	case ast.RelLeaderOf:
		r.push(self, world.RelLeadership, other, direction, span)
	case ast.RelOwnerOf:
		r.push(self, world.RelOwnership, other, direction, span)
	}
}

func (r *resolver) push(src *world.Entity, kind world.RelKind, target *world.Entity, direction string, span source.Span) {
	src.Relations = append(src.Relations, world.Relationship{
		Source:    src.ID,
		Kind:      kind,
		Target:    target.ID,
		Direction: direction,
		Span:      span,
	})
}

// lookupTarget resolves a referenced name. An unknown name is reported
// with a ready-made fix that appends a stub declaration of the guessed
// kind to the referencing file; the edge is omitted rather than left
// dangling.
func (r *resolver) lookupTarget(name ast.Name, guessedKind string) (*world.Entity, bool) {
	if e, ok := r.byName[world.Normalize(name.Text)]; ok {
		return e, true
	}
	b := diag.ReportError(r.opts.Reporter, diag.SemUndefinedEntity, name.Span,
		"undefined entity: \""+name.Text+"\"")
	if file := r.fs.Get(name.Span.File); file != nil {
		if end, err := safecast.Conv[uint32](len(file.Content)); err == nil {
			b.WithFix("create stub "+guessedKind+" \""+name.Text+"\"", diag.FixEdit{
				Span:    source.Span{File: file.ID, Start: end, End: end},
				NewText: "\n" + name.Text + " is a " + guessedKind + " {\n}\n",
			})
		}
	}
	b.Emit()
	return nil, false
}

// guessKind picks the stub kind for an unresolved target from the
// clause that referenced it.
func guessKind(kw ast.RelKeyword) string {
	switch kw {
	case ast.RelIn, ast.RelLocatedAt, ast.RelBasedAt:
		return "location"
	case ast.RelMemberOf, ast.RelLeaderOf:
		return "faction"
	case ast.RelOwnerOf:
		return "item"
	}
	return "character"
}
