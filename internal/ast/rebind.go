package ast

import (
	"github.com/tbsvttr/weltenwanderer2/internal/source"
)

// Rebind rewrites every span in the file to reference id. The incremental
// cache uses it when reattaching stored declarations to a freshly added
// file version whose content is byte-identical.
func (f *File) Rebind(id source.FileID) {
	for i := range f.Decls {
		rebindDecl(&f.Decls[i], id)
	}
}

func rebindDecl(d *Decl, id source.FileID) {
	d.Span.File = id
	switch d.Kind {
	case DeclWorld:
		if d.World != nil {
			d.World.Title.Span.File = id
			rebindStmts(d.World.Body, id)
		}
	case DeclEntity:
		if d.Entity != nil {
			e := d.Entity
			e.Name.Span.File = id
			e.Kind.Span.File = id
			for i := range e.Annotations {
				e.Annotations[i].Span.File = id
				e.Annotations[i].Target.Span.File = id
			}
			rebindStmts(e.Body, id)
		}
	}
}

func rebindStmts(body []Stmt, id source.FileID) {
	for i := range body {
		st := &body[i]
		st.Span.File = id
		switch st.Kind {
		case StmtProperty:
			if st.Property != nil {
				st.Property.Key.Span.File = id
				rebindValue(&st.Property.Value, id)
			}
		case StmtRelation:
			if st.Relation != nil {
				st.Relation.KeywordSpan.File = id
				for j := range st.Relation.Targets {
					st.Relation.Targets[j].Span.File = id
				}
			}
		case StmtExit:
			if st.Exit != nil {
				st.Exit.Direction.Span.File = id
				st.Exit.Target.Span.File = id
			}
		case StmtDate:
			if st.Date != nil {
				for j := range st.Date.Fields {
					st.Date.Fields[j].Key.Span.File = id
					st.Date.Fields[j].Span.File = id
				}
			}
		case StmtBlock:
			if st.Block != nil {
				st.Block.Name.Span.File = id
				rebindStmts(st.Block.Body, id)
			}
		}
	}
}

func rebindValue(v *Value, id source.FileID) {
	v.Span.File = id
	for i := range v.List {
		rebindValue(&v.List[i], id)
	}
}
