package resolve

import (
	"github.com/tbsvttr/weltenwanderer2/internal/ast"
	"github.com/tbsvttr/weltenwanderer2/internal/diag"
	"github.com/tbsvttr/weltenwanderer2/internal/source"
)

// resolveWorldMeta merges every world declaration in canonical order.
// Later declarations win; a changed title or property value is flagged
// so split metadata does not silently diverge across files.
func (r *resolver) resolveWorldMeta() (string, map[string]ast.Value) {
	title := ""
	var titleSpan source.Span
	haveTitle := false
	props := make(map[string]ast.Value)
	sites := make(map[string]source.Span)
	for _, d := range r.worlds {
		w := d.Decl.World
		if haveTitle && w.Title.Text != title {
			diag.ReportWarning(r.opts.Reporter, diag.SemWorldConflict, w.Title.Span,
				"world title conflicts with an earlier declaration").
				WithNote(titleSpan, "previously set here").
				Emit()
		}
		title = w.Title.Text
		titleSpan = w.Title.Span
		haveTitle = true
		r.collectWorldBody(w.Body, "", props, sites)
	}
	return title, props
}

func (r *resolver) collectWorldBody(body []ast.Stmt, prefix string, props map[string]ast.Value, sites map[string]source.Span) {
	for i := range body {
		st := &body[i]
		switch st.Kind {
		case ast.StmtProperty:
			if st.Property.Value.Kind == ast.ValueInvalid {
				continue
			}
			r.setWorldProperty(props, sites, joinKey(prefix, st.Property.Key.Text), st.Property.Value, st.Property.Key.Span)
		case ast.StmtBlock:
			r.collectWorldBody(st.Block.Body, joinKey(prefix, st.Block.Name.Text), props, sites)
		case ast.StmtDescription:
			v := ast.Value{Kind: ast.ValueString, Str: st.Description.Text, Span: st.Span}
			r.setWorldProperty(props, sites, joinKey(prefix, "description"), v, st.Span)
		default:
			diag.ReportWarning(r.opts.Reporter, diag.SemNestedClause, st.Span,
				"only properties and descriptions are allowed in a world declaration").Emit()
		}
	}
}

// setWorldProperty is last-write-wins across declarations. Rewriting a
// key with the same value is fine; a different value warns.
func (r *resolver) setWorldProperty(props map[string]ast.Value, sites map[string]source.Span, key string, v ast.Value, span source.Span) {
	if prev, ok := props[key]; ok && !sameValue(prev, v) {
		diag.ReportWarning(r.opts.Reporter, diag.SemWorldConflict, span,
			"world property \""+key+"\" conflicts with an earlier declaration").
			WithNote(sites[key], "previously set here").
			Emit()
	}
	props[key] = v
	sites[key] = span
}

func sameValue(a, b ast.Value) bool {
	return a.Kind == b.Kind && a.String() == b.String()
}
