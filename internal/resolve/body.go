package resolve

import (
	"strconv"

	"github.com/tbsvttr/weltenwanderer2/internal/ast"
	"github.com/tbsvttr/weltenwanderer2/internal/diag"
	"github.com/tbsvttr/weltenwanderer2/internal/source"
	"github.com/tbsvttr/weltenwanderer2/internal/world"
)

// resolveBody flattens one declaration body onto the entity:
// properties (nested blocks become dotted keys), the description, tags
// and the date. Relationship and exit clauses are handled by the
// relations pass; inside nested blocks they are ignored with a warning.
func (r *resolver) resolveBody(e *world.Entity, decl *ast.EntityDecl) {
	sites := make(map[string]source.Span)
	described := false
	r.collectBody(e, decl.Body, "", sites, &described)
	r.extractTags(e)
}

func (r *resolver) collectBody(e *world.Entity, body []ast.Stmt, prefix string, sites map[string]source.Span, described *bool) {
	for i := range body {
		st := &body[i]
		switch st.Kind {
		case ast.StmtProperty:
			if st.Property.Value.Kind == ast.ValueInvalid {
				continue // the lexer already reported the broken literal
			}
			r.setProperty(e, joinKey(prefix, st.Property.Key.Text), st.Property.Value, st.Property.Key.Span, sites)
		case ast.StmtBlock:
			r.collectBody(e, st.Block.Body, joinKey(prefix, st.Block.Name.Text), sites, described)
		case ast.StmtDescription:
			if prefix != "" {
				// A block description becomes a dotted property.
				v := ast.Value{Kind: ast.ValueString, Str: st.Description.Text, Span: st.Span}
				r.setProperty(e, prefix+".description", v, st.Span, sites)
				continue
			}
			if !*described {
				*described = true
				e.Description = st.Description.Text
			}
			// Later descriptions were already flagged by the parser.
		case ast.StmtDate:
			if prefix != "" {
				diag.ReportWarning(r.opts.Reporter, diag.SemNestedClause, st.Span,
					"dates are ignored inside nested blocks").Emit()
				continue
			}
			r.resolveDate(e, st)
		case ast.StmtRelation:
			if prefix != "" {
				diag.ReportWarning(r.opts.Reporter, diag.SemNestedClause, st.Span,
					"relationship clauses are ignored inside nested blocks").Emit()
			}
		case ast.StmtExit:
			if prefix != "" {
				diag.ReportWarning(r.opts.Reporter, diag.SemNestedClause, st.Span,
					"exits are ignored inside nested blocks").Emit()
			}
		}
	}
}

// setProperty stores the value under key, last write winning. The
// warning sits on the earlier occurrence and points forward, so a
// reader lands on the line whose value is dead.
func (r *resolver) setProperty(e *world.Entity, key string, v ast.Value, keySpan source.Span, sites map[string]source.Span) {
	if prev, dup := sites[key]; dup {
		diag.ReportWarning(r.opts.Reporter, diag.SemDuplicateProperty, prev,
			"property \""+key+"\" is set more than once").
			WithNote(keySpan, "overwritten here").
			Emit()
	}
	sites[key] = keySpan
	e.Properties[key] = v
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// resolveDate builds the entity date from one date statement. Fields
// repeat last-wins; a repeated date statement replaces the earlier one
// entirely. Year is required; month and day outside their calendar
// range are dropped with a warning.
func (r *resolver) resolveDate(e *world.Entity, st *ast.Stmt) {
	fields := make(map[string]ast.DateField, len(st.Date.Fields))
	for _, f := range st.Date.Fields {
		fields[f.Key.Text] = f
	}
	yf, ok := fields["year"]
	if !ok {
		diag.ReportError(r.opts.Reporter, diag.SemMissingDateYear, st.Span,
			"date requires a year field").Emit()
		e.Date = nil
		return
	}
	d := &world.Date{Year: yf.Int}
	if mf, ok := fields["month"]; ok {
		if mf.Int < 1 || mf.Int > 12 {
			diag.ReportWarning(r.opts.Reporter, diag.SemDateFieldRange, mf.Span,
				"month "+strconv.FormatInt(mf.Int, 10)+" is out of range [1, 12]").Emit()
		} else {
			d.Month = int32(mf.Int)
		}
	}
	if df, ok := fields["day"]; ok {
		if df.Int < 1 || df.Int > 31 {
			diag.ReportWarning(r.opts.Reporter, diag.SemDateFieldRange, df.Span,
				"day "+strconv.FormatInt(df.Int, 10)+" is out of range [1, 31]").Emit()
		} else {
			d.Day = int32(df.Int)
		}
	}
	if ef, ok := fields["era"]; ok {
		d.Era = ef.Str
	}
	e.Date = d
}

// extractTags derives the tag list from the `tags` property. A single
// value counts as one tag; the property itself stays visible.
func (r *resolver) extractTags(e *world.Entity) {
	v, ok := e.Properties["tags"]
	if !ok {
		return
	}
	if v.Kind == ast.ValueList {
		for _, item := range v.List {
			if s := item.String(); s != "" {
				e.Tags = append(e.Tags, s)
			}
		}
		return
	}
	if s := v.String(); s != "" {
		e.Tags = []string{s}
	}
}
