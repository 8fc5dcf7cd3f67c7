package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tbsvttr/weltenwanderer2/internal/ast"
)

// FormatDeclsPretty writes the parsed declarations as an indented tree.
func FormatDeclsPretty(w io.Writer, file *ast.File) error {
	if file == nil || len(file.Decls) == 0 {
		_, err := fmt.Fprintln(w, "(no declarations)")
		return err
	}
	for i := range file.Decls {
		if err := printDecl(w, &file.Decls[i]); err != nil {
			return err
		}
	}
	return nil
}

func printDecl(w io.Writer, d *ast.Decl) error {
	switch d.Kind {
	case ast.DeclWorld:
		fmt.Fprintf(w, "world %q\n", d.World.Title.Text)
		printStmts(w, d.World.Body, 1)
	case ast.DeclEntity:
		ent := d.Entity
		fmt.Fprintf(w, "entity %q kind=%s", ent.Name.Text, ent.Kind.Text)
		for _, ann := range ent.Annotations {
			fmt.Fprintf(w, " (%s %s)", ann.Keyword.Phrase(), ann.Target.Text)
		}
		fmt.Fprintln(w)
		printStmts(w, ent.Body, 1)
	default:
		fmt.Fprintln(w, "invalid declaration")
	}
	return nil
}

func printStmts(w io.Writer, body []ast.Stmt, depth int) {
	indent := strings.Repeat("  ", depth)
	for i := range body {
		st := &body[i]
		switch st.Kind {
		case ast.StmtProperty:
			fmt.Fprintf(w, "%sproperty %s = %s\n", indent, st.Property.Key.Text, st.Property.Value)
		case ast.StmtRelation:
			names := make([]string, len(st.Relation.Targets))
			for j, t := range st.Relation.Targets {
				names[j] = t.Text
			}
			fmt.Fprintf(w, "%srelation %s -> %s\n", indent, st.Relation.Keyword.Phrase(), strings.Join(names, ", "))
		case ast.StmtExit:
			fmt.Fprintf(w, "%sexit %s -> %s\n", indent, st.Exit.Direction.Text, st.Exit.Target.Text)
		case ast.StmtDate:
			parts := make([]string, 0, len(st.Date.Fields))
			for _, f := range st.Date.Fields {
				if f.Str != "" {
					parts = append(parts, fmt.Sprintf("%s=%q", f.Key.Text, f.Str))
				} else {
					parts = append(parts, fmt.Sprintf("%s=%d", f.Key.Text, f.Int))
				}
			}
			fmt.Fprintf(w, "%sdate %s\n", indent, strings.Join(parts, " "))
		case ast.StmtDescription:
			fmt.Fprintf(w, "%sdescription (%d chars)\n", indent, len(st.Description.Text))
		case ast.StmtBlock:
			fmt.Fprintf(w, "%sblock %s\n", indent, st.Block.Name.Text)
			printStmts(w, st.Block.Body, depth+1)
		default:
			fmt.Fprintf(w, "%sinvalid statement\n", indent)
		}
	}
}

// DeclJSON is one declaration in the JSON dump.
type DeclJSON struct {
	Kind        string     `json:"kind"` // "world" or "entity"
	Name        string     `json:"name"`
	EntityKind  string     `json:"entity_kind,omitempty"`
	Annotations []string   `json:"annotations,omitempty"`
	Body        []StmtJSON `json:"body,omitempty"`
	StartByte   uint32     `json:"start_byte"`
	EndByte     uint32     `json:"end_byte"`
}

// StmtJSON is one body statement in the JSON dump.
type StmtJSON struct {
	Kind      string     `json:"kind"`
	Key       string     `json:"key,omitempty"`       // property, block
	Value     string     `json:"value,omitempty"`     // property
	Relation  string     `json:"relation,omitempty"`  // relation keyword phrase
	Direction string     `json:"direction,omitempty"` // exit
	Targets   []string   `json:"targets,omitempty"`   // relation, exit
	Date      string     `json:"date,omitempty"`
	Text      string     `json:"text,omitempty"` // description
	Body      []StmtJSON `json:"body,omitempty"` // block
}

// FormatDeclsJSON writes the parsed declarations as a JSON array.
func FormatDeclsJSON(w io.Writer, file *ast.File) error {
	out := make([]DeclJSON, 0)
	if file != nil {
		for i := range file.Decls {
			d := &file.Decls[i]
			dj := DeclJSON{StartByte: d.Span.Start, EndByte: d.Span.End}
			switch d.Kind {
			case ast.DeclWorld:
				dj.Kind = "world"
				dj.Name = d.World.Title.Text
				dj.Body = stmtsJSON(d.World.Body)
			case ast.DeclEntity:
				dj.Kind = "entity"
				dj.Name = d.Entity.Name.Text
				dj.EntityKind = d.Entity.Kind.Text
				for _, ann := range d.Entity.Annotations {
					dj.Annotations = append(dj.Annotations, ann.Keyword.Phrase()+" "+ann.Target.Text)
				}
				dj.Body = stmtsJSON(d.Entity.Body)
			default:
				dj.Kind = "invalid"
			}
			out = append(out, dj)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func stmtsJSON(body []ast.Stmt) []StmtJSON {
	out := make([]StmtJSON, 0, len(body))
	for i := range body {
		st := &body[i]
		sj := StmtJSON{}
		switch st.Kind {
		case ast.StmtProperty:
			sj.Kind = "property"
			sj.Key = st.Property.Key.Text
			sj.Value = st.Property.Value.String()
		case ast.StmtRelation:
			sj.Kind = "relation"
			sj.Relation = st.Relation.Keyword.Phrase()
			for _, t := range st.Relation.Targets {
				sj.Targets = append(sj.Targets, t.Text)
			}
		case ast.StmtExit:
			sj.Kind = "exit"
			sj.Direction = st.Exit.Direction.Text
			sj.Targets = []string{st.Exit.Target.Text}
		case ast.StmtDate:
			sj.Kind = "date"
			parts := make([]string, 0, len(st.Date.Fields))
			for _, f := range st.Date.Fields {
				if f.Str != "" {
					parts = append(parts, fmt.Sprintf("%s %q", f.Key.Text, f.Str))
				} else {
					parts = append(parts, fmt.Sprintf("%s %d", f.Key.Text, f.Int))
				}
			}
			sj.Date = strings.Join(parts, ", ")
		case ast.StmtDescription:
			sj.Kind = "description"
			sj.Text = st.Description.Text
		case ast.StmtBlock:
			sj.Kind = "block"
			sj.Key = st.Block.Name.Text
			sj.Body = stmtsJSON(st.Block.Body)
		default:
			sj.Kind = "invalid"
		}
		out = append(out, sj)
	}
	return out
}
