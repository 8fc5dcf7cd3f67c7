package parser_test

import (
	"strings"
	"testing"

	"github.com/tbsvttr/weltenwanderer2/internal/ast"
	"github.com/tbsvttr/weltenwanderer2/internal/diag"
	"github.com/tbsvttr/weltenwanderer2/internal/parser"
	"github.com/tbsvttr/weltenwanderer2/internal/source"
)

func parseText(t *testing.T, text string) (*ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddText("test.ww", text)
	bag := diag.NewBag(64)
	f := parser.Parse(fs.Get(id), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if f == nil {
		t.Fatal("Parse returned nil file")
	}
	return f, bag
}

func countCode(bag *diag.Bag, code diag.Code) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Code == code {
			n++
		}
	}
	return n
}

func onlyEntity(t *testing.T, f *ast.File) *ast.EntityDecl {
	t.Helper()
	if len(f.Decls) != 1 {
		t.Fatalf("got %d declarations, want 1", len(f.Decls))
	}
	if f.Decls[0].Kind != ast.DeclEntity || f.Decls[0].Entity == nil {
		t.Fatalf("declaration is not an entity: %+v", f.Decls[0])
	}
	return f.Decls[0].Entity
}

func TestParseEntityDeclaration(t *testing.T) {
	f, bag := parseText(t, "Kael Storm is a character {\n\tspecies human\n\tage 31\n}\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	e := onlyEntity(t, f)
	if e.Name.Text != "Kael Storm" {
		t.Errorf("name = %q, want %q", e.Name.Text, "Kael Storm")
	}
	if e.Kind.Text != "character" {
		t.Errorf("kind = %q, want %q", e.Kind.Text, "character")
	}
	if len(e.Body) != 2 {
		t.Fatalf("got %d statements, want 2", len(e.Body))
	}
	sp := e.Body[0]
	if sp.Kind != ast.StmtProperty || sp.Property.Key.Text != "species" || sp.Property.Value.Str != "human" {
		t.Errorf("statement 0 = %+v, want property species=human", sp)
	}
	age := e.Body[1]
	if age.Kind != ast.StmtProperty || age.Property.Value.Kind != ast.ValueInt || age.Property.Value.Int != 31 {
		t.Errorf("statement 1 = %+v, want property age=31", age)
	}
}

func TestParseWorldDeclaration(t *testing.T) {
	input := "world \"The Shattered Realm\" {\n" +
		"\tgenre \"dark fantasy\"\n" +
		"\t\"\"\"A realm broken by the Sundering.\"\"\"\n" +
		"}\n"
	f, bag := parseText(t, input)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if len(f.Decls) != 1 || f.Decls[0].Kind != ast.DeclWorld {
		t.Fatalf("got %+v, want one world declaration", f.Decls)
	}
	w := f.Decls[0].World
	if w.Title.Text != "The Shattered Realm" {
		t.Errorf("title = %q", w.Title.Text)
	}
	if len(w.Body) != 2 {
		t.Fatalf("got %d statements, want 2", len(w.Body))
	}
	if w.Body[1].Kind != ast.StmtDescription || w.Body[1].Description.Text != "A realm broken by the Sundering." {
		t.Errorf("description = %+v", w.Body[1])
	}
}

func TestQuotedNameAndCustomKind(t *testing.T) {
	f, bag := parseText(t, "\"The Iron Pass\" is a \"mountain crossing\" {\n}\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	e := onlyEntity(t, f)
	if e.Name.Text != "The Iron Pass" {
		t.Errorf("name = %q", e.Name.Text)
	}
	if e.Kind.Text != "mountain crossing" {
		t.Errorf("kind = %q", e.Kind.Text)
	}
}

func TestRelationshipClauses(t *testing.T) {
	input := "the Sundering is an event {\n" +
		"\tin the Iron Hills\n" +
		"\tcaused by \"Vex Nightwhisper\"\n" +
		"\tinvolving [Kael Storm, the Silver Company]\n" +
		"}\n"
	f, bag := parseText(t, input)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	e := onlyEntity(t, f)
	if len(e.Body) != 3 {
		t.Fatalf("got %d statements, want 3", len(e.Body))
	}
	wantKw := []ast.RelKeyword{ast.RelIn, ast.RelCausedBy, ast.RelInvolving}
	wantTargets := [][]string{
		{"the Iron Hills"},
		{"Vex Nightwhisper"},
		{"Kael Storm", "the Silver Company"},
	}
	for i, st := range e.Body {
		if st.Kind != ast.StmtRelation {
			t.Fatalf("statement %d is %v, want relation", i, st.Kind)
		}
		if st.Relation.Keyword != wantKw[i] {
			t.Errorf("statement %d keyword = %v, want %v", i, st.Relation.Keyword, wantKw[i])
		}
		if len(st.Relation.Targets) != len(wantTargets[i]) {
			t.Fatalf("statement %d: %d targets, want %d", i, len(st.Relation.Targets), len(wantTargets[i]))
		}
		for j, target := range st.Relation.Targets {
			if target.Text != wantTargets[i][j] {
				t.Errorf("statement %d target %d = %q, want %q", i, j, target.Text, wantTargets[i][j])
			}
		}
	}
}

// A clause word that is not completed by its second word, a name, or a
// bracket is an ordinary property key.
func TestClauseWordsFallBackToProperty(t *testing.T) {
	input := "the Guild is a faction {\n" +
		"\tmember 40\n" +
		"\treferences something\n" +
		"\tlocated \"basement\"\n" +
		"\tin 5\n" +
		"}\n"
	f, bag := parseText(t, input)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	e := onlyEntity(t, f)
	if len(e.Body) != 4 {
		t.Fatalf("got %d statements, want 4", len(e.Body))
	}
	wantKeys := []string{"member", "references", "located", "in"}
	for i, st := range e.Body {
		if st.Kind != ast.StmtProperty {
			t.Fatalf("statement %d is %v, want property", i, st.Kind)
		}
		if st.Property.Key.Text != wantKeys[i] {
			t.Errorf("statement %d key = %q, want %q", i, st.Property.Key.Text, wantKeys[i])
		}
	}
}

func TestExitStatements(t *testing.T) {
	input := "the Old Keep is a fortress {\n" +
		"\tnorth to the Iron Pass\n" +
		"\tout to \"the Wilds\"\n" +
		"\tnorth gate\n" +
		"}\n"
	f, bag := parseText(t, input)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	e := onlyEntity(t, f)
	if len(e.Body) != 3 {
		t.Fatalf("got %d statements, want 3", len(e.Body))
	}
	if e.Body[0].Kind != ast.StmtExit || e.Body[0].Exit.Direction.Text != "north" || e.Body[0].Exit.Target.Text != "the Iron Pass" {
		t.Errorf("statement 0 = %+v, want exit north", e.Body[0])
	}
	if e.Body[1].Kind != ast.StmtExit || e.Body[1].Exit.Target.Text != "the Wilds" {
		t.Errorf("statement 1 = %+v, want exit out", e.Body[1])
	}
	// No `to`, so `north` is a property key.
	if e.Body[2].Kind != ast.StmtProperty || e.Body[2].Property.Key.Text != "north" {
		t.Errorf("statement 2 = %+v, want property north=gate", e.Body[2])
	}
}

func TestDateStatement(t *testing.T) {
	f, bag := parseText(t, "the Sundering is an event {\n\tdate year -1247, month 3\n}\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	e := onlyEntity(t, f)
	if len(e.Body) != 1 || e.Body[0].Kind != ast.StmtDate {
		t.Fatalf("got %+v, want one date statement", e.Body)
	}
	fields := e.Body[0].Date.Fields
	if len(fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(fields))
	}
	if fields[0].Key.Text != "year" || fields[0].Int != -1247 {
		t.Errorf("field 0 = %+v, want year -1247", fields[0])
	}
	if fields[1].Key.Text != "month" || fields[1].Int != 3 {
		t.Errorf("field 1 = %+v, want month 3", fields[1])
	}
}

func TestDateEraField(t *testing.T) {
	f, bag := parseText(t, "the Founding is an event {\n\tdate era \"Second Age\", year 1\n}\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	e := onlyEntity(t, f)
	fields := e.Body[0].Date.Fields
	if len(fields) != 2 || fields[0].Str != "Second Age" || fields[1].Int != 1 {
		t.Errorf("fields = %+v", fields)
	}
}

func TestDateFieldErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"string year", "e is an event {\n\tdate year \"then\"\n}\n"},
		{"unknown field", "e is an event {\n\tdate year 3, century 12\n}\n"},
		{"bare era", "e is an event {\n\tdate era golden\n}\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, bag := parseText(t, tc.input)
			if countCode(bag, diag.SynBadDateField) == 0 {
				t.Errorf("no SynBadDateField reported: %+v", bag.Items())
			}
			if len(f.Decls) != 1 {
				t.Errorf("got %d declarations, want 1", len(f.Decls))
			}
		})
	}
}

func TestNestedBlocks(t *testing.T) {
	input := "Kael Storm is a character {\n" +
		"\tstats {\n" +
		"\t\tcombat {\n" +
		"\t\t\tattack 5\n" +
		"\t\t}\n" +
		"\t\tluck 0.5\n" +
		"\t}\n" +
		"}\n"
	f, bag := parseText(t, input)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	e := onlyEntity(t, f)
	if len(e.Body) != 1 || e.Body[0].Kind != ast.StmtBlock {
		t.Fatalf("got %+v, want one block", e.Body)
	}
	stats := e.Body[0].Block
	if stats.Name.Text != "stats" || len(stats.Body) != 2 {
		t.Fatalf("stats block = %+v", stats)
	}
	combat := stats.Body[0]
	if combat.Kind != ast.StmtBlock || combat.Block.Name.Text != "combat" || len(combat.Block.Body) != 1 {
		t.Errorf("combat block = %+v", combat)
	}
	if stats.Body[1].Kind != ast.StmtProperty || stats.Body[1].Property.Value.Float != 0.5 {
		t.Errorf("luck = %+v", stats.Body[1])
	}
}

func TestPropertyValueForms(t *testing.T) {
	input := "the Vault is a location {\n" +
		"\tname \"Iron Vault\"\n" +
		"\tcapacity 1_000_000\n" +
		"\ttemperature -0.75\n" +
		"\tsealed true\n" +
		"\tcondition pristine\n" +
		"\ttags [old, \"well hidden\", 3,]\n" +
		"\tshards [\n" +
		"\t\tone,\n" +
		"\t\ttwo\n" +
		"\t]\n" +
		"}\n"
	f, bag := parseText(t, input)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	e := onlyEntity(t, f)
	if len(e.Body) != 7 {
		t.Fatalf("got %d statements, want 7", len(e.Body))
	}
	vals := make(map[string]ast.Value)
	for _, st := range e.Body {
		if st.Kind != ast.StmtProperty {
			t.Fatalf("statement %+v, want property", st)
		}
		vals[st.Property.Key.Text] = st.Property.Value
	}
	if v := vals["name"]; v.Kind != ast.ValueString || v.Str != "Iron Vault" {
		t.Errorf("name = %+v", v)
	}
	if v := vals["capacity"]; v.Kind != ast.ValueInt || v.Int != 1000000 {
		t.Errorf("capacity = %+v", v)
	}
	if v := vals["temperature"]; v.Kind != ast.ValueFloat || v.Float != -0.75 {
		t.Errorf("temperature = %+v", v)
	}
	if v := vals["sealed"]; v.Kind != ast.ValueBool || !v.Bool {
		t.Errorf("sealed = %+v", v)
	}
	if v := vals["condition"]; v.Kind != ast.ValueWord || v.Str != "pristine" {
		t.Errorf("condition = %+v", v)
	}
	tags := vals["tags"]
	if tags.Kind != ast.ValueList || len(tags.List) != 3 {
		t.Fatalf("tags = %+v", tags)
	}
	if tags.List[1].Str != "well hidden" || tags.List[2].Int != 3 {
		t.Errorf("tags items = %+v", tags.List)
	}
	if shards := vals["shards"]; shards.Kind != ast.ValueList || len(shards.List) != 2 {
		t.Errorf("shards = %+v", vals["shards"])
	}
}

func TestAnnotations(t *testing.T) {
	input := "Kael Storm (leader of the Silver Company, member of \"the Guild\") is a character {\n}\n"
	f, bag := parseText(t, input)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	e := onlyEntity(t, f)
	if len(e.Annotations) != 2 {
		t.Fatalf("got %d annotations, want 2", len(e.Annotations))
	}
	if e.Annotations[0].Keyword != ast.RelLeaderOf || e.Annotations[0].Target.Text != "the Silver Company" {
		t.Errorf("annotation 0 = %+v", e.Annotations[0])
	}
	if e.Annotations[1].Keyword != ast.RelMemberOf || e.Annotations[1].Target.Text != "the Guild" {
		t.Errorf("annotation 1 = %+v", e.Annotations[1])
	}
}

func TestUnknownAnnotationRecovers(t *testing.T) {
	f, bag := parseText(t, "Kael (wields the Axe, member of the Guild) is a character {\n}\n")
	if countCode(bag, diag.SynBadAnnotation) != 1 {
		t.Fatalf("want one SynBadAnnotation, got %+v", bag.Items())
	}
	e := onlyEntity(t, f)
	if len(e.Annotations) != 1 || e.Annotations[0].Keyword != ast.RelMemberOf {
		t.Errorf("annotations = %+v, want the surviving member clause", e.Annotations)
	}
}

func TestMissingClosingBraceAtEOF(t *testing.T) {
	f, bag := parseText(t, "Kael Storm is a character {\n\tspecies human\n")
	if len(f.Decls) != 1 {
		t.Fatalf("got %d declarations, want 1", len(f.Decls))
	}
	e := f.Decls[0].Entity
	if len(e.Body) != 1 || e.Body[0].Property.Key.Text != "species" {
		t.Errorf("body = %+v, want the species property", e.Body)
	}
	if countCode(bag, diag.SynUnclosedBrace) != 1 {
		t.Errorf("want one SynUnclosedBrace, got %+v", bag.Items())
	}
}

func TestMissingClosingBraceBeforeNextDeclaration(t *testing.T) {
	input := "the Old Keep is a fortress {\n" +
		"\tcondition ruined\n" +
		"Mira Dawnlight is a character {\n" +
		"\tage 27\n" +
		"}\n"
	f, bag := parseText(t, input)
	if len(f.Decls) != 2 {
		t.Fatalf("got %d declarations, want 2: %+v", len(f.Decls), bag.Items())
	}
	if f.Decls[0].Entity.Name.Text != "the Old Keep" || f.Decls[1].Entity.Name.Text != "Mira Dawnlight" {
		t.Errorf("declarations = %q, %q", f.Decls[0].Entity.Name.Text, f.Decls[1].Entity.Name.Text)
	}
	if bag.Len() != 1 || countCode(bag, diag.SynUnclosedBrace) != 1 {
		t.Errorf("want exactly one SynUnclosedBrace, got %+v", bag.Items())
	}
}

func TestRecoveryBetweenDeclarations(t *testing.T) {
	input := "Kael is a character {\n}\n" +
		"12 monkeys\n" +
		"Mira is a character {\n}\n"
	f, bag := parseText(t, input)
	if len(f.Decls) != 2 {
		t.Fatalf("got %d declarations, want 2", len(f.Decls))
	}
	if !bag.HasErrors() {
		t.Error("garbage line produced no error")
	}
	if f.Decls[1].Entity.Name.Text != "Mira" {
		t.Errorf("second declaration = %q", f.Decls[1].Entity.Name.Text)
	}
}

func TestMissingIsKeyword(t *testing.T) {
	_, bag := parseText(t, "Kael a character {\n\tage 31\n}\n")
	if countCode(bag, diag.SynExpectIs) != 1 {
		t.Errorf("want one SynExpectIs, got %+v", bag.Items())
	}
}

func TestStatementsRequireNewlines(t *testing.T) {
	f, bag := parseText(t, "Kael is a character {\n\tspecies human age 31\n}\n")
	if countCode(bag, diag.SynExpectNewline) != 1 {
		t.Fatalf("want one SynExpectNewline, got %+v", bag.Items())
	}
	e := onlyEntity(t, f)
	if len(e.Body) != 1 || e.Body[0].Property.Key.Text != "species" {
		t.Errorf("body = %+v, want only the species property", e.Body)
	}
}

func TestDuplicateDescriptionWarns(t *testing.T) {
	input := "Kael is a character {\n" +
		"\t\"\"\"First.\"\"\"\n" +
		"\t\"\"\"Second.\"\"\"\n" +
		"}\n"
	f, bag := parseText(t, input)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	if countCode(bag, diag.SynDuplicateDescription) != 1 {
		t.Fatalf("want one SynDuplicateDescription, got %+v", bag.Items())
	}
	var warn diag.Diagnostic
	for _, d := range bag.Items() {
		if d.Code == diag.SynDuplicateDescription {
			warn = d
		}
	}
	if warn.Severity != diag.SevWarning {
		t.Errorf("severity = %v, want warning", warn.Severity)
	}
	if len(warn.Notes) != 1 || !strings.Contains(warn.Notes[0].Msg, "first") {
		t.Errorf("notes = %+v", warn.Notes)
	}
	e := onlyEntity(t, f)
	if len(e.Body) != 2 {
		t.Errorf("both descriptions stay in the tree, got %+v", e.Body)
	}
}

func TestEmptyAndCommentOnlyFiles(t *testing.T) {
	for _, input := range []string{"", "\n\n\n", "-- nothing here\n-- still nothing\n"} {
		f, bag := parseText(t, input)
		if len(f.Decls) != 0 || bag.Len() != 0 {
			t.Errorf("input %q: decls=%d diags=%d, want 0/0", input, len(f.Decls), bag.Len())
		}
	}
}

// A property whose key is `world` must not be mistaken for a world
// declaration header during recovery.
func TestWorldAsPropertyKey(t *testing.T) {
	f, bag := parseText(t, "the Atlas is an item {\n\tworld \"the Shattered Realm\"\n}\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	e := onlyEntity(t, f)
	if len(e.Body) != 1 || e.Body[0].Kind != ast.StmtProperty || e.Body[0].Property.Key.Text != "world" {
		t.Errorf("body = %+v", e.Body)
	}
}

func TestLexerFindingsShareTheBag(t *testing.T) {
	f, bag := parseText(t, "Kael is a character {\n\tpower 99999999999999999999999\n}\n")
	if countCode(bag, diag.LexBadNumber) != 1 {
		t.Fatalf("want one LexBadNumber, got %+v", bag.Items())
	}
	e := onlyEntity(t, f)
	if len(e.Body) != 1 || e.Body[0].Property.Value.Kind != ast.ValueInvalid {
		t.Errorf("body = %+v, want property with invalid value", e.Body)
	}
}

func TestUnclosedListRecovers(t *testing.T) {
	f, bag := parseText(t, "the Guild is a faction {\n\ttags [brave, loyal\n}\n")
	if countCode(bag, diag.SynUnclosedBracket) != 1 {
		t.Fatalf("want one SynUnclosedBracket, got %+v", bag.Items())
	}
	e := onlyEntity(t, f)
	if len(e.Body) != 1 {
		t.Fatalf("body = %+v", e.Body)
	}
	tags := e.Body[0].Property.Value
	if tags.Kind != ast.ValueList || len(tags.List) != 2 {
		t.Errorf("tags = %+v, want both collected items", tags)
	}
}

func TestMaxErrorsCapsReporting(t *testing.T) {
	input := "Kael is a character {\n\t[ 1\n\t[ 2\n\t[ 3\n}\n"
	fs := source.NewFileSet()
	id := fs.AddText("test.ww", input)
	bag := diag.NewBag(64)
	parser.Parse(fs.Get(id), parser.Options{MaxErrors: 2, Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() != 2 {
		t.Errorf("got %d diagnostics, want cap of 2: %+v", bag.Len(), bag.Items())
	}
}

func TestDeclarationSpansCoverTheWholeDeclaration(t *testing.T) {
	input := "Kael is a character {\n\tage 31\n}\n"
	fs := source.NewFileSet()
	id := fs.AddText("test.ww", input)
	bag := diag.NewBag(8)
	f := parser.Parse(fs.Get(id), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if len(f.Decls) != 1 {
		t.Fatalf("decls = %+v", f.Decls)
	}
	d := f.Decls[0]
	if d.Span.Start != 0 {
		t.Errorf("span start = %d, want 0", d.Span.Start)
	}
	closing := uint32(strings.LastIndexByte(input, '}') + 1)
	if d.Span.End != closing {
		t.Errorf("span end = %d, want %d", d.Span.End, closing)
	}
	if got := f.Decls[0].Entity.Name.Span; got.Start != 0 || got.End != 4 {
		t.Errorf("name span = %+v, want 0..4", got)
	}
}
