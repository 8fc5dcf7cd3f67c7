package diagfmt_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/tbsvttr/weltenwanderer2/internal/diagfmt"
	"github.com/tbsvttr/weltenwanderer2/internal/driver"
)

const declDumpSource = `world "Test Realm" {
	genre fantasy
}

the Citadel is a fortress {
	north to the Gates
	led by Kael
	stats {
		garrison 4_000
	}
}
`

func parseDump(t *testing.T) *driver.ParseResult {
	t.Helper()
	res, err := driver.ParseText("realm.ww", declDumpSource, 0)
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	return res
}

func TestFormatDeclsPretty(t *testing.T) {
	res := parseDump(t)
	var sb strings.Builder
	if err := diagfmt.FormatDeclsPretty(&sb, res.AST); err != nil {
		t.Fatalf("FormatDeclsPretty: %v", err)
	}
	out := sb.String()
	for _, want := range []string{
		`world "Test Realm"`,
		"property genre = fantasy",
		`entity "the Citadel" kind=fortress`,
		"exit north -> the Gates",
		"relation led by -> Kael",
		"block stats",
		"property garrison = 4000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("pretty dump missing %q:\n%s", want, out)
		}
	}
}

func TestFormatDeclsJSON(t *testing.T) {
	res := parseDump(t)
	var sb strings.Builder
	if err := diagfmt.FormatDeclsJSON(&sb, res.AST); err != nil {
		t.Fatalf("FormatDeclsJSON: %v", err)
	}
	var decls []diagfmt.DeclJSON
	if err := json.Unmarshal([]byte(sb.String()), &decls); err != nil {
		t.Fatalf("dump is not valid JSON: %v", err)
	}
	if len(decls) != 2 {
		t.Fatalf("decls = %d, want 2", len(decls))
	}
	if decls[0].Kind != "world" || decls[0].Name != "Test Realm" {
		t.Errorf("first decl = %+v", decls[0])
	}
	ent := decls[1]
	if ent.Kind != "entity" || ent.EntityKind != "fortress" {
		t.Errorf("second decl = %+v", ent)
	}
	var kinds []string
	for _, st := range ent.Body {
		kinds = append(kinds, st.Kind)
	}
	want := []string{"exit", "relation", "block"}
	if strings.Join(kinds, ",") != strings.Join(want, ",") {
		t.Errorf("statement kinds = %v, want %v", kinds, want)
	}
}
