package diagfmt_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/tbsvttr/weltenwanderer2/internal/diagfmt"
)

func TestBuildDiagnosticsOutput(t *testing.T) {
	bag, fs := makeBag(t)
	out := diagfmt.BuildDiagnosticsOutput(bag, fs, diagfmt.JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
		IncludeFixes:     true,
	})

	if out.Count != 1 || out.Errors != 1 || out.Warnings != 0 {
		t.Fatalf("counts = (%d, %d, %d), want (1, 1, 0)", out.Count, out.Errors, out.Warnings)
	}
	d := out.Diagnostics[0]
	if d.Code != "SEM3002" || d.Severity != "ERROR" {
		t.Errorf("diagnostic header = %s %s", d.Severity, d.Code)
	}
	if d.Location.StartLine != 1 || d.Location.StartCol != 11 {
		t.Errorf("location = %d:%d, want 1:11", d.Location.StartLine, d.Location.StartCol)
	}
	if len(d.Notes) != 1 || len(d.Fixes) != 1 {
		t.Errorf("notes=%d fixes=%d, want 1 each", len(d.Notes), len(d.Fixes))
	}
	if len(d.Fixes) == 1 && len(d.Fixes[0].Edits) != 1 {
		t.Errorf("fix edits = %d, want 1", len(d.Fixes[0].Edits))
	}
}

func TestJSONRoundTrips(t *testing.T) {
	bag, fs := makeBag(t)
	var sb strings.Builder
	if err := diagfmt.JSON(&sb, bag, fs, diagfmt.JSONOpts{}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var decoded diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(sb.String()), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Count != 1 {
		t.Errorf("count = %d, want 1", decoded.Count)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	bag, fs := makeBag(t)
	out := diagfmt.BuildDiagnosticsOutput(bag, fs, diagfmt.JSONOpts{Max: 0})
	if len(out.Diagnostics) != 1 {
		t.Fatalf("unlimited output lost diagnostics: %d", len(out.Diagnostics))
	}
	// Max smaller than the bag keeps the count but trims the list.
	bag.Add(bag.Items()[0])
	out = diagfmt.BuildDiagnosticsOutput(bag, fs, diagfmt.JSONOpts{Max: 1})
	if len(out.Diagnostics) != 1 || out.Count != 2 {
		t.Errorf("truncated output = %d items, count %d; want 1 and 2", len(out.Diagnostics), out.Count)
	}
}
