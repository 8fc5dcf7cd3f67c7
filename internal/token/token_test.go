package token

import (
	"testing"

	"github.com/tbsvttr/weltenwanderer2/internal/source"
)

func TestStringValue(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`"hello"`, "hello"},
		{`""`, ""},
		{`"a \"quoted\" word"`, `a "quoted" word`},
		{`"tab\there"`, "tab\there"},
		{`"line\nbreak"`, "line\nbreak"},
		{`"back\\slash"`, `back\slash`},
		{`"unknown \q escape"`, `unknown \q escape`},
		{`"unterminated`, "unterminated"}, // recovered token without closing quote
	}
	for _, tc := range cases {
		tok := Token{Kind: StringLit, Text: tc.raw}
		if got := tok.StringValue(); got != tc.want {
			t.Errorf("StringValue(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestDocstringValue(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`"""plain"""`, "plain"},
		{"\"\"\"\n  A hero of the old wars.\n\"\"\"", "A hero of the old wars."},
		{`""""""`, ""},
		{`"""no closing`, "no closing"},
	}
	for _, tc := range cases {
		tok := Token{Kind: DocstringLit, Text: tc.raw}
		if got := tok.DocstringValue(); got != tc.want {
			t.Errorf("DocstringValue(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestIsWord(t *testing.T) {
	tok := Token{Kind: Word, Text: "is", Span: source.Span{Start: 0, End: 2}}
	if !tok.IsWord("is") {
		t.Error("IsWord should match exact text")
	}
	if tok.IsWord("Is") {
		t.Error("IsWord must be case-sensitive")
	}
	str := Token{Kind: StringLit, Text: "is"}
	if str.IsWord("is") {
		t.Error("IsWord must require Kind == Word")
	}
}

func TestLookupKeyword(t *testing.T) {
	if kw, ok := LookupKeyword("world"); !ok || kw != KwWorld {
		t.Errorf("LookupKeyword(world) = %v, %v", kw, ok)
	}
	if kw, ok := LookupKeyword("is"); !ok || kw != KwIs {
		t.Errorf("LookupKeyword(is) = %v, %v", kw, ok)
	}
	if _, ok := LookupKeyword("World"); ok {
		t.Error("keyword lookup must be case-sensitive")
	}
	if _, ok := LookupKeyword("dragon"); ok {
		t.Error("plain words must not be keywords")
	}
}

func TestRelationshipSecondWord(t *testing.T) {
	cases := []struct {
		first  string
		second string
		ok     bool
	}{
		{"in", "", true},
		{"member", "of", true},
		{"located", "at", true},
		{"allied", "with", true},
		{"rival", "of", true},
		{"owned", "by", true},
		{"led", "by", true},
		{"based", "at", true},
		{"caused", "by", true},
		{"involving", "", true},
		{"references", "", true},
		{"leader", "", false}, // annotation-only form
		{"species", "", false},
	}
	for _, tc := range cases {
		second, ok := RelationshipSecondWord(tc.first)
		if ok != tc.ok || second != tc.second {
			t.Errorf("RelationshipSecondWord(%q) = %q, %v; want %q, %v",
				tc.first, second, ok, tc.second, tc.ok)
		}
	}
}

func TestAnnotationSecondWord(t *testing.T) {
	if second, ok := AnnotationSecondWord("leader"); !ok || second != "of" {
		t.Errorf("AnnotationSecondWord(leader) = %q, %v", second, ok)
	}
	if second, ok := AnnotationSecondWord("owner"); !ok || second != "of" {
		t.Errorf("AnnotationSecondWord(owner) = %q, %v", second, ok)
	}
	if _, ok := AnnotationSecondWord("involving"); ok {
		t.Error("list clauses are not annotation forms")
	}
}

func TestIsDirection(t *testing.T) {
	for _, d := range []string{"north", "south", "east", "west", "up", "down",
		"northeast", "northwest", "southeast", "southwest", "out"} {
		if !IsDirection(d) {
			t.Errorf("IsDirection(%q) should be true", d)
		}
	}
	if IsDirection("sideways") {
		t.Error("IsDirection(sideways) should be false")
	}
	if IsDirection("North") {
		t.Error("direction matching must be case-sensitive")
	}
}

func TestIsKeywordText(t *testing.T) {
	for _, w := range []string{"world", "is", "date", "to", "led", "leader", "north", "involving"} {
		if !IsKeywordText(w) {
			t.Errorf("IsKeywordText(%q) should be true", w)
		}
	}
	for _, w := range []string{"Kael", "species", "tower"} {
		if IsKeywordText(w) {
			t.Errorf("IsKeywordText(%q) should be false", w)
		}
	}
}
