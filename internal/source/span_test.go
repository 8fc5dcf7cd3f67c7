package source

import (
	"testing"
)

func TestSpanBasics(t *testing.T) {
	s := Span{File: 0, Start: 3, End: 9}
	if s.Empty() {
		t.Error("non-empty span reported Empty")
	}
	if s.Len() != 6 {
		t.Errorf("Len = %d, want 6", s.Len())
	}
	if got := s.String(); got != "0:3-9" {
		t.Errorf("String = %q", got)
	}

	empty := Span{File: 0, Start: 5, End: 5}
	if !empty.Empty() {
		t.Error("empty span not reported Empty")
	}
}

func TestSpanContains(t *testing.T) {
	s := Span{File: 0, Start: 3, End: 9}
	if !s.Contains(3) || !s.Contains(8) {
		t.Error("Contains should be true inside [Start, End)")
	}
	if s.Contains(2) || s.Contains(9) {
		t.Error("Contains should be false outside [Start, End)")
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 0, Start: 5, End: 10}
	b := Span{File: 0, Start: 2, End: 7}
	c := a.Cover(b)
	if c.Start != 2 || c.End != 10 {
		t.Errorf("Cover = %v, want 0:2-10", c)
	}

	d := Span{File: 0, Start: 12, End: 20}
	e := a.Cover(d)
	if e.Start != 5 || e.End != 20 {
		t.Errorf("Cover = %v, want 0:5-20", e)
	}

	other := Span{File: 1, Start: 0, End: 100}
	f := a.Cover(other)
	if f != a {
		t.Errorf("Cover across files must be a no-op, got %v", f)
	}
}
