package source

import (
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("realm.ww", []byte("Kael is a character {}"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}

	latestID, exists := fs.GetLatest("realm.ww")
	if !exists {
		t.Error("Expected file to exist after Add")
	}
	if latestID != id1 {
		t.Errorf("Expected latest ID to be %d, got %d", id1, latestID)
	}

	// re-adding the same path yields a fresh version
	id2 := fs.Add("realm.ww", []byte("Kael is a character {\n}\n"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	latestID, exists = fs.GetLatest("realm.ww")
	if !exists {
		t.Error("Expected file to exist after second Add")
	}
	if latestID != id2 {
		t.Errorf("Expected latest ID to be %d, got %d", id2, latestID)
	}

	// the old version stays addressable
	file1 := fs.Get(id1)
	if string(file1.Content) != "Kael is a character {}" {
		t.Errorf("Unexpected first version content: %q", string(file1.Content))
	}

	file2 := fs.Get(id2)
	if string(file2.Content) != "Kael is a character {\n}\n" {
		t.Errorf("Unexpected second version content: %q", string(file2.Content))
	}

	if file1.Path != "realm.ww" || file2.Path != "realm.ww" {
		t.Error("Expected both versions to share the path")
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("a.ww", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Errorf("Expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("Expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}

	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

func TestNormalizeSource(t *testing.T) {
	content, flags := NormalizeSource([]byte("\xEF\xBB\xBFa\r\nb\r\n"))
	if string(content) != "a\nb\n" {
		t.Errorf("Expected normalized content %q, got %q", "a\nb\n", string(content))
	}
	if flags&FileHadBOM == 0 {
		t.Error("Expected FileHadBOM flag")
	}
	if flags&FileNormalizedCRLF == 0 {
		t.Error("Expected FileNormalizedCRLF flag")
	}

	content, flags = NormalizeSource([]byte("plain\n"))
	if string(content) != "plain\n" || flags != 0 {
		t.Errorf("Expected untouched content, got %q with flags %d", string(content), flags)
	}
}

func TestAddTextMatchesLoadNormalization(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddText("win.ww", "a\r\nb\r\n")
	file := fs.Get(id)
	if string(file.Content) != "a\nb\n" {
		t.Errorf("Expected AddText to normalize CRLF, got %q", string(file.Content))
	}
	if file.Flags&FileNormalizedCRLF == 0 {
		t.Error("Expected FileNormalizedCRLF flag")
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("pos.ww", []byte("first\nsecond\nthird"))

	cases := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},
		{4, 1, 5},
		{5, 1, 6}, // the newline itself belongs to line 1
		{6, 2, 1},
		{11, 2, 6},
		{13, 3, 1},
		{17, 3, 5},
	}
	for _, tc := range cases {
		start, _ := fs.Resolve(Span{File: id, Start: tc.off, End: tc.off})
		if start.Line != tc.line || start.Col != tc.col {
			t.Errorf("offset %d: expected %d:%d, got %d:%d", tc.off, tc.line, tc.col, start.Line, start.Col)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("lines.ww", []byte("first\nsecond\nthird"))
	file := fs.Get(id)

	if got := file.GetLine(1); got != "first" {
		t.Errorf("line 1 = %q", got)
	}
	if got := file.GetLine(2); got != "second" {
		t.Errorf("line 2 = %q", got)
	}
	if got := file.GetLine(3); got != "third" {
		t.Errorf("line 3 = %q", got)
	}
	if got := file.GetLine(4); got != "" {
		t.Errorf("line 4 should be empty, got %q", got)
	}
	if got := file.GetLine(0); got != "" {
		t.Errorf("line 0 should be empty, got %q", got)
	}
}

func TestHashChangesWithContent(t *testing.T) {
	fs := NewFileSet()
	a := fs.AddVirtual("h.ww", []byte("one"))
	b := fs.AddVirtual("h.ww", []byte("two"))
	c := fs.AddVirtual("h.ww", []byte("one"))

	if fs.Get(a).Hash == fs.Get(b).Hash {
		t.Error("different content must produce different hashes")
	}
	if fs.Get(a).Hash != fs.Get(c).Hash {
		t.Error("identical content must produce identical hashes")
	}
}
