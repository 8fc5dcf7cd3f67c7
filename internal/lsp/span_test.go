package lsp

import (
	"testing"

	"github.com/tbsvttr/weltenwanderer2/internal/source"
)

func testFile(t *testing.T, text string) *source.File {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddText("span.ww", text)
	return fs.Get(id)
}

func TestPositionRoundTripASCII(t *testing.T) {
	file := testFile(t, "Kael is a character {\n\tspecies human\n}\n")
	for _, off := range []uint32{0, 5, 21, 22, 23, 38} {
		pos := positionForOffsetInFile(file, off)
		back := offsetForPositionInFile(file, pos)
		if back != off {
			t.Errorf("offset %d -> %+v -> %d", off, pos, back)
		}
	}
}

func TestPositionUTF16Units(t *testing.T) {
	// é is 2 bytes / 1 unit; 𝄞 is 4 bytes / 2 units.
	file := testFile(t, "Fëanor 𝄞 x\n")

	pos := positionForOffsetInFile(file, 7) // after "Fëanor"
	if pos.Line != 0 || pos.Character != 6 {
		t.Errorf("after Fëanor = %+v, want 0:6", pos)
	}

	// Offset of "x": F(1) ë(2) a n o r (4) space(1) 𝄞(4) space(1) = 13.
	pos = positionForOffsetInFile(file, 13)
	if pos.Character != 9 {
		t.Errorf("x at character %d, want 9 (6 + space + 2 surrogate units)", pos.Character)
	}
	if off := offsetForPositionInFile(file, pos); off != 13 {
		t.Errorf("round trip = %d, want 13", off)
	}
}

func TestPositionClamping(t *testing.T) {
	file := testFile(t, "ab\ncd\n")
	if off := offsetForPositionInFile(file, position{Line: 99, Character: 0}); off != 6 {
		t.Errorf("past-the-end line = %d, want 6", off)
	}
	if off := offsetForPositionInFile(file, position{Line: 0, Character: 99}); off != 2 {
		t.Errorf("past-the-end character = %d, want 2 (line end)", off)
	}
	pos := positionForOffsetInFile(file, 999)
	if pos.Line != 2 {
		t.Errorf("clamped position = %+v", pos)
	}
}

func TestRangeForSpan(t *testing.T) {
	file := testFile(t, "ab\ncd\n")
	rng := rangeForSpan(file, source.Span{File: file.ID, Start: 3, End: 5})
	if rng.Start.Line != 1 || rng.Start.Character != 0 || rng.End.Line != 1 || rng.End.Character != 2 {
		t.Errorf("range = %+v", rng)
	}
}
