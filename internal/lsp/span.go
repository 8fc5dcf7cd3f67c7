package lsp

import (
	"sort"
	"unicode/utf8"

	"fortio.org/safecast"

	"github.com/tbsvttr/weltenwanderer2/internal/source"
)

func safeUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return ^uint32(0)
	}
	return v
}

// lineBounds returns the byte range of a 0-based line.
func lineBounds(file *source.File, line int) (start, end uint32) {
	contentLen := safeUint32(len(file.Content))
	if line < 0 {
		return 0, 0
	}
	if line > len(file.LineIdx) {
		return contentLen, contentLen
	}
	if line > 0 {
		start = file.LineIdx[line-1] + 1
	}
	end = contentLen
	if line < len(file.LineIdx) {
		end = file.LineIdx[line]
	}
	if start > end {
		start = end
	}
	return start, end
}

// offsetForPositionInFile maps an LSP position (0-based line, UTF-16
// character) to a byte offset, clamping past-the-end positions.
func offsetForPositionInFile(file *source.File, pos position) uint32 {
	if file == nil || pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	start, end := lineBounds(file, pos.Line)
	units := 0
	off := start
	for off < end && units < pos.Character {
		r, size := utf8.DecodeRune(file.Content[off:end])
		if r == utf8.RuneError && size == 0 {
			break
		}
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		off += safeUint32(size)
	}
	return off
}

// positionForOffsetInFile maps a byte offset to an LSP position.
func positionForOffsetInFile(file *source.File, offset uint32) position {
	if file == nil {
		return position{}
	}
	contentLen := safeUint32(len(file.Content))
	if offset > contentLen {
		offset = contentLen
	}
	lineIdx := file.LineIdx
	line := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= offset })
	var lineStart uint32
	if line > 0 {
		lineStart = lineIdx[line-1] + 1
	}
	if lineStart > offset {
		lineStart = offset
	}
	units := utf16Len(file.Content[lineStart:offset])
	return position{Line: line, Character: units}
}

func utf16Len(b []byte) int {
	units := 0
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 0 {
			break
		}
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		b = b[size:]
	}
	return units
}

func rangeForSpan(file *source.File, span source.Span) lspRange {
	if file == nil {
		return lspRange{}
	}
	return lspRange{
		Start: positionForOffsetInFile(file, span.Start),
		End:   positionForOffsetInFile(file, span.End),
	}
}
