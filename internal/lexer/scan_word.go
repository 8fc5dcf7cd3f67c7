package lexer

import (
	"github.com/tbsvttr/weltenwanderer2/internal/token"
)

// Words start with an ASCII letter and may continue with letters, digits,
// underscores, apostrophes and hyphens: Kael, half-elf, Kael's, iron_mine.
func (lx *Lexer) scanWord() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // first letter, checked by the caller
	for isWordContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Word, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
