package lexer

import (
	"bytes"

	"github.com/tbsvttr/weltenwanderer2/internal/diag"
	"github.com/tbsvttr/weltenwanderer2/internal/token"
)

// Strings are single-line: "..." with the escapes \n \t \\ \" recognised
// later by token.StringValue. A newline or EOF before the closing quote is
// reported, and the partial content still comes back as a StringLit so the
// parser can keep going with it.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '"' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		if b == '\\' {
			// eat '\' plus the escaped byte so \" does not close the string
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if b == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
			return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		lx.cursor.Bump()
	}
	// EOF without a closing quote
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// Docstrings are """...""" blocks that may span lines. Content is trimmed
// by token.DocstringValue. A missing closing delimiter consumes to EOF and
// is reported, the token is still produced.
func (lx *Lexer) scanDocstring() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // three opening quotes, checked by the caller
	lx.cursor.Bump()
	lx.cursor.Bump()

	rest := lx.file.Content[lx.cursor.Off:]
	if end := bytes.Index(rest, []byte(`"""`)); end >= 0 {
		lx.cursor.Off += uint32(end + 3)
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.DocstringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	for !lx.cursor.EOF() {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedDocstring, sp, `unterminated doc string (missing closing """)`)
	return token.Token{Kind: token.DocstringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
