package lexer

import (
	"strconv"
	"strings"

	"github.com/tbsvttr/weltenwanderer2/internal/diag"
	"github.com/tbsvttr/weltenwanderer2/internal/token"
)

// Numbers: -?[0-9][0-9_]* with an optional .[0-9][0-9_]* fraction.
// Underscores are grouping sugar and are ignored for the value; Token.Text
// keeps the raw spelling. Integers must fit int64; overflow is reported and
// yields an Invalid token.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	lx.cursor.Eat('-') // sign, only when the caller saw a digit behind it
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}

	// fraction: '.' must be followed by a digit, otherwise it is not ours
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		kind = token.FloatLit
		lx.cursor.Bump() // '.'
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])

	if kind == token.IntLit {
		digits := strings.ReplaceAll(text, "_", "")
		if _, err := strconv.ParseInt(digits, 10, 64); err != nil {
			lx.errLex(diag.LexBadNumber, sp, "invalid integer literal: "+text)
			return token.Token{Kind: token.Invalid, Span: sp, Text: text}
		}
	}

	return token.Token{Kind: kind, Span: sp, Text: text}
}

// isDigitAfterMinus checks the "-123" case: current byte is '-', next is a digit.
func (lx *Lexer) isDigitAfterMinus() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '-' && isDec(b1)
}
