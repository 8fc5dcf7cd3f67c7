package lexer

import (
	"github.com/tbsvttr/weltenwanderer2/internal/diag"
	"github.com/tbsvttr/weltenwanderer2/internal/source"
	"github.com/tbsvttr/weltenwanderer2/internal/token"
)

// Lexer turns one file into a stream of significant tokens. Horizontal
// whitespace and -- comments become leading trivia; newlines are significant
// and come out as tokens of their own.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1-token lookahead buffer
	hold   []token.Trivia // collected leading trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		look:   nil,
		hold:   nil,
	}
}

// Next returns the next significant token with its Leading trivia attached.
// After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		tok := token.Token{
			Kind: token.EOF,
			Span: lx.emptySpan(),
			Text: "",
		}
		// keep trailing comments reachable for highlighters
		tok.Leading = lx.hold
		lx.hold = nil
		return tok
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == '\n':
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		tok = token.Token{Kind: token.Newline, Span: lx.cursor.SpanFrom(start), Text: "\n"}

	case isWordStart(ch):
		tok = lx.scanWord()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '-' && lx.isDigitAfterMinus():
		tok = lx.scanNumber()

	case ch == '"':
		if b0, b1, b2, ok := lx.cursor.Peek3(); ok && b0 == '"' && b1 == '"' && b2 == '"' {
			tok = lx.scanDocstring()
		} else {
			tok = lx.scanString()
		}

	default:
		tok = lx.scanPunct()
	}

	tok.Leading = lx.hold
	lx.hold = nil

	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Peek()

	var kind token.Kind
	switch b {
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case ',':
		kind = token.Comma
	default:
		// unknown byte: consume one whole rune so multibyte characters
		// are not split across error tokens
		lx.bumpRune()
		sp := lx.cursor.SpanFrom(start)
		text := string(lx.file.Content[sp.Start:sp.End])
		lx.errLex(diag.LexUnexpectedChar, sp, "unexpected character: "+quoteChar(text))
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}

	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// Tokenize scans the whole file into a slice, EOF token included.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}
