package parser

import (
	"slices"

	"github.com/tbsvttr/weltenwanderer2/internal/ast"
	"github.com/tbsvttr/weltenwanderer2/internal/diag"
	"github.com/tbsvttr/weltenwanderer2/internal/lexer"
	"github.com/tbsvttr/weltenwanderer2/internal/source"
	"github.com/tbsvttr/weltenwanderer2/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error cap has been reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Parser holds the state for parsing one file. The whole file is lexed
// up front: clause dispatch and declaration recovery both need several
// tokens of lookahead.
type Parser struct {
	file     *source.File
	toks     []token.Token
	pos      int
	opts     Options
	lastSpan source.Span
}

// Parse lexes and parses one file. All findings, the lexer's included,
// go through opts.Reporter; the returned tree covers everything that
// could be recovered.
func Parse(file *source.File, opts Options) *ast.File {
	p := &Parser{file: file, opts: opts}
	p.toks = lexer.Tokenize(file, lexer.Options{Reporter: lexBridge{p}})
	if len(p.toks) == 0 {
		p.toks = []token.Token{{Kind: token.EOF}}
	}
	return p.parseFile()
}

// lexBridge routes lexer findings into the parser's reporter so they
// share the error cap and land in the same bag.
type lexBridge struct{ p *Parser }

func (b lexBridge) Report(code diag.Code, span source.Span, msg string) {
	b.p.report(code, diag.SevError, span, msg)
}

func (p *Parser) peek() token.Token { return p.toks[p.pos] }

// tokAt returns the token at absolute index i, clamped to the trailing EOF.
func (p *Parser) tokAt(i int) token.Token {
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) at(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) parseFile() *ast.File {
	f := &ast.File{}
	p.skipNewlines()
	for !p.at(token.EOF) {
		decl, ok := p.parseDecl()
		if ok {
			f.Decls = append(f.Decls, decl)
			// An implicitly closed body ends right in front of the next
			// declaration; only tokens that are neither are misplaced.
			if !p.atOr(token.Newline, token.EOF) && !p.looksLikeDeclStart() {
				p.err(diag.SynExpectNewline, "expected newline after declaration")
			}
		} else {
			p.resyncTop()
		}
		p.skipNewlines()
	}
	return f
}

// resyncTop consumes tokens until the next plausible declaration start
// at brace depth zero, or EOF. At least one token is always consumed so
// the top-level loop makes progress.
func (p *Parser) resyncTop() {
	depth := 0
	for !p.at(token.EOF) {
		tok := p.advance()
		switch tok.Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth > 0 {
				depth--
			}
		case token.Newline:
			if depth == 0 && p.looksLikeDeclStart() {
				return
			}
		}
	}
}

// looksLikeDeclStart reports whether the tokens at the cursor shape a
// declaration header: `world "Title" {` or `Name (annotations)? is a? kind {`,
// all on one line with the opening brace directly after the kind. The
// brace requirement keeps body statements like `species is human` from
// being mistaken for headers.
func (p *Parser) looksLikeDeclStart() bool {
	i := p.pos
	if p.tokAt(i).IsWord("world") && p.tokAt(i+1).Kind == token.StringLit {
		return p.tokAt(i+2).Kind == token.LBrace
	}
	switch p.tokAt(i).Kind {
	case token.StringLit:
		i++
	case token.Word:
		if p.tokAt(i).IsWord("is") {
			return false
		}
		for p.tokAt(i).Kind == token.Word && !p.tokAt(i).IsWord("is") {
			i++
		}
	default:
		return false
	}
	if p.tokAt(i).Kind == token.LParen {
		for p.tokAt(i).Kind != token.RParen {
			if p.tokAt(i).Kind == token.Newline || p.tokAt(i).Kind == token.EOF {
				return false
			}
			i++
		}
		i++
	}
	if !p.tokAt(i).IsWord("is") {
		return false
	}
	i++
	if p.tokAt(i).IsWord("a") || p.tokAt(i).IsWord("an") {
		i++
	}
	switch p.tokAt(i).Kind {
	case token.Word, token.StringLit:
		return p.tokAt(i+1).Kind == token.LBrace
	}
	return false
}
