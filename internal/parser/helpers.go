package parser

import (
	"github.com/tbsvttr/weltenwanderer2/internal/diag"
	"github.com/tbsvttr/weltenwanderer2/internal/source"
	"github.com/tbsvttr/weltenwanderer2/internal/token"
)

// advance eats the next token and updates lastSpan. The cursor never
// moves past the trailing EOF.
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan returns the best span for a diagnostic at the
// cursor. A zero-length EOF or Invalid peek is replaced by the position
// right after the last consumed token.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if (peek.Kind == token.EOF || peek.Kind == token.Invalid) && peek.Span.Len() == 0 {
		if p.lastSpan.End > 0 {
			return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
		}
	}
	return peek.Span
}

// expect eats a token of the given kind. If the cursor holds anything
// else it reports and returns (invalid, false) without consuming.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.getDiagnosticSpan()
	p.report(code, diag.SevError, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: p.peek().Text}, false
}

// err reports an error at the cursor.
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	return p.reportFull(code, sev, sp, msg, nil, nil)
}

func (p *Parser) reportFull(code diag.Code, sev diag.Severity, sp source.Span, msg string, notes []diag.Note, fixes []diag.Fix) bool {
	if p.opts.Reporter == nil {
		return false
	}
	enough := p.opts.Enough()
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if enough {
		return false
	}
	p.opts.Reporter.Report(code, sev, sp, msg, notes, fixes)
	return true
}

func (p *Parser) skipNewlines() {
	for p.at(token.Newline) {
		p.advance()
	}
}

// recoverStmt skips the rest of a broken statement: up to the next
// newline or closing brace at the statement's own depth, or EOF. The
// stop token is left for the body loop.
func (p *Parser) recoverStmt() {
	depth := 0
	for {
		switch p.peek().Kind {
		case token.EOF:
			return
		case token.Newline:
			if depth == 0 {
				return
			}
			p.advance()
		case token.LBrace:
			depth++
			p.advance()
		case token.RBrace:
			if depth == 0 {
				return
			}
			depth--
			p.advance()
		default:
			p.advance()
		}
	}
}

// skipToListBoundary advances past a broken list element, stopping at a
// comma, a closing bracket, or anything that ends the surrounding body.
func (p *Parser) skipToListBoundary() {
	for !p.atOr(token.Comma, token.RBracket, token.RBrace, token.EOF) {
		p.advance()
	}
}
