package parser

import (
	"strconv"
	"strings"

	"github.com/tbsvttr/weltenwanderer2/internal/ast"
	"github.com/tbsvttr/weltenwanderer2/internal/diag"
	"github.com/tbsvttr/weltenwanderer2/internal/source"
	"github.com/tbsvttr/weltenwanderer2/internal/token"
)

// numericText strips the readability underscores from a number lexeme.
func numericText(raw string) string {
	return strings.ReplaceAll(raw, "_", "")
}

// parseValue reads a single property value. On a token that cannot
// start a value it returns false without reporting; the caller knows
// the context. An Invalid token is consumed silently because the lexer
// already reported it.
func (p *Parser) parseValue() (ast.Value, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.StringLit:
		p.advance()
		return ast.Value{Kind: ast.ValueString, Str: tok.StringValue(), Span: tok.Span}, true
	case token.IntLit:
		p.advance()
		n, _ := strconv.ParseInt(numericText(tok.Text), 10, 64)
		return ast.Value{Kind: ast.ValueInt, Int: n, Span: tok.Span}, true
	case token.FloatLit:
		p.advance()
		f, _ := strconv.ParseFloat(numericText(tok.Text), 64)
		return ast.Value{Kind: ast.ValueFloat, Float: f, Span: tok.Span}, true
	case token.Word:
		p.advance()
		switch tok.Text {
		case "true":
			return ast.Value{Kind: ast.ValueBool, Bool: true, Span: tok.Span}, true
		case "false":
			return ast.Value{Kind: ast.ValueBool, Bool: false, Span: tok.Span}, true
		}
		return ast.Value{Kind: ast.ValueWord, Str: tok.Text, Span: tok.Span}, true
	case token.LBracket:
		return p.parseListValue()
	case token.Invalid:
		p.advance()
		return ast.Value{Kind: ast.ValueInvalid, Span: tok.Span}, true
	}
	return ast.Value{}, false
}

// parseListValue reads `[ value, value, ... ]`. Newlines are allowed
// after the opening bracket, around commas and before the closing
// bracket; a trailing comma is fine. A list broken by the end of the
// body is closed implicitly with a diagnostic.
func (p *Parser) parseListValue() (ast.Value, bool) {
	open := p.advance()
	span := open.Span
	var items []ast.Value
	for {
		p.skipNewlines()
		switch {
		case p.at(token.RBracket):
			span = span.Cover(p.advance().Span)
			return ast.Value{Kind: ast.ValueList, List: items, Span: span}, true
		case p.atOr(token.RBrace, token.EOF):
			p.err(diag.SynUnclosedBracket, "missing ']' to close the list")
			return ast.Value{Kind: ast.ValueList, List: items, Span: span}, true
		}
		item, ok := p.parseValue()
		if !ok {
			p.err(diag.SynExpectValue, "expected value, got "+p.peek().Kind.String())
			p.skipToListBoundary()
		} else {
			items = append(items, item)
			span = span.Cover(item.Span)
		}
		p.skipNewlines()
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		if !p.atOr(token.RBracket, token.RBrace, token.EOF) {
			p.err(diag.SynUnexpectedToken, "expected ',' or ']' in list")
		}
	}
}

// parseNameList reads the bracketed entity list of `involving` and
// `references` clauses. Same shape as value lists, but every element is
// a name.
func (p *Parser) parseNameList() ([]ast.Name, source.Span) {
	open := p.advance() // '[', guaranteed by the dispatch lookahead
	span := open.Span
	var names []ast.Name
	for {
		p.skipNewlines()
		switch {
		case p.at(token.RBracket):
			span = span.Cover(p.advance().Span)
			return names, span
		case p.atOr(token.RBrace, token.EOF):
			p.err(diag.SynUnclosedBracket, "missing ']' to close the list")
			return names, span
		}
		name, ok := p.parseNameRef()
		if !ok {
			p.err(diag.SynExpectName, "expected entity name, got "+p.peek().Kind.String())
			p.skipToListBoundary()
		} else {
			names = append(names, name)
			span = span.Cover(name.Span)
		}
		p.skipNewlines()
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		if !p.atOr(token.RBracket, token.RBrace, token.EOF) {
			p.err(diag.SynUnexpectedToken, "expected ',' or ']' in list")
		}
	}
}

// parseNameRef reads an entity reference: a quoted string, or a greedy
// run of words. Word runs stop at any non-word token, so commas,
// brackets and newlines bound names naturally.
func (p *Parser) parseNameRef() (ast.Name, bool) {
	switch p.peek().Kind {
	case token.StringLit:
		tok := p.advance()
		return ast.Name{Text: tok.StringValue(), Span: tok.Span}, true
	case token.Word:
		first := p.advance()
		name := ast.Name{Text: first.Text, Span: first.Span}
		for p.at(token.Word) {
			tok := p.advance()
			name.Text += " " + tok.Text
			name.Span = name.Span.Cover(tok.Span)
		}
		return name, true
	}
	return ast.Name{}, false
}
