package parser

import (
	"strconv"

	"github.com/tbsvttr/weltenwanderer2/internal/ast"
	"github.com/tbsvttr/weltenwanderer2/internal/diag"
	"github.com/tbsvttr/weltenwanderer2/internal/token"
)

// parseBlockBody reads `{ statements }`. It returns false only when the
// opening brace is missing. A missing closing brace is reported and the
// body is closed implicitly, either at EOF or in front of what shapes
// up as the next declaration.
func (p *Parser) parseBlockBody() ([]ast.Stmt, bool) {
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to open the body"); !ok {
		return nil, false
	}
	var body []ast.Stmt
	for {
		p.skipNewlines()
		switch {
		case p.at(token.RBrace):
			p.advance()
			return body, true
		case p.at(token.EOF):
			p.err(diag.SynUnclosedBrace, "missing '}' to close the body")
			return body, true
		case p.looksLikeDeclStart():
			p.report(diag.SynUnclosedBrace, diag.SevError, p.peek().Span, "missing '}' before the next declaration")
			return body, true
		}
		st, ok := p.parseStmt()
		if !ok {
			p.recoverStmt()
			continue
		}
		body = append(body, st)
		if !p.atOr(token.Newline, token.RBrace, token.EOF) {
			p.err(diag.SynExpectNewline, "expected newline after statement")
			p.recoverStmt()
		}
	}
}

// parseStmt dispatches on lookahead. Clause words are contextual: `led`
// opens a relationship only when `by` follows, `involving` only in
// front of a bracketed list, a direction only in front of `to`. A word
// that commits to nothing is a property key.
func (p *Parser) parseStmt() (ast.Stmt, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.DocstringLit:
		p.advance()
		d := &ast.Description{Text: tok.DocstringValue()}
		return ast.Stmt{Kind: ast.StmtDescription, Description: d, Span: tok.Span}, true
	case token.Word:
		if second, isRel := token.RelationshipSecondWord(tok.Text); isRel && p.relationCommits(tok.Text, second) {
			return p.parseRelation()
		}
		if token.IsDirection(tok.Text) && p.tokAt(p.pos+1).IsWord("to") {
			return p.parseExit()
		}
		next := p.tokAt(p.pos + 1)
		if tok.IsWord("date") && next.Kind == token.Word && isDateFieldWord(next.Text) {
			return p.parseDate()
		}
		if next.Kind == token.LBrace {
			return p.parseBlock()
		}
		return p.parseProperty()
	case token.Invalid:
		p.advance() // already reported by the lexer
		return ast.Stmt{}, false
	}
	p.err(diag.SynUnexpectedToken, "unexpected "+tok.Kind.String()+", expected a statement")
	return ast.Stmt{}, false
}

// relationCommits decides from the token after the clause word whether
// the statement is a relationship. Two-word clauses commit on their
// second word, `in` on a nameable token, list clauses on `[`.
func (p *Parser) relationCommits(first, second string) bool {
	next := p.tokAt(p.pos + 1)
	if second != "" {
		return next.IsWord(second)
	}
	if first == "in" {
		return next.Kind == token.Word || next.Kind == token.StringLit
	}
	return next.Kind == token.LBracket
}

func (p *Parser) parseRelation() (ast.Stmt, bool) {
	first := p.advance()
	second, _ := token.RelationshipSecondWord(first.Text)
	kwSpan := first.Span
	if second != "" {
		kwSpan = kwSpan.Cover(p.advance().Span)
	}
	kw, _ := ast.LookupRelClause(first.Text, second)
	rel := &ast.Relation{Keyword: kw, KeywordSpan: kwSpan}
	span := kwSpan
	if kw.TakesList() {
		targets, listSpan := p.parseNameList()
		rel.Targets = targets
		span = span.Cover(listSpan)
	} else {
		target, ok := p.parseNameRef()
		if !ok {
			p.err(diag.SynExpectName, "expected entity name after '"+kw.Phrase()+"'")
			return ast.Stmt{}, false
		}
		rel.Targets = []ast.Name{target}
		span = span.Cover(target.Span)
	}
	return ast.Stmt{Kind: ast.StmtRelation, Relation: rel, Span: span}, true
}

func (p *Parser) parseExit() (ast.Stmt, bool) {
	dir := p.advance()
	p.advance() // 'to', guaranteed by the dispatch lookahead
	target, ok := p.parseNameRef()
	if !ok {
		p.err(diag.SynExpectName, "expected destination after '"+dir.Text+" to'")
		return ast.Stmt{}, false
	}
	ex := &ast.Exit{
		Direction: ast.Name{Text: dir.Text, Span: dir.Span},
		Target:    target,
	}
	return ast.Stmt{Kind: ast.StmtExit, Exit: ex, Span: dir.Span.Cover(target.Span)}, true
}

func isDateFieldWord(word string) bool {
	switch word {
	case "year", "month", "day", "era":
		return true
	}
	return false
}

// parseDate reads `date` followed by comma-separated fields in any
// order. Fields stay on one line. On a broken field the statement keeps
// what it has and skips the rest of the line.
func (p *Parser) parseDate() (ast.Stmt, bool) {
	kw := p.advance()
	date := &ast.DateLit{}
	span := kw.Span
	for {
		field, ok := p.parseDateField()
		if !ok {
			p.recoverStmt()
			break
		}
		date.Fields = append(date.Fields, field)
		span = span.Cover(field.Span)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	return ast.Stmt{Kind: ast.StmtDate, Date: date, Span: span}, true
}

func (p *Parser) parseDateField() (ast.DateField, bool) {
	tok := p.peek()
	if tok.Kind != token.Word || !isDateFieldWord(tok.Text) {
		p.err(diag.SynBadDateField, "expected year, month, day, or era")
		return ast.DateField{}, false
	}
	key := p.advance()
	field := ast.DateField{Key: ast.Name{Text: key.Text, Span: key.Span}}
	if key.Text == "era" {
		val, ok := p.expect(token.StringLit, diag.SynBadDateField, "expected string after 'era'")
		if !ok {
			return ast.DateField{}, false
		}
		field.Str = val.StringValue()
		field.Span = key.Span.Cover(val.Span)
		return field, true
	}
	val, ok := p.expect(token.IntLit, diag.SynBadDateField, "expected integer after '"+key.Text+"'")
	if !ok {
		return ast.DateField{}, false
	}
	field.Int, _ = strconv.ParseInt(numericText(val.Text), 10, 64)
	field.Span = key.Span.Cover(val.Span)
	return field, true
}

func (p *Parser) parseBlock() (ast.Stmt, bool) {
	name := p.advance()
	body, ok := p.parseBlockBody()
	if !ok {
		return ast.Stmt{}, false
	}
	b := &ast.Block{Name: ast.Name{Text: name.Text, Span: name.Span}, Body: body}
	return ast.Stmt{Kind: ast.StmtBlock, Block: b, Span: name.Span.Cover(p.lastSpan)}, true
}

func (p *Parser) parseProperty() (ast.Stmt, bool) {
	key := p.advance()
	val, ok := p.parseValue()
	if !ok {
		p.err(diag.SynExpectValue, "expected value after '"+key.Text+"'")
		return ast.Stmt{}, false
	}
	prop := &ast.Property{Key: ast.Name{Text: key.Text, Span: key.Span}, Value: val}
	return ast.Stmt{Kind: ast.StmtProperty, Property: prop, Span: key.Span.Cover(val.Span)}, true
}
