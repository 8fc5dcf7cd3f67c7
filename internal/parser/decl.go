package parser

import (
	"github.com/tbsvttr/weltenwanderer2/internal/ast"
	"github.com/tbsvttr/weltenwanderer2/internal/diag"
	"github.com/tbsvttr/weltenwanderer2/internal/token"
)

func (p *Parser) parseDecl() (ast.Decl, bool) {
	if p.peek().IsWord("world") && p.tokAt(p.pos+1).Kind == token.StringLit {
		return p.parseWorldDecl()
	}
	return p.parseEntityDecl()
}

func (p *Parser) parseWorldDecl() (ast.Decl, bool) {
	kw := p.advance()
	title := p.advance() // string literal, guaranteed by the caller's lookahead
	body, ok := p.parseBlockBody()
	if !ok {
		return ast.Decl{}, false
	}
	p.checkDescriptions(body)
	w := &ast.WorldDecl{
		Title: ast.Name{Text: title.StringValue(), Span: title.Span},
		Body:  body,
	}
	return ast.Decl{Kind: ast.DeclWorld, World: w, Span: kw.Span.Cover(p.lastSpan)}, true
}

func (p *Parser) parseEntityDecl() (ast.Decl, bool) {
	name, ok := p.parseDeclName()
	if !ok {
		return ast.Decl{}, false
	}
	var anns []ast.Annotation
	if p.at(token.LParen) {
		anns = p.parseAnnotations()
	}
	if !p.peek().IsWord("is") {
		p.err(diag.SynExpectIs, "expected 'is' after \""+name.Text+"\"")
		return ast.Decl{}, false
	}
	p.advance()
	if p.peek().IsWord("a") || p.peek().IsWord("an") {
		p.advance()
	}
	kind, ok := p.parseKind()
	if !ok {
		return ast.Decl{}, false
	}
	body, ok := p.parseBlockBody()
	if !ok {
		return ast.Decl{}, false
	}
	p.checkDescriptions(body)
	e := &ast.EntityDecl{Name: name, Annotations: anns, Kind: kind, Body: body}
	return ast.Decl{Kind: ast.DeclEntity, Entity: e, Span: name.Span.Cover(p.lastSpan)}, true
}

// parseDeclName reads an entity name: a quoted string, or one or more
// words up to (not including) `is`.
func (p *Parser) parseDeclName() (ast.Name, bool) {
	if p.at(token.StringLit) {
		tok := p.advance()
		return ast.Name{Text: tok.StringValue(), Span: tok.Span}, true
	}
	if !p.at(token.Word) || p.peek().IsWord("is") {
		p.err(diag.SynExpectDeclaration, "expected declaration, got "+p.peek().Kind.String())
		return ast.Name{}, false
	}
	first := p.advance()
	name := ast.Name{Text: first.Text, Span: first.Span}
	for p.at(token.Word) && !p.peek().IsWord("is") {
		tok := p.advance()
		name.Text += " " + tok.Text
		name.Span = name.Span.Cover(tok.Span)
	}
	return name, true
}

func (p *Parser) parseKind() (ast.Name, bool) {
	switch p.peek().Kind {
	case token.Word:
		tok := p.advance()
		return ast.Name{Text: tok.Text, Span: tok.Span}, true
	case token.StringLit:
		tok := p.advance()
		return ast.Name{Text: tok.StringValue(), Span: tok.Span}, true
	}
	p.err(diag.SynExpectKind, "expected entity kind after 'is'")
	return ast.Name{}, false
}

// parseAnnotations reads the parenthesized clause list before `is`.
// The list lives on the declaration line; a newline before the closing
// parenthesis ends it with a diagnostic.
func (p *Parser) parseAnnotations() []ast.Annotation {
	p.advance() // '('
	var anns []ast.Annotation
	if p.at(token.RParen) {
		p.advance()
		return anns
	}
	for {
		if ann, ok := p.parseAnnotation(); ok {
			anns = append(anns, ann)
		} else {
			p.skipAnnotation()
		}
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		if p.at(token.RParen) {
			p.advance()
			return anns
		}
		p.err(diag.SynUnclosedParen, "missing ')' to close annotations")
		return anns
	}
}

func (p *Parser) parseAnnotation() (ast.Annotation, bool) {
	first := p.peek()
	if first.Kind != token.Word {
		p.err(diag.SynBadAnnotation, "expected annotation, got "+first.Kind.String())
		return ast.Annotation{}, false
	}
	second, isAnn := token.AnnotationSecondWord(first.Text)
	if !isAnn {
		p.report(diag.SynBadAnnotation, diag.SevError, first.Span, "unknown annotation '"+first.Text+"'")
		return ast.Annotation{}, false
	}
	p.advance()
	if second != "" {
		if !p.peek().IsWord(second) {
			p.err(diag.SynBadAnnotation, "expected '"+second+"' after '"+first.Text+"'")
			return ast.Annotation{}, false
		}
		p.advance()
	}
	kw, _ := ast.LookupAnnotationClause(first.Text, second)
	target, ok := p.parseNameRef()
	if !ok {
		p.err(diag.SynExpectName, "expected entity name after '"+kw.Phrase()+"'")
		return ast.Annotation{}, false
	}
	return ast.Annotation{Keyword: kw, Target: target, Span: first.Span.Cover(target.Span)}, true
}

func (p *Parser) skipAnnotation() {
	for !p.atOr(token.Comma, token.RParen, token.Newline, token.EOF) {
		p.advance()
	}
}

// checkDescriptions warns on every description after the first one in a
// declaration body. Descriptions inside nested blocks are counted per
// block by the resolver instead, where they become dotted keys.
func (p *Parser) checkDescriptions(body []ast.Stmt) {
	seen := false
	var first ast.Stmt
	for i := range body {
		if body[i].Kind != ast.StmtDescription {
			continue
		}
		if !seen {
			seen = true
			first = body[i]
			continue
		}
		p.reportFull(diag.SynDuplicateDescription, diag.SevWarning, body[i].Span,
			"more than one description in this declaration",
			[]diag.Note{{Span: first.Span, Msg: "first description here"}}, nil)
	}
}
