package lsp

import (
	"encoding/json"
	"fmt"

	"github.com/tbsvttr/weltenwanderer2/internal/ast"
	"github.com/tbsvttr/weltenwanderer2/internal/source"
)

func (s *Server) handleDocumentSymbol(msg *rpcMessage) error {
	var params documentSymbolParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}
	analysis, err := s.analysis()
	if err != nil {
		return s.sendError(msg.ID, -32603, err.Error())
	}
	path := uriToPath(params.TextDocument.URI)
	file := analysis.File(path)
	if file == nil {
		return s.sendResult(msg.ID, []documentSymbol{})
	}

	symbols := make([]documentSymbol, 0)
	for _, fr := range analysis.Result.Files {
		if fr.Path != path || fr.AST == nil {
			continue
		}
		for i := range fr.AST.Decls {
			symbols = append(symbols, declSymbol(file, &fr.AST.Decls[i]))
		}
	}
	return s.sendResult(msg.ID, symbols)
}

func declSymbol(file *source.File, d *ast.Decl) documentSymbol {
	switch d.Kind {
	case ast.DeclWorld:
		return documentSymbol{
			Name:           fmt.Sprintf("world %q", d.World.Title.Text),
			Kind:           symbolKindModule,
			Range:          rangeForSpan(file, d.Span),
			SelectionRange: rangeForSpan(file, d.World.Title.Span),
			Children:       bodySymbols(file, d.World.Body),
		}
	case ast.DeclEntity:
		kind := symbolKindClass
		if d.Entity.Kind.Text == "event" {
			kind = symbolKindEvent
		}
		return documentSymbol{
			Name:           d.Entity.Name.Text,
			Detail:         d.Entity.Kind.Text,
			Kind:           kind,
			Range:          rangeForSpan(file, d.Span),
			SelectionRange: rangeForSpan(file, d.Entity.Name.Span),
			Children:       bodySymbols(file, d.Entity.Body),
		}
	}
	return documentSymbol{
		Name:           "invalid declaration",
		Kind:           symbolKindClass,
		Range:          rangeForSpan(file, d.Span),
		SelectionRange: rangeForSpan(file, d.Span),
	}
}

// bodySymbols lists properties and nested blocks; clauses and dates
// stay out of the outline to keep it scannable.
func bodySymbols(file *source.File, body []ast.Stmt) []documentSymbol {
	out := make([]documentSymbol, 0)
	for i := range body {
		st := &body[i]
		switch st.Kind {
		case ast.StmtProperty:
			out = append(out, documentSymbol{
				Name:           st.Property.Key.Text,
				Detail:         st.Property.Value.String(),
				Kind:           symbolKindProperty,
				Range:          rangeForSpan(file, st.Span),
				SelectionRange: rangeForSpan(file, st.Property.Key.Span),
			})
		case ast.StmtBlock:
			out = append(out, documentSymbol{
				Name:           st.Block.Name.Text,
				Kind:           symbolKindProperty,
				Range:          rangeForSpan(file, st.Span),
				SelectionRange: rangeForSpan(file, st.Block.Name.Span),
				Children:       bodySymbols(file, st.Block.Body),
			})
		}
	}
	return out
}
