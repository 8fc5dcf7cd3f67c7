package lsp

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/tbsvttr/weltenwanderer2/internal/lexer"
	"github.com/tbsvttr/weltenwanderer2/internal/source"
	"github.com/tbsvttr/weltenwanderer2/internal/token"
)

// semanticTokenTypes is the legend, in index order.
var semanticTokenTypes = []string{
	"keyword", "type", "property", "string", "number", "comment", "operator",
}

const (
	semKeyword uint32 = iota
	semType
	semProperty
	semString
	semNumber
	semComment
	semOperator
)

type semEntry struct {
	line   int
	char   int
	length int
	typ    uint32
}

func (s *Server) handleSemanticTokens(msg *rpcMessage) error {
	var params semanticTokensParams
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
		return s.sendResult(msg.ID, semanticTokens{Data: []uint32{}})
	}

	entries := collectSemanticEntries(file, analysis.Occurrences(path))
	return s.sendResult(msg.ID, semanticTokens{Data: encodeSemanticEntries(entries)})
}

func collectSemanticEntries(file *source.File, names []Occurrence) []semEntry {
	toks := lexer.Tokenize(file, lexer.Options{})
	entries := make([]semEntry, 0, len(toks))

	inName := func(off uint32) bool {
		for _, occ := range names {
			if occ.Span.Contains(off) {
				return true
			}
		}
		return false
	}

	for _, tok := range toks {
		for _, tr := range tok.Leading {
			if tr.Kind == token.TriviaLineComment {
				entries = appendSpanEntries(entries, file, tr.Span, semComment)
			}
		}
		var typ uint32
		switch tok.Kind {
		case token.Word:
			switch {
			case inName(tok.Span.Start):
				typ = semType
			case token.IsKeywordText(tok.Text):
				typ = semKeyword
			default:
				typ = semProperty
			}
		case token.StringLit, token.DocstringLit:
			typ = semString
		case token.IntLit, token.FloatLit:
			typ = semNumber
		case token.LBrace, token.RBrace, token.LBracket, token.RBracket,
			token.LParen, token.RParen, token.Comma:
			typ = semOperator
		default:
			continue
		}
		entries = appendSpanEntries(entries, file, tok.Span, typ)
	}
	return entries
}

// appendSpanEntries adds one entry per line the span touches; LSP
// semantic tokens may not cross line boundaries.
func appendSpanEntries(entries []semEntry, file *source.File, span source.Span, typ uint32) []semEntry {
	content := file.Content
	start := span.Start
	for start < span.End {
		end := span.End
		if nl := bytes.IndexByte(content[start:end], '\n'); nl >= 0 {
			end = start + safeUint32(nl)
		}
		if end > start {
			pos := positionForOffsetInFile(file, start)
			entries = append(entries, semEntry{
				line:   pos.Line,
				char:   pos.Character,
				length: utf16Len(content[start:end]),
				typ:    typ,
			})
		}
		start = end + 1 // skip the newline
	}
	return entries
}

func encodeSemanticEntries(entries []semEntry) []uint32 {
	slices.SortStableFunc(entries, func(a, b semEntry) int {
		if a.line != b.line {
			return a.line - b.line
		}
		return a.char - b.char
	})
	data := make([]uint32, 0, len(entries)*5)
	prevLine, prevChar := 0, 0
	for _, e := range entries {
		deltaLine := e.line - prevLine
		deltaChar := e.char
		if deltaLine == 0 {
			deltaChar = e.char - prevChar
		}
		data = append(data,
			safeUint32(deltaLine), safeUint32(deltaChar), safeUint32(e.length),
			e.typ, 0)
		prevLine, prevChar = e.line, e.char
	}
	return data
}
