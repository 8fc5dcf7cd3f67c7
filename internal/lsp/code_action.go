package lsp

import (
	"encoding/json"

	"github.com/tbsvttr/weltenwanderer2/internal/source"
)

func (s *Server) handleCodeAction(msg *rpcMessage) error {
	var params codeActionParams
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
		return s.sendResult(msg.ID, []codeAction{})
	}
	reqStart := offsetForPositionInFile(file, params.Range.Start)
	reqEnd := offsetForPositionInFile(file, params.Range.End)

	actions := make([]codeAction, 0)
	for _, d := range analysis.Result.Bag.Items() {
		if len(d.Fixes) == 0 {
			continue
		}
		primaryFile := analysis.Result.FileSet.Get(d.Primary.File)
		if primaryFile == nil || primaryFile.Path != path {
			continue
		}
		if !spansTouch(d.Primary, reqStart, reqEnd) {
			continue
		}
		ld := lspDiagnostic{
			Range:    rangeForSpan(primaryFile, d.Primary),
			Severity: lspSeverity(d.Severity),
			Code:     d.Code.ID(),
			Source:   "ww",
			Message:  d.Message,
		}
		for _, f := range d.Fixes {
			edit := workspaceEdit{Changes: make(map[string][]textEdit)}
			valid := true
			for _, e := range f.Edits {
				editFile := analysis.Result.FileSet.Get(e.Span.File)
				if editFile == nil {
					valid = false
					break
				}
				uri := pathToURI(editFile.Path)
				edit.Changes[uri] = append(edit.Changes[uri], textEdit{
					Range:   rangeForSpan(editFile, e.Span),
					NewText: e.NewText,
				})
			}
			if !valid {
				continue
			}
			actions = append(actions, codeAction{
				Title:       f.Title,
				Kind:        "quickfix",
				Diagnostics: []lspDiagnostic{ld},
				Edit:        &edit,
			})
		}
	}
	return s.sendResult(msg.ID, actions)
}

// spansTouch reports whether the diagnostic span and the request range
// overlap, a zero-width cursor on the span included.
func spansTouch(sp source.Span, start, end uint32) bool {
	if start == end {
		return sp.Contains(start) || sp.End == start
	}
	return sp.Start < end && start < sp.End
}
