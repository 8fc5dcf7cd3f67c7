package lsp

import (
	"encoding/json"
	"fmt"
	"strings"
)

func (s *Server) handleReferences(msg *rpcMessage) error {
	var params referenceParams
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
		return s.sendResult(msg.ID, []location{})
	}
	off := offsetForPositionInFile(file, params.Position)
	occ, ok := analysis.At(path, off)
	if !ok || occ.Entity == nil {
		return s.sendResult(msg.ID, []location{})
	}
	locs := make([]location, 0)
	for _, ref := range analysis.References(occ.Entity, params.Context.IncludeDeclaration) {
		refFile := analysis.File(ref.Path)
		if refFile == nil {
			continue
		}
		locs = append(locs, location{URI: pathToURI(ref.Path), Range: rangeForSpan(refFile, ref.Span)})
	}
	return s.sendResult(msg.ID, locs)
}

func (s *Server) handleRename(msg *rpcMessage) error {
	var params renameParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}
	newName := strings.TrimSpace(params.NewName)
	if newName == "" {
		return s.sendError(msg.ID, -32602, "new name is empty")
	}
	analysis, err := s.analysis()
	if err != nil {
		return s.sendError(msg.ID, -32603, err.Error())
	}
	path := uriToPath(params.TextDocument.URI)
	file := analysis.File(path)
	if file == nil {
		return s.sendResult(msg.ID, nil)
	}
	off := offsetForPositionInFile(file, params.Position)
	occ, ok := analysis.At(path, off)
	if !ok || occ.Entity == nil {
		return s.sendError(msg.ID, -32602, "no entity at position")
	}
	if other, taken := analysis.Result.World.Lookup(newName); taken && other.ID != occ.Entity.ID {
		return s.sendError(msg.ID, -32602, fmt.Sprintf("an entity named %q already exists", other.Name))
	}

	edit := workspaceEdit{Changes: make(map[string][]textEdit)}
	for _, ref := range analysis.References(occ.Entity, true) {
		refFile := analysis.File(ref.Path)
		if refFile == nil {
			continue
		}
		uri := pathToURI(ref.Path)
		edit.Changes[uri] = append(edit.Changes[uri], textEdit{
			Range:   rangeForSpan(refFile, ref.Span),
			NewText: renameSpelling(ref.Raw, newName),
		})
	}
	return s.sendResult(msg.ID, edit)
}

// renameSpelling keeps a written leading article when the new name
// does not bring its own, so `the Tower` renames to `the Spire`.
func renameSpelling(oldRaw, newName string) string {
	lowerNew := strings.ToLower(newName)
	for _, art := range [...]string{"the ", "an ", "a "} {
		if strings.HasPrefix(lowerNew, art) {
			return newName
		}
	}
	lowerOld := strings.ToLower(oldRaw)
	for _, art := range [...]string{"the ", "an ", "a "} {
		if strings.HasPrefix(lowerOld, art) {
			return oldRaw[:len(art)] + newName
		}
	}
	return newName
}
