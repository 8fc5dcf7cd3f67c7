package lsp

import "encoding/json"

func (s *Server) handleDefinition(msg *rpcMessage) error {
	var params definitionParams
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
		return s.sendResult(msg.ID, nil)
	}
	off := offsetForPositionInFile(file, params.Position)
	occ, ok := analysis.At(path, off)
	if !ok || occ.Entity == nil {
		return s.sendResult(msg.ID, nil)
	}
	def, ok := analysis.Definition(occ.Entity)
	if !ok {
		return s.sendResult(msg.ID, nil)
	}
	defFile := analysis.File(def.Path)
	if defFile == nil {
		return s.sendResult(msg.ID, nil)
	}
	return s.sendResult(msg.ID, location{
		URI:   pathToURI(def.Path),
		Range: rangeForSpan(defFile, def.Span),
	})
}
