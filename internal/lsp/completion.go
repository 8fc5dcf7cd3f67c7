package lsp

import (
	"encoding/json"
	"strings"

	"github.com/tbsvttr/weltenwanderer2/internal/source"
	"github.com/tbsvttr/weltenwanderer2/internal/world"
)

// clauseAnchors are the phrases after which an entity name is
// expected. Longer phrases first so "located at" wins over "in".
var clauseAnchors = []string{
	"headquartered at", // tolerated spelling, parser reports it
	"member of", "located at", "allied with", "rival of",
	"owned by", "led by", "based at", "caused by",
	"leader of", "owner of",
	"involving", "references",
	"north to", "south to", "east to", "west to",
	"northeast to", "northwest to", "southeast to", "southwest to",
	"up to", "down to", "out to",
	"in",
}

// statementKeywords seed completion at the start of a body line.
var statementKeywords = []string{
	"member of", "located at", "allied with", "rival of", "owned by",
	"led by", "based at", "caused by", "involving", "references", "in",
	"date year", "north to", "south to", "east to", "west to", "up to",
	"down to", "out to",
}

func (s *Server) handleCompletion(msg *rpcMessage) error {
	var params completionParams
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
		return s.sendResult(msg.ID, []completionItem{})
	}
	off := offsetForPositionInFile(file, params.Position)
	prefix := linePrefix(file, off)

	items := completionsFor(analysis.Result.World, prefix)
	return s.sendResult(msg.ID, items)
}

// linePrefix returns the text of the cursor's line left of the cursor.
func linePrefix(file *source.File, off uint32) string {
	start := off
	for start > 0 && file.Content[start-1] != '\n' {
		start--
	}
	return string(file.Content[start:off])
}

// completionsFor picks the completion set from the line prefix: entity
// kinds after `is a`, entity names after a relationship clause or exit
// direction, statement keywords at the start of a line.
func completionsFor(w *world.World, prefix string) []completionItem {
	lower := strings.ToLower(prefix)

	if partial, ok := afterKindIntroducer(lower); ok {
		items := make([]completionItem, 0)
		for _, kind := range world.Kinds() {
			if strings.HasPrefix(kind, partial) {
				items = append(items, completionItem{Label: kind, Kind: completionKindEnumItem, Detail: "entity kind"})
			}
		}
		return items
	}

	if partial, ok := afterClauseAnchor(lower); ok {
		items := make([]completionItem, 0)
		for _, name := range w.CompleteName(partial) {
			items = append(items, completionItem{Label: name, Kind: completionKindClass, Detail: "entity"})
		}
		return items
	}

	trimmed := strings.TrimLeft(lower, " \t")
	items := make([]completionItem, 0)
	for _, kw := range statementKeywords {
		if trimmed == "" || strings.HasPrefix(kw, trimmed) {
			items = append(items, completionItem{Label: kw, Kind: completionKindKeyword})
		}
	}
	return items
}

// afterKindIntroducer matches `... is a <partial>` and `... is an
// <partial>` and the bare `... is <partial>` form.
func afterKindIntroducer(lower string) (string, bool) {
	idx := strings.LastIndex(lower, " is ")
	if idx < 0 {
		return "", false
	}
	rest := lower[idx+len(" is "):]
	for _, art := range [...]string{"a ", "an "} {
		if cut, ok := strings.CutPrefix(rest, art); ok {
			rest = cut
			break
		}
	}
	if strings.ContainsAny(rest, "{}") {
		return "", false
	}
	return strings.TrimLeft(rest, " "), true
}

func afterClauseAnchor(lower string) (string, bool) {
	best := -1
	bestLen := 0
	for _, anchor := range clauseAnchors {
		needle := anchor + " "
		idx := strings.LastIndex(lower, needle)
		if idx < 0 {
			// A clause directly at the cursor still anchors.
			if strings.HasSuffix(lower, anchor) {
				idx = len(lower) - len(anchor)
				needle = anchor
			} else {
				continue
			}
		}
		// The anchor must start a word.
		if idx > 0 && lower[idx-1] != ' ' && lower[idx-1] != '\t' {
			continue
		}
		if idx+len(needle) > best+bestLen {
			best = idx
			bestLen = len(needle)
		}
	}
	if best < 0 {
		return "", false
	}
	partial := strings.TrimLeft(lower[best+bestLen:], " ")
	// A comma continues a target list; complete the last element.
	if idx := strings.LastIndexByte(partial, ','); idx >= 0 {
		partial = strings.TrimLeft(partial[idx+1:], " ")
	}
	partial = strings.TrimLeft(partial, "[")
	return strings.TrimLeft(partial, " "), true
}
