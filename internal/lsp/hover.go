package lsp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tbsvttr/weltenwanderer2/internal/world"
)

func (s *Server) handleHover(msg *rpcMessage) error {
	var params hoverParams
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
	if !ok {
		return s.sendResult(msg.ID, nil)
	}
	rng := rangeForSpan(file, occ.Span)
	if occ.Entity == nil {
		return s.sendResult(msg.ID, hover{
			Contents: markupContent{
				Kind:  "markdown",
				Value: fmt.Sprintf("`%s` — undefined entity", occ.Raw),
			},
			Range: &rng,
		})
	}
	return s.sendResult(msg.ID, hover{
		Contents: markupContent{Kind: "markdown", Value: hoverMarkdown(analysis.Result.World, occ.Entity)},
		Range:    &rng,
	})
}

func hoverMarkdown(w *world.World, e *world.Entity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** · %s\n", e.Name, e.KindLabel())
	if e.Date != nil {
		fmt.Fprintf(&b, "\ndate: %s\n", e.Date)
	}
	if e.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", excerpt(e.Description, 280))
	}
	if len(e.Tags) > 0 {
		fmt.Fprintf(&b, "\ntags: %s\n", strings.Join(e.Tags, ", "))
	}
	out := w.Outgoing(e.ID)
	in := w.Incoming(e.ID)
	if len(out) > 0 || len(in) > 0 {
		b.WriteString("\n")
		for _, rel := range out {
			target := w.Get(rel.Target)
			if target == nil {
				continue
			}
			if rel.Kind == world.RelConnection {
				fmt.Fprintf(&b, "- %s to **%s**\n", rel.Direction, target.Name)
			} else {
				fmt.Fprintf(&b, "- %s → **%s**\n", rel.Kind, target.Name)
			}
		}
		if len(in) > 0 {
			fmt.Fprintf(&b, "- referenced by %d entit%s\n", len(in), plural(len(in), "y", "ies"))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func excerpt(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	cut := strings.LastIndexByte(s[:limit], ' ')
	if cut < limit/2 {
		cut = limit
	}
	return s[:cut] + "…"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
