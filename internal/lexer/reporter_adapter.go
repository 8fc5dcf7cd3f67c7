package lexer

import (
	"github.com/tbsvttr/weltenwanderer2/internal/diag"
	"github.com/tbsvttr/weltenwanderer2/internal/source"
)

// ReporterAdapter bridges the lexer's thin Reporter to a diag.Bag.
// All lexical findings are errors.
type ReporterAdapter struct {
	Bag *diag.Bag
}

func (r *ReporterAdapter) Report(code diag.Code, span source.Span, msg string) {
	if r == nil || r.Bag == nil {
		return
	}
	r.Bag.Add(diag.NewError(code, span, msg))
}
