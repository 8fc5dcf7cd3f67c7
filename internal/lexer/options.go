package lexer

import (
	"github.com/tbsvttr/weltenwanderer2/internal/diag"
	"github.com/tbsvttr/weltenwanderer2/internal/source"
)

// Reporter is the thin interface the lexer emits findings through. The
// lexer only calls it; collecting and formatting happen in outer layers.
type Reporter interface {
	Report(code diag.Code, span source.Span, msg string)
}

type Options struct {
	Reporter Reporter // may be nil: findings are dropped but lexing continues
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, sp, msg)
	}
}
