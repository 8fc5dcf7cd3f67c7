package lexer

import (
	"github.com/tbsvttr/weltenwanderer2/internal/token"
)

// collectLeadingTrivia gathers consecutive trivia before a significant token.
//   - ' ', '\t' and stray '\r' coalesce into one TriviaSpace
//   - "--" up to (not including) the newline becomes TriviaLineComment
//
// Newlines are never trivia here: they separate statements and are emitted
// as tokens by Next.
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		// spaces/tabs/carriage returns
		if b == ' ' || b == '\t' || b == '\r' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' && b2 != '\r' {
					break
				}
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaSpace,
				Span: sp,
				Text: string(lx.file.Content[sp.Start:sp.End]),
			})
			continue
		}

		// "--" line comment
		if b == '-' {
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '-' && b1 == '-' {
				for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
					lx.cursor.Bump()
				}
				sp := lx.cursor.SpanFrom(start)
				lx.hold = append(lx.hold, token.Trivia{
					Kind: token.TriviaLineComment,
					Span: sp,
					Text: string(lx.file.Content[sp.Start:sp.End]),
				})
				continue
			}
		}

		// no more trivia
		break
	}
}
