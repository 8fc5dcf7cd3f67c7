package token

import "github.com/tbsvttr/weltenwanderer2/internal/source"

type TriviaKind uint8

const (
	// TriviaSpace covers runs of spaces, tabs and stray carriage returns.
	TriviaSpace TriviaKind = iota
	// TriviaLineComment is a "--" comment running to the end of the line.
	TriviaLineComment
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "space"
	case TriviaLineComment:
		return "comment"
	}
	return "unknown"
}

// Trivia is non-significant source text attached to the following token.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
