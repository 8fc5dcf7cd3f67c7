package token

import (
	"strings"

	"github.com/tbsvttr/weltenwanderer2/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a string, doc string or numeric literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case StringLit, DocstringLit, IntLit, FloatLit:
		return true
	default:
		return false
	}
}

// IsWord reports whether the token is a Word with exactly the given text.
// Keyword recognition is case-sensitive; only lowercase forms match.
func (t Token) IsWord(text string) bool {
	return t.Kind == Word && t.Text == text
}

// StringValue returns the contents of a StringLit token with the surrounding
// quotes removed and escape sequences processed. A missing closing quote
// (recovered token) is tolerated.
func (t Token) StringValue() string {
	s := t.Text
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return Unescape(s)
}

// DocstringValue returns the contents of a DocstringLit token with the
// triple-quote delimiters removed and surrounding whitespace trimmed.
// A missing closing delimiter (recovered token) is tolerated.
func (t Token) DocstringValue() string {
	s := t.Text
	s = strings.TrimPrefix(s, `"""`)
	s = strings.TrimSuffix(s, `"""`)
	return strings.TrimSpace(s)
}

// Unescape processes the escape sequences \n, \t, \\ and \" in s.
// Unknown escapes are kept verbatim, backslash included.
func Unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
