package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline is a significant line break separating statements.
	Newline
	// Word represents a bare word: names, property keys and contextual keywords.
	Word
	// StringLit represents a double-quoted single-line string.
	StringLit
	// DocstringLit represents a triple-quoted description block.
	DocstringLit
	// IntLit represents an integer literal, possibly signed and grouped.
	IntLit
	// FloatLit represents a floating point literal.
	FloatLit
	// LBrace represents '{'.
	LBrace
	// RBrace represents '}'.
	RBrace
	// LBracket represents '['.
	LBracket
	// RBracket represents ']'.
	RBracket
	// LParen represents '('.
	LParen
	// RParen represents ')'.
	RParen
	// Comma represents ','.
	Comma
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case EOF:
		return "end of file"
	case Newline:
		return "newline"
	case Word:
		return "word"
	case StringLit:
		return "string"
	case DocstringLit:
		return "doc string"
	case IntLit:
		return "integer"
	case FloatLit:
		return "float"
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	case LBracket:
		return "'['"
	case RBracket:
		return "']'"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case Comma:
		return "','"
	}
	return "unknown"
}
