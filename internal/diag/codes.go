package diag

import (
	"fmt"
)

type Code uint16

const (
	// UnknownCode is the fallback for diagnostics without an assigned code.
	UnknownCode Code = 0

	// Lexical
	LexInfo                  Code = 1000
	LexUnexpectedChar        Code = 1001
	LexUnterminatedString    Code = 1002
	LexUnterminatedDocstring Code = 1003
	LexBadNumber             Code = 1004

	// Syntactic
	SynInfo                 Code = 2000
	SynUnexpectedToken      Code = 2001
	SynExpectDeclaration    Code = 2002
	SynExpectIs             Code = 2003
	SynExpectKind           Code = 2004
	SynExpectName           Code = 2005
	SynExpectValue          Code = 2006
	SynUnclosedBrace        Code = 2007
	SynUnclosedBracket      Code = 2008
	SynUnclosedParen        Code = 2009
	SynExpectNewline        Code = 2010
	SynBadDateField         Code = 2011
	SynBadAnnotation        Code = 2012
	SynDuplicateDescription Code = 2013

	// Semantic (resolution)
	SemInfo              Code = 3000
	SemDuplicateEntity   Code = 3001
	SemUndefinedEntity   Code = 3002
	SemMissingDateYear   Code = 3003
	SemDateFieldRange    Code = 3004
	SemDuplicateProperty Code = 3005
	SemWorldConflict     Code = 3006
	SemNestedClause      Code = 3007

	// IO
	IOLoadFileError Code = 4001

	// Project / manifest
	PrjManifestError Code = 5001
	PrjNoSourceFiles Code = 5002
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown diagnostic",

	LexInfo:                  "lexical note",
	LexUnexpectedChar:        "unexpected character",
	LexUnterminatedString:    "unterminated string",
	LexUnterminatedDocstring: "unterminated doc string",
	LexBadNumber:             "invalid number literal",

	SynInfo:                 "syntax note",
	SynUnexpectedToken:      "unexpected token",
	SynExpectDeclaration:    "expected declaration",
	SynExpectIs:             "expected 'is'",
	SynExpectKind:           "expected entity kind",
	SynExpectName:           "expected name",
	SynExpectValue:          "expected value",
	SynUnclosedBrace:        "missing closing brace",
	SynUnclosedBracket:      "missing closing bracket",
	SynUnclosedParen:        "missing closing parenthesis",
	SynExpectNewline:        "expected newline",
	SynBadDateField:         "invalid date field",
	SynBadAnnotation:        "invalid annotation",
	SynDuplicateDescription: "duplicate description",

	SemInfo:              "resolution note",
	SemDuplicateEntity:   "entity already exists",
	SemUndefinedEntity:   "undefined entity",
	SemMissingDateYear:   "date is missing a year",
	SemDateFieldRange:    "date field out of range",
	SemDuplicateProperty: "duplicate property",
	SemWorldConflict:     "conflicting world property",
	SemNestedClause:      "clause not allowed inside block",

	IOLoadFileError: "cannot load file",

	PrjManifestError: "invalid project manifest",
	PrjNoSourceFiles: "no source files found",
}

// ID returns the stable, user-visible identifier for the code, e.g. "LEX1002".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

// Title returns the short human description registered for the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
