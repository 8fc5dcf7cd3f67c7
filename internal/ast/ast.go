package ast

import (
	"github.com/tbsvttr/weltenwanderer2/internal/source"
)

// File is the parse result of one source file.
type File struct {
	Decls []Decl
}

// Name is a resolved piece of display text with its source span.
// Multi-word names are joined with single spaces; quoted names keep their
// text verbatim (after escape processing).
type Name struct {
	Text string
	Span source.Span
}

// DeclKind discriminates top-level declarations.
type DeclKind uint8

const (
	DeclInvalid DeclKind = iota
	DeclWorld
	DeclEntity
)

// Decl is a top-level declaration. Exactly one variant field is non-nil,
// matching Kind.
type Decl struct {
	Kind   DeclKind
	World  *WorldDecl
	Entity *EntityDecl
	Span   source.Span
}

// WorldDecl is a `world "Title" { ... }` block.
type WorldDecl struct {
	Title Name
	Body  []Stmt
}

// EntityDecl is a `Name (annotations) is a kind { ... }` declaration.
type EntityDecl struct {
	Name        Name
	Annotations []Annotation
	Kind        Name
	Body        []Stmt
}

// Annotation is one clause of the parenthesized list before `is`,
// e.g. `(leader of the Silver Company)`.
type Annotation struct {
	Keyword RelKeyword
	Target  Name
	Span    source.Span
}
