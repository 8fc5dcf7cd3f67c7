package ast

import (
	"github.com/tbsvttr/weltenwanderer2/internal/source"
)

// StmtKind discriminates the statement forms allowed inside a body.
type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtProperty
	StmtRelation
	StmtExit
	StmtDate
	StmtDescription
	StmtBlock
)

// Stmt is one statement of a declaration body. Exactly one variant field is
// non-nil, matching Kind.
type Stmt struct {
	Kind        StmtKind
	Property    *Property
	Relation    *Relation
	Exit        *Exit
	Date        *DateLit
	Description *Description
	Block       *Block
	Span        source.Span
}

// Property is a `key value` statement.
type Property struct {
	Key   Name
	Value Value
}

// Relation is a relationship clause such as `led by Kael` or
// `involving [the Sundering, Kael]`.
type Relation struct {
	Keyword     RelKeyword
	KeywordSpan source.Span
	Targets     []Name
}

// Exit is a directional connection, e.g. `north to the Old Keep`.
type Exit struct {
	Direction Name
	Target    Name
}

// DateField is one `year 1247` style field of a date statement.
type DateField struct {
	Key  Name
	Int  int64  // year, month, day
	Str  string // era
	Span source.Span
}

// DateLit is a `date` statement with its fields in source order.
// Later fields override earlier ones with the same key.
type DateLit struct {
	Fields []DateField
}

// Description is a triple-quoted description block.
type Description struct {
	Text string
}

// Block is a named nested group of statements, e.g. `appearance { ... }`.
type Block struct {
	Name Name
	Body []Stmt
}

// WalkStmts calls fn for every statement in body, descending into nested
// blocks. It stops early when fn returns false.
func WalkStmts(body []Stmt, fn func(*Stmt) bool) bool {
	for i := range body {
		st := &body[i]
		if !fn(st) {
			return false
		}
		if st.Kind == StmtBlock && st.Block != nil {
			if !WalkStmts(st.Block.Body, fn) {
				return false
			}
		}
	}
	return true
}
