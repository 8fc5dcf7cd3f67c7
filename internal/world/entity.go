package world

import (
	"github.com/tbsvttr/weltenwanderer2/internal/ast"
	"github.com/tbsvttr/weltenwanderer2/internal/source"
)

// EntityID identifies an entity inside one resolved world. IDs are the
// indexes of the canonical declaration order, so two compiles of the
// same workspace assign the same IDs.
type EntityID uint32

// Entity is one resolved declaration.
type Entity struct {
	ID          EntityID
	Name        string // display name exactly as first declared
	Kind        Kind
	Subtype     string // location subtype word, empty otherwise
	CustomKind  string // declared kind text when Kind is KindCustom
	Description string
	Tags        []string
	Properties  map[string]ast.Value // nested blocks flattened to dotted keys
	Relations   []Relationship       // outgoing edges, Source == ID
	Date        *Date

	// Origin of the winning declaration.
	Path     string
	DeclSpan source.Span
	NameSpan source.Span
}

// KindLabel is the display label: the custom kind text, the location
// subtype, or the category name.
func (e *Entity) KindLabel() string {
	if e.Kind == KindCustom && e.CustomKind != "" {
		return e.CustomKind
	}
	if e.Subtype != "" {
		return e.Subtype
	}
	return e.Kind.String()
}

// Property returns the value stored under key (dotted for nested
// blocks).
func (e *Entity) Property(key string) (ast.Value, bool) {
	v, ok := e.Properties[key]
	return v, ok
}

// HasTag reports whether the entity carries the tag, compared
// case-insensitively under name normalization.
func (e *Entity) HasTag(tag string) bool {
	want := Normalize(tag)
	for _, t := range e.Tags {
		if Normalize(t) == want {
			return true
		}
	}
	return false
}
