package world

import (
	"slices"
	"strings"
	"sync"

	"github.com/tbsvttr/weltenwanderer2/internal/ast"
)

// World is the resolved model of one workspace compile.
type World struct {
	Title      string
	Properties map[string]ast.Value // world block, nested blocks flattened
	Entities   []*Entity            // indexed by EntityID

	byName map[string]*Entity
	byKind map[Kind][]*Entity

	incomingOnce sync.Once
	incoming     map[EntityID][]Relationship
}

// New indexes the resolved entities. The slice must be in EntityID
// order with normalized names already unique; the resolver guarantees
// both.
func New(title string, properties map[string]ast.Value, entities []*Entity) *World {
	w := &World{
		Title:      title,
		Properties: properties,
		Entities:   entities,
		byName:     make(map[string]*Entity, len(entities)),
		byKind:     make(map[Kind][]*Entity),
	}
	for _, e := range entities {
		w.byName[Normalize(e.Name)] = e
		w.byKind[e.Kind] = append(w.byKind[e.Kind], e)
	}
	return w
}

// Len returns the number of entities.
func (w *World) Len() int { return len(w.Entities) }

// Get returns the entity with the given ID, or nil.
func (w *World) Get(id EntityID) *Entity {
	if int(id) >= len(w.Entities) {
		return nil
	}
	return w.Entities[id]
}

// Lookup finds an entity by name under normalization, so articles,
// case and spacing do not matter.
func (w *World) Lookup(name string) (*Entity, bool) {
	e, ok := w.byName[Normalize(name)]
	return e, ok
}

// ByKind returns the entities of one kind in declaration order.
func (w *World) ByKind(k Kind) []*Entity { return w.byKind[k] }

// List returns the entities matching pred in declaration order. A nil
// pred matches everything.
func (w *World) List(pred func(*Entity) bool) []*Entity {
	out := make([]*Entity, 0, len(w.Entities))
	for _, e := range w.Entities {
		if pred == nil || pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// Outgoing returns the edges declared on the entity.
func (w *World) Outgoing(id EntityID) []Relationship {
	e := w.Get(id)
	if e == nil {
		return nil
	}
	return e.Relations
}

// Incoming returns the edges pointing at the entity. The index over
// all entities is built once, on first use.
func (w *World) Incoming(id EntityID) []Relationship {
	w.incomingOnce.Do(func() {
		w.incoming = make(map[EntityID][]Relationship)
		for _, e := range w.Entities {
			for _, r := range e.Relations {
				w.incoming[r.Target] = append(w.incoming[r.Target], r)
			}
		}
	})
	return w.incoming[id]
}

// Timeline returns every dated entity in chronological order. Entities
// sharing a date keep declaration order.
func (w *World) Timeline() []*Entity {
	out := make([]*Entity, 0)
	for _, e := range w.Entities {
		if e.Date != nil {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b *Entity) int {
		ka, kb := a.Date.SortKey(), b.Date.SortKey()
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		}
		return 0
	})
	return out
}

// Search returns the entities whose normalized name contains the
// normalized query, sorted by name.
func (w *World) Search(query string) []*Entity {
	q := Normalize(query)
	out := make([]*Entity, 0)
	for _, e := range w.Entities {
		if strings.Contains(Normalize(e.Name), q) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b *Entity) int {
		return strings.Compare(Normalize(a.Name), Normalize(b.Name))
	})
	return out
}

// CompleteName returns the display names of entities whose normalized
// name starts with the normalized prefix, sorted. An empty prefix or a
// bare article completes every entity.
func (w *World) CompleteName(prefix string) []string {
	p := Normalize(prefix)
	switch p {
	case "the", "a", "an":
		p = ""
	}
	out := make([]string, 0)
	for _, e := range w.Entities {
		if strings.HasPrefix(Normalize(e.Name), p) {
			out = append(out, e.Name)
		}
	}
	slices.SortStableFunc(out, strings.Compare)
	return out
}

// EntityCounts tallies entities per kind.
func (w *World) EntityCounts() map[Kind]int {
	counts := make(map[Kind]int)
	for _, e := range w.Entities {
		counts[e.Kind]++
	}
	return counts
}
