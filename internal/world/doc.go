// Package world holds the resolved model of a workspace: entities with
// their properties, relationships and dates, plus the query surface the
// CLI and the language server read from.
//
// Relationships are stored on their source entity only. The incoming
// view is a derived index built lazily on first use, so the model stays
// an acyclic tree that can be copied and serialized without cycles.
package world
