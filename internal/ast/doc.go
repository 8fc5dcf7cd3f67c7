// Package ast defines the declaration trees produced by the parser.
//
// Nodes are plain tagged structs rather than interfaces: every variant
// carries a Kind plus one populated pointer field. This keeps the trees
// trivially serialisable for the incremental cache and keeps consumers to
// a single switch per node.
//
// Every node records the span it was parsed from. Spans reference the
// source.FileID of the file version the parser saw; Rebind rewrites them
// when cached trees are attached to a different file version.
package ast
