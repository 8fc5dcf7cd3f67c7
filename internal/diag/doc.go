// Package diag defines the diagnostic model shared by all pipeline phases.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture
//     findings produced by the lexer, parser, merger and resolver.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//   - Model fix suggestions as structured edits that the driver, CLI or
//     language server can materialise and optionally apply.
//
// # Scope
//
// Package diag does not perform any formatting, IO or CLI integration.
// Rendering responsibilities live in internal/diagfmt; orchestration lives
// in the driver layer. Diagnostics are plain values: no phase ever aborts
// on a finding, it records it and keeps going.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//   - Fixes – optional Fix records describing how to address the problem.
//
// Notes should be used sparingly: each note must add new context (e.g.
// "first defined here") rather than repeating the diagnostic message.
package diag
