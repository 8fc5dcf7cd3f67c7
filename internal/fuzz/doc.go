// Package fuzztests houses Go fuzz harnesses that exercise the early
// pipeline (source -> lexer -> parser) on arbitrary bytes. Its goal is
// to smoke test robustness and guard against panics, hangs, and
// allocator explosions on malformed .ww input.
//
// It does not generate corpora, write files, or run the CLI.
package fuzztests
