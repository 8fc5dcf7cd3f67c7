// Package driver assembles the compile pipeline: snapshot in, world
// out. It owns the incremental cache that skips re-parsing files whose
// content fingerprint is unchanged, fans the remaining parses out over
// a worker pool, and feeds the merged program through the resolver.
//
// Single-file entry points (ParseFile, Tokenize) back the inspection
// commands; Compile and Cache.Compile back checking, the exporter and
// the language server.
package driver
