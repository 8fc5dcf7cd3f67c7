// Package parser turns a token stream into an AST for a single file.
//
// The parser is tolerant: every syntax error is reported through the
// configured reporter and the parser resynchronizes instead of bailing
// out, so one malformed declaration never hides the rest of the file.
// Keywords are contextual; the parser decides from lookahead whether a
// word opens a relationship clause, an exit, a date, a block, or a
// plain property. Because those decisions need more than one token of
// lookahead, the parser works over the fully lexed token slice rather
// than pulling tokens one at a time.
package parser
