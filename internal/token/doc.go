// Package token defines lexical token kinds and trivia for .ww source files.
// Invariants:
//   - Token.Text is the raw lexeme exactly as written in the source.
//   - Token.Span matches the lexeme (Start..End, byte offsets).
//   - Newlines are significant statement separators and appear as Newline
//     tokens, never as trivia.
//   - Comments (-- ...) and horizontal whitespace are leading trivia on the
//     next significant token.
//   - Keywords are contextual: the lexer always emits Word. Words like "is",
//     "date" or "north" only act as keywords where the grammar expects them,
//     so they remain usable inside entity names and as property keys.
package token
