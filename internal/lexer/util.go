package lexer

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"fortio.org/safecast"
)

// ASCII classifiers matching the word and number grammar.

func isWordStart(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isWordContinue(b byte) bool {
	return isWordStart(b) || isDec(b) || b == '_' || b == '\'' || b == '-'
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

// bumpRune advances over one whole UTF-8 rune.
func (lx *Lexer) bumpRune() {
	if lx.cursor.EOF() {
		return
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf {
		lx.cursor.Bump()
		return
	}
	_, sz := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
	usz, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(fmt.Errorf("bumpRune overflow: %w", err))
	}
	lx.cursor.Off += usz
}

// quoteChar renders a character for error messages: 'x' for printable
// characters, a quoted escape otherwise.
func quoteChar(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	return strconv.QuoteRune(r)
}
