package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tbsvttr/weltenwanderer2/internal/source"
	"github.com/tbsvttr/weltenwanderer2/internal/token"
)

// TokenOutput is one token in the JSON dump.
type TokenOutput struct {
	Kind      string `json:"kind"`
	Text      string `json:"text,omitempty"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	Leading   []string `json:"leading,omitempty"`
}

// FormatTokensPretty writes one numbered line per token.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		start, end := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%3d: %-12s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" && tok.Kind != token.Newline {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)

		if len(tok.Leading) > 0 {
			names := make([]string, len(tok.Leading))
			for j, tr := range tok.Leading {
				names[j] = tr.Kind.String()
			}
			fmt.Fprintf(w, " (leading: %s)", strings.Join(names, ", "))
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON writes the token stream as a JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		item := TokenOutput{
			Kind:      tok.Kind.String(),
			Text:      tok.Text,
			StartByte: tok.Span.Start,
			EndByte:   tok.Span.End,
		}
		for _, tr := range tok.Leading {
			item.Leading = append(item.Leading, tr.Kind.String())
		}
		out = append(out, item)
		if tok.Kind == token.EOF {
			break
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
