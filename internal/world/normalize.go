package world

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize maps an entity name to its lookup key: NFC form, lower
// case, whitespace collapsed, and one leading English article removed.
// "The Iron Hills", "the  iron hills" and "Iron Hills" all share one
// key, so references may drop or add the article freely.
func Normalize(name string) string {
	s := norm.NFC.String(name)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return StripArticle(s)
}

// StripArticle removes one leading "the ", "a " or "an " from an
// already lowercased name.
func StripArticle(s string) string {
	for _, art := range [...]string{"the ", "an ", "a "} {
		if rest, ok := strings.CutPrefix(s, art); ok {
			return rest
		}
	}
	return s
}
