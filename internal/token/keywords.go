package token

// Keyword identifies the structural words of the language. The lexer never
// produces keyword token kinds; the parser (and the highlighter) classify
// Word tokens through this table at the positions where the grammar gives
// them meaning.
type Keyword uint8

const (
	KwNone Keyword = iota
	KwWorld
	KwIs
	KwA
	KwAn
	KwDate
	KwYear
	KwMonth
	KwDay
	KwEra
	KwTo
	KwTrue
	KwFalse
)

var keywords = map[string]Keyword{
	"world": KwWorld,
	"is":    KwIs,
	"a":     KwA,
	"an":    KwAn,
	"date":  KwDate,
	"year":  KwYear,
	"month": KwMonth,
	"day":   KwDay,
	"era":   KwEra,
	"to":    KwTo,
	"true":  KwTrue,
	"false": KwFalse,
}

// LookupKeyword returns the keyword for a word, if any. Matching is
// case-sensitive; only lowercase forms are recognized.
func LookupKeyword(word string) (Keyword, bool) {
	k, ok := keywords[word]
	return k, ok
}

// IsKeywordText reports whether word is any structural word of the language,
// including the first words of relationship clauses, annotation forms and
// exit directions. Used for highlighting, not for parsing decisions.
func IsKeywordText(word string) bool {
	if _, ok := keywords[word]; ok {
		return true
	}
	if _, ok := relationshipStarts[word]; ok {
		return true
	}
	if _, ok := annotationStarts[word]; ok {
		return true
	}
	_, ok := directions[word]
	return ok
}

// relationshipStarts maps the first word of every relationship clause to the
// second word that completes it ("" for single-word clauses).
var relationshipStarts = map[string]string{
	"in":         "",
	"member":     "of",
	"located":    "at",
	"allied":     "with",
	"rival":      "of",
	"owned":      "by",
	"led":        "by",
	"based":      "at",
	"caused":     "by",
	"involving":  "",
	"references": "",
}

// annotationStarts lists the clause forms legal inside parenthesized
// annotations. The active-voice forms "leader of" and "owner of" exist only
// here; list clauses (involving, references) are not allowed in annotations.
var annotationStarts = map[string]string{
	"in":      "",
	"member":  "of",
	"located": "at",
	"allied":  "with",
	"rival":   "of",
	"owned":   "by",
	"led":     "by",
	"based":   "at",
	"caused":  "by",
	"leader":  "of",
	"owner":   "of",
}

// RelationshipSecondWord returns the word that must follow first to form a
// relationship clause ("" when first stands alone), and whether first can
// begin a relationship clause at all.
func RelationshipSecondWord(first string) (string, bool) {
	second, ok := relationshipStarts[first]
	return second, ok
}

// AnnotationSecondWord is RelationshipSecondWord for the annotation forms.
func AnnotationSecondWord(first string) (string, bool) {
	second, ok := annotationStarts[first]
	return second, ok
}

var directions = map[string]struct{}{
	"north":     {},
	"south":     {},
	"east":      {},
	"west":      {},
	"up":        {},
	"down":      {},
	"northeast": {},
	"northwest": {},
	"southeast": {},
	"southwest": {},
	"out":       {},
}

// IsDirection reports whether word names an exit direction.
func IsDirection(word string) bool {
	_, ok := directions[word]
	return ok
}
