package ast

// RelKeyword identifies the clause that introduced a relationship.
type RelKeyword uint8

const (
	RelInvalid RelKeyword = iota
	RelIn
	RelMemberOf
	RelLocatedAt
	RelAlliedWith
	RelRivalOf
	RelOwnedBy
	RelLedBy
	RelBasedAt
	RelCausedBy
	RelInvolving
	RelReferences
	// Active-voice forms, legal only in annotations.
	RelLeaderOf
	RelOwnerOf
)

var clauseKeywords = map[string]RelKeyword{
	"in":          RelIn,
	"member of":   RelMemberOf,
	"located at":  RelLocatedAt,
	"allied with": RelAlliedWith,
	"rival of":    RelRivalOf,
	"owned by":    RelOwnedBy,
	"led by":      RelLedBy,
	"based at":    RelBasedAt,
	"caused by":   RelCausedBy,
	"involving":   RelInvolving,
	"references":  RelReferences,
}

var annotationKeywords = map[string]RelKeyword{
	"in":          RelIn,
	"member of":   RelMemberOf,
	"located at":  RelLocatedAt,
	"allied with": RelAlliedWith,
	"rival of":    RelRivalOf,
	"owned by":    RelOwnedBy,
	"led by":      RelLedBy,
	"based at":    RelBasedAt,
	"caused by":   RelCausedBy,
	"leader of":   RelLeaderOf,
	"owner of":    RelOwnerOf,
}

// LookupRelClause maps the words of a statement clause to its keyword.
// second is empty for single-word clauses.
func LookupRelClause(first, second string) (RelKeyword, bool) {
	phrase := first
	if second != "" {
		phrase = first + " " + second
	}
	k, ok := clauseKeywords[phrase]
	return k, ok
}

// LookupAnnotationClause maps the words of an annotation clause to its
// keyword. second is empty for single-word clauses.
func LookupAnnotationClause(first, second string) (RelKeyword, bool) {
	phrase := first
	if second != "" {
		phrase = first + " " + second
	}
	k, ok := annotationKeywords[phrase]
	return k, ok
}

// Phrase returns the source phrase of the keyword.
func (k RelKeyword) Phrase() string {
	switch k {
	case RelIn:
		return "in"
	case RelMemberOf:
		return "member of"
	case RelLocatedAt:
		return "located at"
	case RelAlliedWith:
		return "allied with"
	case RelRivalOf:
		return "rival of"
	case RelOwnedBy:
		return "owned by"
	case RelLedBy:
		return "led by"
	case RelBasedAt:
		return "based at"
	case RelCausedBy:
		return "caused by"
	case RelInvolving:
		return "involving"
	case RelReferences:
		return "references"
	case RelLeaderOf:
		return "leader of"
	case RelOwnerOf:
		return "owner of"
	}
	return "unknown"
}

// TakesList reports whether the clause requires a bracketed target list.
func (k RelKeyword) TakesList() bool {
	return k == RelInvolving || k == RelReferences
}
