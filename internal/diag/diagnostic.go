package diag

import (
	"github.com/tbsvttr/weltenwanderer2/internal/source"
)

// Note attaches a secondary span with explanatory text to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit is a single text replacement; an empty span with equal Start/End
// denotes an insertion at that offset.
type FixEdit struct {
	Span    source.Span
	NewText string
}

// Fix is a suggested correction composed of one or more edits.
type Fix struct {
	Title string
	Edits []FixEdit
}

// Diagnostic is one finding produced by a pipeline phase.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
