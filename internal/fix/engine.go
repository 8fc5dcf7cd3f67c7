// Package fix applies the suggested fixes carried by diagnostics to
// the source text they were produced from.
package fix

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/tbsvttr/weltenwanderer2/internal/diag"
	"github.com/tbsvttr/weltenwanderer2/internal/source"
)

// ErrNoFixes is returned when no fix could be applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode selects how many fixes one Apply call takes on.
type ApplyMode uint8

const (
	// ApplyModeOnce applies only the first applicable fix.
	ApplyModeOnce ApplyMode = iota
	// ApplyModeAll applies every applicable, non-conflicting fix.
	ApplyModeAll
)

// ApplyOptions configures fix selection.
type ApplyOptions struct {
	Mode ApplyMode
	// Code, when nonzero, restricts application to fixes attached to
	// diagnostics with that code.
	Code diag.Code
}

// AppliedFix records one successfully applied fix.
type AppliedFix struct {
	Title     string
	Code      diag.Code
	Message   string
	Path      string
	EditCount int
}

// SkippedFix records a fix that was passed over, with the reason.
type SkippedFix struct {
	Title  string
	Reason string
}

// Result is the outcome of one Apply call. Files holds the rewritten
// content per path; untouched files do not appear.
type Result struct {
	Applied []AppliedFix
	Skipped []SkippedFix
	Files   map[string][]byte
}

type candidate struct {
	d   *diag.Diagnostic
	fix *diag.Fix
}

// Apply selects fixes according to opts and computes the rewritten
// file contents. All edit spans refer to the original text; edits are
// applied back to front so earlier offsets stay valid. Fixes whose
// edits overlap an already-accepted edit are skipped, not mangled.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*Result, error) {
	if fs == nil {
		return nil, fmt.Errorf("fix: nil FileSet")
	}
	res := &Result{Files: make(map[string][]byte)}

	var selected []candidate
	taken := make(map[source.FileID][]source.Span)
	for i := range diagnostics {
		d := &diagnostics[i]
		if opts.Code != 0 && d.Code != opts.Code {
			continue
		}
		for j := range d.Fixes {
			f := &d.Fixes[j]
			if len(f.Edits) == 0 {
				res.Skipped = append(res.Skipped, SkippedFix{Title: f.Title, Reason: "fix has no edits"})
				continue
			}
			if conflicts(taken, f.Edits) {
				res.Skipped = append(res.Skipped, SkippedFix{Title: f.Title, Reason: "overlaps an already applied fix"})
				continue
			}
			for _, e := range f.Edits {
				taken[e.Span.File] = append(taken[e.Span.File], e.Span)
			}
			selected = append(selected, candidate{d: d, fix: f})
			if opts.Mode == ApplyModeOnce {
				goto apply
			}
		}
	}

apply:
	if len(selected) == 0 {
		return res, ErrNoFixes
	}

	edits := make(map[source.FileID][]diag.FixEdit)
	for _, c := range selected {
		for _, e := range c.fix.Edits {
			edits[e.Span.File] = append(edits[e.Span.File], e)
		}
		primary := fs.Get(c.d.Primary.File)
		path := ""
		if primary != nil {
			path = primary.Path
		}
		res.Applied = append(res.Applied, AppliedFix{
			Title:     c.fix.Title,
			Code:      c.d.Code,
			Message:   c.d.Message,
			Path:      path,
			EditCount: len(c.fix.Edits),
		})
	}

	for id, fileEdits := range edits {
		file := fs.Get(id)
		if file == nil {
			return res, fmt.Errorf("fix: file %d not in FileSet", id)
		}
		content, err := applyEdits(file.Content, fileEdits)
		if err != nil {
			return res, fmt.Errorf("fix: %s: %w", file.Path, err)
		}
		res.Files[file.Path] = content
	}
	return res, nil
}

func conflicts(taken map[source.FileID][]source.Span, edits []diag.FixEdit) bool {
	for _, e := range edits {
		for _, sp := range taken[e.Span.File] {
			if e.Span.Start < sp.End && sp.Start < e.Span.End {
				return true
			}
			// Two insertions at the same offset would be order-dependent.
			if e.Span.Empty() && sp.Empty() && e.Span.Start == sp.Start {
				return true
			}
		}
	}
	return false
}

func applyEdits(content []byte, edits []diag.FixEdit) ([]byte, error) {
	sorted := slices.Clone(edits)
	slices.SortFunc(sorted, func(a, b diag.FixEdit) int {
		switch {
		case a.Span.Start != b.Span.Start:
			return int(b.Span.Start) - int(a.Span.Start)
		default:
			return int(b.Span.End) - int(a.Span.End)
		}
	})
	out := slices.Clone(content)
	for _, e := range sorted {
		if int(e.Span.End) > len(out) || e.Span.Start > e.Span.End {
			return nil, fmt.Errorf("edit span %s out of range", e.Span)
		}
		out = append(out[:e.Span.Start], append([]byte(e.NewText), out[e.Span.End:]...)...)
	}
	return out, nil
}

// Write stores the rewritten files back to disk.
func (r *Result) Write() error {
	for path, content := range r.Files {
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return fmt.Errorf("fix: write %s: %w", path, err)
		}
	}
	return nil
}
