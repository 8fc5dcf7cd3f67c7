package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/tbsvttr/weltenwanderer2/internal/diag"
	"github.com/tbsvttr/weltenwanderer2/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	noteColor    = color.New(color.FgBlue)
	fixColor     = color.New(color.FgGreen)
	markerColor  = color.New(color.FgRed, color.Bold)
)

// Pretty renders diagnostics for terminals, one block per finding:
//
//	path:line:col: SEVERITY [CODE]: message
//	    <source line>
//	    ^~~~~~
//	  note: path:line:col: ...
//	  fix: title
//
// The bag is printed in its current order; call bag.Sort() first for
// the canonical file/position ordering.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	items := bag.Items()
	for i := range items {
		printDiagnostic(w, &items[i], fs, opts)
	}
}

func printDiagnostic(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	fmt.Fprintf(w, "%s: %s [%s]: %s\n",
		formatLocation(fs, d.Primary, opts.PathMode),
		paintSeverity(d.Severity, opts.Color),
		d.Code.ID(),
		d.Message,
	)
	if opts.ShowPreview {
		printPreview(w, fs, d.Primary, opts.Color)
	}
	if opts.ShowNotes {
		for _, n := range d.Notes {
			msg := n.Msg
			if opts.Color {
				msg = noteColor.Sprint(msg)
			}
			fmt.Fprintf(w, "  note: %s: %s\n", formatLocation(fs, n.Span, opts.PathMode), msg)
			if opts.ShowPreview {
				printPreview(w, fs, n.Span, opts.Color)
			}
		}
	}
	if opts.ShowFixes {
		for _, f := range d.Fixes {
			title := f.Title
			if opts.Color {
				title = fixColor.Sprint(title)
			}
			fmt.Fprintf(w, "  fix: %s\n", title)
		}
	}
}

// printPreview writes the first line the span touches with a caret
// underline. Multi-line spans underline to the end of the first line.
func printPreview(w io.Writer, fs *source.FileSet, span source.Span, colored bool) {
	file := fs.Get(span.File)
	if file == nil {
		return
	}
	start, end := fs.Resolve(span)
	line := file.GetLine(start.Line)
	if line == "" && span.Len() == 0 {
		return
	}
	expanded := strings.ReplaceAll(line, "\t", "    ")
	fmt.Fprintf(w, "    %s\n", expanded)

	// Column math after tab expansion: every tab before the marker
	// widens the prefix by three columns.
	prefix := line
	if int(start.Col)-1 <= len(line) {
		prefix = line[:start.Col-1]
	}
	pad := len(prefix) + 3*strings.Count(prefix, "\t")

	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = int(end.Col - start.Col)
	} else if end.Line > start.Line {
		width = len(expanded) - pad
	}
	if width < 1 {
		width = 1
	}
	marker := "^" + strings.Repeat("~", width-1)
	if colored {
		marker = markerColor.Sprint(marker)
	}
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", pad), marker)
}

func formatLocation(fs *source.FileSet, span source.Span, mode PathMode) string {
	file := fs.Get(span.File)
	if file == nil {
		return fmt.Sprintf("<unknown>:%d", span.Start)
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", file.FormatPath(mode.formatArg(), fs.BaseDir()), start.Line, start.Col)
}

func paintSeverity(sev diag.Severity, colored bool) string {
	s := sev.String()
	if !colored {
		return s
	}
	switch sev {
	case diag.SevError:
		return errorColor.Sprint(s)
	case diag.SevWarning:
		return warningColor.Sprint(s)
	default:
		return infoColor.Sprint(s)
	}
}

// Summary writes the closing one-liner of a check run.
func Summary(w io.Writer, bag *diag.Bag, colored bool) {
	errs, warns := 0, 0
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	switch {
	case errs > 0:
		msg := fmt.Sprintf("check failed: %d error(s), %d warning(s)", errs, warns)
		if colored {
			msg = errorColor.Sprint(msg)
		}
		fmt.Fprintln(w, msg)
	case warns > 0:
		msg := fmt.Sprintf("check passed with %d warning(s)", warns)
		if colored {
			msg = warningColor.Sprint(msg)
		}
		fmt.Fprintln(w, msg)
	default:
		msg := "check passed"
		if colored {
			msg = fixColor.Sprint(msg)
		}
		fmt.Fprintln(w, msg)
	}
}
