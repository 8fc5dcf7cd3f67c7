package lsp

import (
	"time"

	"github.com/tbsvttr/weltenwanderer2/internal/diag"
)

// scheduleDiagnostics arms the debounce timer; a burst of edits ends
// in one recompile and one publish round.
func (s *Server) scheduleDiagnostics() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.debounce != nil {
		s.debounce.Stop()
	}
	s.debounce = time.AfterFunc(s.debounceDelay, func() {
		if err := s.publishDiagnostics(); err != nil {
			s.logf("publish diagnostics: %v", err)
		}
	})
}

// publishDiagnostics recompiles and pushes per-file diagnostics.
// Files that had findings last round but are clean now get an empty
// publish so the client clears its markers.
func (s *Server) publishDiagnostics() error {
	analysis, err := s.analysis()
	if err != nil {
		return err
	}

	perFile := make(map[string][]lspDiagnostic)
	for _, fr := range analysis.Result.Files {
		perFile[fr.Path] = []lspDiagnostic{}
	}
	for _, d := range analysis.Result.Bag.Items() {
		file := analysis.Result.FileSet.Get(d.Primary.File)
		if file == nil {
			continue
		}
		perFile[file.Path] = append(perFile[file.Path], lspDiagnostic{
			Range:    rangeForSpan(file, d.Primary),
			Severity: lspSeverity(d.Severity),
			Code:     d.Code.ID(),
			Source:   "ww",
			Message:  d.Message,
		})
	}

	s.mu.Lock()
	previous := s.published
	s.published = make(map[string]struct{}, len(perFile))
	for path := range perFile {
		s.published[path] = struct{}{}
	}
	s.mu.Unlock()

	for path, diags := range perFile {
		if err := s.sendNotification("textDocument/publishDiagnostics", publishDiagnosticsParams{
			URI:         pathToURI(path),
			Diagnostics: diags,
		}); err != nil {
			return err
		}
		delete(previous, path)
	}
	for path := range previous {
		if err := s.sendNotification("textDocument/publishDiagnostics", publishDiagnosticsParams{
			URI:         pathToURI(path),
			Diagnostics: []lspDiagnostic{},
		}); err != nil {
			return err
		}
	}
	return nil
}

func lspSeverity(sev diag.Severity) int {
	switch sev {
	case diag.SevError:
		return 1
	case diag.SevWarning:
		return 2
	default:
		return 3
	}
}
