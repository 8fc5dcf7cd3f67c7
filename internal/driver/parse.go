package driver

import (
	"fortio.org/safecast"

	"github.com/tbsvttr/weltenwanderer2/internal/ast"
	"github.com/tbsvttr/weltenwanderer2/internal/diag"
	"github.com/tbsvttr/weltenwanderer2/internal/lexer"
	"github.com/tbsvttr/weltenwanderer2/internal/parser"
	"github.com/tbsvttr/weltenwanderer2/internal/source"
	"github.com/tbsvttr/weltenwanderer2/internal/token"
)

// DefaultMaxDiagnostics caps a run's diagnostics when the caller does
// not say otherwise.
const DefaultMaxDiagnostics = 256

// ParseResult carries everything a single-file parse produced.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	AST     *ast.File
	Bag     *diag.Bag
}

// ParseFile loads one file from disk and parses it in a fresh FileSet.
func ParseFile(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return parseOne(fs, fs.Get(id), maxDiagnostics)
}

// ParseText parses in-memory text under the given path, for stdin and
// tests.
func ParseText(path, text string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	id := fs.AddText(path, text)
	return parseOne(fs, fs.Get(id), maxDiagnostics)
}

func parseOne(fs *source.FileSet, file *source.File, maxDiagnostics int) (*ParseResult, error) {
	if maxDiagnostics <= 0 {
		maxDiagnostics = DefaultMaxDiagnostics
	}
	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(maxDiagnostics)
	tree := parser.Parse(file, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	})
	return &ParseResult{FileSet: fs, File: file, AST: tree, Bag: bag}, nil
}

// TokenizeResult carries the token stream of one file.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads one file from disk and runs only the lexer over it.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(id)

	if maxDiagnostics <= 0 {
		maxDiagnostics = DefaultMaxDiagnostics
	}
	bag := diag.NewBag(maxDiagnostics)
	toks := lexer.Tokenize(file, lexer.Options{
		Reporter: &lexer.ReporterAdapter{Bag: bag},
	})
	return &TokenizeResult{FileSet: fs, File: file, Tokens: toks, Bag: bag}, nil
}
