// Package lsp implements the stdio language server for .ww workspaces.
//
// The server owns one incremental compile cache; every request that
// needs semantic answers recompiles the workspace through it, which
// costs one parse per changed file and one resolve pass. Edits arrive
// as whole-document overlays; debouncing happens here, not in the
// compile pipeline.
package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	// ErrExit signals a graceful shutdown after receiving "exit".
	ErrExit = errors.New("lsp exit")
	// ErrExitWithoutShutdown signals an "exit" without a preceding "shutdown".
	ErrExitWithoutShutdown = errors.New("lsp exit without shutdown")
)

// ServerOptions configures server behavior.
type ServerOptions struct {
	// Debounce delays diagnostics publication after an edit burst.
	Debounce       time.Duration
	MaxDiagnostics int
	// Log receives server diagnostics lines; defaults to stderr.
	Log io.Writer
}

// Server handles stdio JSON-RPC for the ww language server.
type Server struct {
	in     *bufio.Reader
	out    *bufio.Writer
	sendMu sync.Mutex

	mu        sync.Mutex
	state     *workspaceState
	debounce  *time.Timer
	published map[string]struct{}

	root              string
	shutdownRequested bool
	debounceDelay     time.Duration
	maxDiagnostics    int
	logw              io.Writer
}

// NewServer constructs a server reading requests from in and writing
// responses to out.
func NewServer(in io.Reader, out io.Writer, opts ServerOptions) *Server {
	delay := opts.Debounce
	if delay <= 0 {
		delay = 200 * time.Millisecond
	}
	maxDiagnostics := opts.MaxDiagnostics
	if maxDiagnostics <= 0 {
		maxDiagnostics = 100
	}
	logw := opts.Log
	if logw == nil {
		logw = os.Stderr
	}
	return &Server{
		in:             bufio.NewReader(in),
		out:            bufio.NewWriter(out),
		state:          newWorkspaceState(),
		published:      make(map[string]struct{}),
		debounceDelay:  delay,
		maxDiagnostics: maxDiagnostics,
		logw:           logw,
	}
}

// Run serves requests until exit or EOF.
func (s *Server) Run(ctx context.Context) error {
	_ = ctx
	for {
		payload, err := readMessage(s.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logf("failed to parse message: %v", err)
			continue
		}
		if msg.Method == "" {
			continue
		}
		if err := s.handleMessage(&msg); err != nil {
			return err
		}
	}
}

func (s *Server) handleMessage(msg *rpcMessage) error {
	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return nil
	case "shutdown":
		s.mu.Lock()
		s.shutdownRequested = true
		s.mu.Unlock()
		return s.sendResult(msg.ID, nil)
	case "exit":
		if s.shutdownRequested {
			return ErrExit
		}
		return ErrExitWithoutShutdown
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didSave":
		return s.handleDidSave(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/hover":
		return s.handleHover(msg)
	case "textDocument/definition":
		return s.handleDefinition(msg)
	case "textDocument/references":
		return s.handleReferences(msg)
	case "textDocument/rename":
		return s.handleRename(msg)
	case "textDocument/completion":
		return s.handleCompletion(msg)
	case "textDocument/documentSymbol":
		return s.handleDocumentSymbol(msg)
	case "textDocument/codeAction":
		return s.handleCodeAction(msg)
	case "textDocument/semanticTokens/full":
		return s.handleSemanticTokens(msg)
	default:
		if len(msg.ID) > 0 {
			return s.sendError(msg.ID, -32601, "method not found")
		}
		return nil
	}
}

func (s *Server) handleInitialize(msg *rpcMessage) error {
	var params initializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	root := ""
	if params.RootURI != "" {
		root = uriToPath(params.RootURI)
	}
	if root == "" && params.RootPath != "" {
		root = params.RootPath
	}
	if root == "" && len(params.WorkspaceFolders) > 0 {
		root = uriToPath(params.WorkspaceFolders[0].URI)
	}
	if root != "" {
		if abs, err := filepath.Abs(root); err == nil {
			root = abs
		}
	}
	s.mu.Lock()
	s.root = root
	s.state.setRoot(root)
	s.mu.Unlock()
	s.logf("initialized, root=%q", root)

	result := initializeResult{
		Capabilities: serverCapabilities{
			TextDocumentSync: textDocumentSyncOptions{
				OpenClose: true,
				Change:    1, // full document sync
				Save:      saveOptions{IncludeText: false},
			},
			HoverProvider:          true,
			DefinitionProvider:     true,
			ReferencesProvider:     true,
			RenameProvider:         true,
			DocumentSymbolProvider: true,
			CompletionProvider:     &completionOptions{TriggerCharacters: []string{" "}},
			CodeActionProvider:     true,
			SemanticTokensProvider: &semanticTokensOptions{
				Legend: semanticTokensLegend{
					TokenTypes:     semanticTokenTypes,
					TokenModifiers: []string{},
				},
				Full: true,
			},
		},
	}
	return s.sendResult(msg.ID, result)
}

func (s *Server) handleDidOpen(msg *rpcMessage) error {
	var params didOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	path := uriToPath(params.TextDocument.URI)
	if path == "" {
		return nil
	}
	s.mu.Lock()
	if s.root == "" {
		if r := diskRoot(path); r != "" {
			s.root = r
			s.state.setRoot(r)
		}
	}
	s.state.openOverlay(path, params.TextDocument.Text)
	s.mu.Unlock()
	s.scheduleDiagnostics()
	return nil
}

func (s *Server) handleDidChange(msg *rpcMessage) error {
	var params didChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	path := uriToPath(params.TextDocument.URI)
	if path == "" || len(params.ContentChanges) == 0 {
		return nil
	}
	// Full sync: the last change carries the whole document.
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	s.mu.Lock()
	s.state.openOverlay(path, text)
	s.mu.Unlock()
	s.scheduleDiagnostics()
	return nil
}

func (s *Server) handleDidSave(msg *rpcMessage) error {
	var params didSaveTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	if params.Text != nil {
		if path := uriToPath(params.TextDocument.URI); path != "" {
			s.mu.Lock()
			s.state.openOverlay(path, *params.Text)
			s.mu.Unlock()
		}
	}
	s.scheduleDiagnostics()
	return nil
}

func (s *Server) handleDidClose(msg *rpcMessage) error {
	var params didCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	path := uriToPath(params.TextDocument.URI)
	if path == "" {
		return nil
	}
	s.mu.Lock()
	s.state.closeOverlay(path)
	s.mu.Unlock()
	s.scheduleDiagnostics()
	return nil
}

// analysis recompiles if needed and returns the current index.
func (s *Server) analysis() (*Analysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.analysis(s.maxDiagnostics)
}

func (s *Server) sendResult(id json.RawMessage, result any) error {
	if len(id) == 0 {
		return nil
	}
	payload := struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      json.RawMessage `json:"id"`
		Result  any             `json:"result"`
	}{JSONRPC: "2.0", ID: id, Result: result}
	return s.send(payload)
}

func (s *Server) sendError(id json.RawMessage, code int, message string) error {
	payload := struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      json.RawMessage `json:"id"`
		Error   rpcError        `json:"error"`
	}{JSONRPC: "2.0", ID: id, Error: rpcError{Code: code, Message: message}}
	return s.send(payload)
}

func (s *Server) sendNotification(method string, params any) error {
	payload := struct {
		JSONRPC string `json:"jsonrpc"`
		Method  string `json:"method"`
		Params  any    `json:"params"`
	}{JSONRPC: "2.0", Method: method, Params: params}
	return s.send(payload)
}

func (s *Server) send(payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := writeMessage(s.out, data); err != nil {
		return err
	}
	return s.out.Flush()
}

func (s *Server) logf(format string, args ...any) {
	fmt.Fprintf(s.logw, "lsp: "+format+"\n", args...)
}
