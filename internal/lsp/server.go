package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"bslint/internal/document"
	"bslint/internal/engine"
	"bslint/internal/observ"
	"bslint/internal/project"
	"bslint/internal/version"
)

var (
	// ErrExit signals a graceful shutdown after receiving "exit".
	ErrExit = errors.New("lsp exit")
	// ErrExitWithoutShutdown signals an "exit" without a preceding "shutdown".
	ErrExitWithoutShutdown = errors.New("lsp exit without shutdown")
)

// ServerOptions configures LSP server behavior.
type ServerOptions struct {
	// Engine runs the rules; its registry holds the open documents.
	Engine *engine.Engine
	Log    logrus.FieldLogger
	// ConfigPath overrides the search for bslint.toml from the workspace root.
	ConfigPath string
	// Debounce delays publishing after edits; zero publishes synchronously.
	Debounce time.Duration
	// WatchConfig reloads rule settings when the configuration file changes.
	WatchConfig bool
}

// Server handles stdio JSON-RPC for the bslint language server.
type Server struct {
	in     *bufio.Reader
	out    *bufio.Writer
	sendMu sync.Mutex

	engine   *engine.Engine
	registry *document.Registry
	log      logrus.FieldLogger
	debounce time.Duration
	baseCtx  context.Context

	mu                sync.Mutex
	open              map[string]int // uri -> версия редактора
	published         map[string]struct{}
	timers            map[string]*time.Timer
	shutdownRequested bool

	// настройки: файл конфигурации плюс переопределения клиента
	watchConfig  bool
	explicitPath string
	fileConfig   project.Config
	settings     diagnosticsSettings
	watcher      *configWatcher
}

// NewServer constructs a new LSP server.
func NewServer(in io.Reader, out io.Writer, opts ServerOptions) *Server {
	eng := opts.Engine
	if eng == nil {
		eng = engine.New(document.NewRegistry(), engine.DefaultConfig())
	}
	log := opts.Log
	if log == nil {
		log = observ.Discard()
	}
	return &Server{
		in:           bufio.NewReader(in),
		out:          bufio.NewWriter(out),
		engine:       eng,
		registry:     eng.Registry(),
		log:          log,
		debounce:     opts.Debounce,
		baseCtx:      context.Background(),
		open:         make(map[string]int),
		published:    make(map[string]struct{}),
		timers:       make(map[string]*time.Timer),
		watchConfig:  opts.WatchConfig,
		explicitPath: opts.ConfigPath,
		fileConfig:   project.DefaultConfig(""),
	}
}

// Run serves LSP requests until exit or end of input.
func (s *Server) Run(ctx context.Context) error {
	s.baseCtx = ctx
	defer s.stopWatcher()
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
			s.log.WithError(err).Warn("failed to parse message")
			if err := s.sendError(nil, codeParseError, "parse error"); err != nil {
				return err
			}
			continue
		}
		if msg.Method == "" {
			continue
		}
		if err := s.handleMessage(&msg); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

func (s *Server) handleMessage(msg *rpcMessage) error {
	s.log.WithField("method", msg.Method).Debug("request")
	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return nil
	case "shutdown":
		return s.handleShutdown(msg)
	case "exit":
		s.mu.Lock()
		requested := s.shutdownRequested
		s.mu.Unlock()
		if requested {
			return ErrExit
		}
		return ErrExitWithoutShutdown
	case "workspace/didChangeConfiguration":
		return s.handleDidChangeConfiguration(msg)
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didSave":
		return s.handleDidSave(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/codeAction":
		return s.handleCodeAction(msg)
	default:
		if len(msg.ID) > 0 {
			return s.sendError(msg.ID, codeMethodNotFound, "method not found")
		}
		return nil
	}
}

func (s *Server) handleInitialize(msg *rpcMessage) error {
	var params initializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	root := workspaceRoot(params)
	cfg, configRoot, err := resolveConfig(s.explicitPath, root)
	if err != nil {
		s.log.WithError(err).Warn("configuration not loaded, using defaults")
	}
	s.registry.SetConfigurationRoot(configRoot)

	s.mu.Lock()
	s.fileConfig = cfg
	if len(params.InitializationOptions) > 0 {
		var settings lspSettings
		if err := json.Unmarshal(params.InitializationOptions, &settings); err == nil {
			s.settings = settings.BSLint.Diagnostics
		}
	}
	s.mu.Unlock()
	s.reconfigure()

	if s.watchConfig {
		s.startWatcher(cfg.Path, configRoot)
	}
	s.log.WithFields(logrus.Fields{"root": root, "config": cfg.Path}).Info("initialized")

	result := initializeResult{
		Capabilities: serverCapabilities{
			TextDocumentSync: textDocumentSyncOptions{
				OpenClose: true,
				Change:    syncFull,
				Save:      saveOptions{IncludeText: true},
			},
			CodeActionProvider: &codeActionOptions{CodeActionKinds: []string{"quickfix"}},
		},
		ServerInfo: &serverInfo{Name: "bslint", Version: version.Version},
	}
	return s.sendResponse(msg.ID, result)
}

func (s *Server) handleShutdown(msg *rpcMessage) error {
	s.mu.Lock()
	s.shutdownRequested = true
	for uri, t := range s.timers {
		t.Stop()
		delete(s.timers, uri)
	}
	s.mu.Unlock()
	s.stopWatcher()
	return s.sendResponse(msg.ID, nil)
}

func (s *Server) handleDidOpen(msg *rpcMessage) error {
	var params didOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.invalidNotification(msg, err)
	}
	uri := params.TextDocument.URI
	if uri == "" {
		return nil
	}
	s.registry.UpsertVersion(uri, params.TextDocument.Version, params.TextDocument.Text)
	s.mu.Lock()
	s.open[uri] = params.TextDocument.Version
	s.mu.Unlock()
	return s.scheduleDiagnostics(uri)
}

func (s *Server) handleDidChange(msg *rpcMessage) error {
	var params didChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.invalidNotification(msg, err)
	}
	uri := params.TextDocument.URI
	doc, ok := s.registry.Get(uri)
	if !ok {
		s.log.WithField("uri", uri).Warn("didChange for a document that is not open")
		return nil
	}
	text := applyChanges(doc.Snapshot().Text(), params.ContentChanges)
	s.registry.UpsertVersion(uri, params.TextDocument.Version, text)
	s.mu.Lock()
	s.open[uri] = params.TextDocument.Version
	s.mu.Unlock()
	return s.scheduleDiagnostics(uri)
}

func (s *Server) handleDidSave(msg *rpcMessage) error {
	var params didSaveTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.invalidNotification(msg, err)
	}
	uri := params.TextDocument.URI
	s.mu.Lock()
	ver, isOpen := s.open[uri]
	s.mu.Unlock()
	if !isOpen {
		return nil
	}
	if params.Text != nil {
		s.registry.UpsertVersion(uri, ver, *params.Text)
	}
	return s.scheduleDiagnostics(uri)
}

func (s *Server) handleDidClose(msg *rpcMessage) error {
	var params didCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.invalidNotification(msg, err)
	}
	uri := params.TextDocument.URI
	s.registry.Remove(uri)
	s.mu.Lock()
	delete(s.open, uri)
	if t, ok := s.timers[uri]; ok {
		t.Stop()
		delete(s.timers, uri)
	}
	_, hadDiagnostics := s.published[uri]
	delete(s.published, uri)
	s.mu.Unlock()
	if hadDiagnostics {
		return s.sendPublish(uri, nil, []lspDiagnostic{})
	}
	return nil
}

// invalidNotification logs malformed notifications; they have no reply.
func (s *Server) invalidNotification(msg *rpcMessage, err error) error {
	s.log.WithError(err).WithField("method", msg.Method).Warn("invalid params")
	if len(msg.ID) > 0 {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	return nil
}

func (s *Server) openURIs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.open))
	for uri := range s.open {
		out = append(out, uri)
	}
	return out
}

func (s *Server) sendResponse(id json.RawMessage, result any) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result":  result,
	}
	return s.send(msg)
}

func (s *Server) sendError(id json.RawMessage, code int, message string) error {
	if len(id) == 0 {
		id = json.RawMessage("null")
	}
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"error": rpcError{
			Code:    code,
			Message: message,
		},
	}
	return s.send(msg)
}

func (s *Server) sendNotification(method string, params any) error {
	return s.send(map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
	})
}

func (s *Server) send(msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := writeMessage(s.out, payload); err != nil {
		return err
	}
	return s.out.Flush()
}
