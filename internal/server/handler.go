package server

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/yaklabco/eslintls/internal/logging"
	"github.com/yaklabco/eslintls/internal/metrics"
	"github.com/yaklabco/eslintls/internal/watch"
	"github.com/yaklabco/eslintls/pkg/config"
	"github.com/yaklabco/eslintls/pkg/eslint"
	"github.com/yaklabco/eslintls/pkg/status"
)

// Options configures a Handler.
type Options struct {
	// Config is the file configuration. Client settings are applied on top of it.
	Config *config.Config

	// Loader builds the engine loader. Defaults to a NodeLoader.
	Loader LoaderFactory

	// Metrics records validation metrics. Nil disables them.
	Metrics *metrics.Metrics

	// Logger is the server logger. Defaults to logging.Default().
	Logger *log.Logger

	// Exit terminates the process. Defaults to os.Exit.
	Exit func(code int)
}

// DefaultLoader creates a NodeLoader for root configured by cfg.
func DefaultLoader(root string, cfg *config.Config) eslint.Loader {
	return eslint.NewNodeLoader(root, cfg.NodePath, cfg.EngineArgs())
}

// A Handler is a handler suitable for use with jsonrpc2.
type Handler struct {
	state   *State
	base    *config.Config
	client  *client
	metrics *metrics.Metrics
	logger  *log.Logger
	exit    *exitHook

	singleChain status.Chain
	batchChain  status.Chain

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu           sync.Mutex // guards the fields below
	shutdown     bool
	dynamicWatch bool
	watcher      *watch.Watcher
}

// NewHandler returns a new Handler.
func NewHandler(opts Options) *Handler {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	newLoader := opts.Loader
	if newLoader == nil {
		newLoader = DefaultLoader
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	state := NewState(cfg.Clone(), newLoader)
	cl := &client{metrics: opts.Metrics}
	deps := status.Deps{Store: state.Dedup, Notifier: cl, Documents: state.Documents}

	ctx, cancel := context.WithCancel(logging.WithLogger(context.Background(), logger))
	h := &Handler{
		state:       state,
		base:        cfg,
		client:      cl,
		metrics:     opts.Metrics,
		logger:      logger,
		singleChain: status.SingleChain(deps),
		batchChain:  status.BatchChain(deps),
		ctx:         ctx,
		cancel:      cancel,
	}
	h.exit = newExitHook(opts.Exit, cfg.ShutdownDelay, h.announceExit)
	return h
}

// SetConn attaches the connection used for server-initiated messages. Only the
// first connection is kept.
func (h *Handler) SetConn(conn Conn) {
	h.client.setConn(conn)
}

// State returns the server state.
func (h *Handler) State() *State {
	return h.state
}

// Handle implements the jsonrpc2.Handler interface.
func (h *Handler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	h.SetConn(conn)

	resp, err := h.handle(req.Method, req.Params)
	if req.Notif {
		if err != nil {
			h.logger.Error("failed to handle notification", logging.FieldMethod, req.Method, logging.FieldError, err)
		}
		return
	}
	if err != nil {
		rpcErr, ok := err.(*jsonrpc2.Error)
		if !ok {
			rpcErr = &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: err.Error()}
		}
		if err := conn.ReplyWithError(ctx, req.ID, rpcErr); err != nil {
			h.logger.Error("failed to send error response", logging.FieldError, err)
		}
		return
	}
	if err := conn.Reply(ctx, req.ID, resp); err != nil {
		h.logger.Error("failed to send response", logging.FieldError, err)
	}
}

// handle is the slightly higher-level handler that deals with individual methods.
func (h *Handler) handle(method string, params *json.RawMessage) (res any, err error) {
	start := time.Now()
	ctx, logger := logging.With(h.ctx, logging.FieldMethod, method)
	logger.Debug("received message")
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic in handler", "panic", r)
			logger.Debug(string(debug.Stack()))
			err = &jsonrpc2.Error{
				Code:    jsonrpc2.CodeInternalError,
				Message: fmt.Sprintf("%s", r),
			}
		} else {
			logger.Debug("handled message", logging.FieldDuration, time.Since(start))
		}
	}()

	switch method {
	case "initialize":
		initParams := &initializeParams{}
		if err := decode(params, initParams); err != nil {
			return nil, err
		}
		return h.initialize(ctx, initParams)
	case "initialized":
		h.initialized(ctx)
		return nil, nil
	case "shutdown":
		h.mu.Lock()
		h.shutdown = true
		h.mu.Unlock()
		return nil, nil
	case "exit":
		code := 1
		if h.ShutdownRequested() {
			code = 0
		}
		h.Terminate(code, "")
		return nil, nil
	case "textDocument/didOpen":
		openParams := &lsp.DidOpenTextDocumentParams{}
		if err := decode(params, openParams); err != nil {
			return nil, err
		}
		h.didOpen(ctx, openParams)
		return nil, nil
	case "textDocument/didChange":
		changeParams := &lsp.DidChangeTextDocumentParams{}
		if err := decode(params, changeParams); err != nil {
			return nil, err
		}
		h.didChange(ctx, changeParams)
		return nil, nil
	case "textDocument/didSave":
		saveParams := &lsp.DidSaveTextDocumentParams{}
		if err := decode(params, saveParams); err != nil {
			return nil, err
		}
		h.didSave(ctx, saveParams)
		return nil, nil
	case "textDocument/didClose":
		closeParams := &lsp.DidCloseTextDocumentParams{}
		if err := decode(params, closeParams); err != nil {
			return nil, err
		}
		h.didClose(ctx, closeParams)
		return nil, nil
	case "workspace/didChangeConfiguration":
		configParams := &didChangeConfigurationParams{}
		if err := decode(params, configParams); err != nil {
			return nil, err
		}
		return nil, h.didChangeConfiguration(ctx, configParams)
	case "workspace/didChangeWatchedFiles":
		watchedParams := &DidChangeWatchedFilesParams{}
		if err := decode(params, watchedParams); err != nil {
			return nil, err
		}
		h.didChangeWatchedFiles(ctx, watchedParams.Changes)
		return nil, nil
	case "textDocument/codeAction":
		actionParams := &lsp.CodeActionParams{}
		if err := decode(params, actionParams); err != nil {
			return nil, err
		}
		return h.codeAction(actionParams), nil
	case MethodAllFixes:
		fixesParams := &AllFixesParams{}
		if err := decode(params, fixesParams); err != nil {
			return nil, err
		}
		return h.allFixes(fixesParams), nil
	case "workspace/executeCommand":
		commandParams := &ExecuteCommandParams{}
		if err := decode(params, commandParams); err != nil {
			return nil, err
		}
		return nil, h.executeCommand(ctx, commandParams)
	case "$/cancelRequest", "$/setTrace":
		return nil, nil
	default:
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeMethodNotFound, Message: "method not found: " + method}
	}
}

func decode(params *json.RawMessage, v any) error {
	if params == nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "missing params"}
	}
	if err := json.Unmarshal(*params, v); err != nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
	}
	return nil
}

// goBackground runs fn off the connection's read goroutine. Requests sent back
// to the client wait for a response that is read on that goroutine. A panic in
// fn terminates the server.
func (h *Handler) goBackground(fn func(ctx context.Context)) {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				h.Terminate(1, fmt.Sprintf("panic: %v\n\n%s", r, debug.Stack()))
			}
		}()
		fn(h.ctx)
	}()
}

// Wait blocks until all background work has finished.
func (h *Handler) Wait() {
	h.wg.Wait()
}

// Close stops background work and the file watcher.
func (h *Handler) Close() error {
	h.cancel()
	h.mu.Lock()
	watcher := h.watcher
	h.watcher = nil
	h.mu.Unlock()
	if watcher != nil {
		return watcher.Close()
	}
	return nil
}

// schedule validates one document in the background when its language is enabled.
func (h *Handler) schedule(doc Document) {
	if !h.state.Config().ShouldValidate(doc.LanguageID) {
		return
	}
	next := job{doc: doc, gen: h.state.Begin(doc.URI)}
	h.goBackground(func(ctx context.Context) {
		h.validateSingle(ctx, next)
	})
}

// scheduleAll validates every open document whose language is enabled.
func (h *Handler) scheduleAll() {
	cfg := h.state.Config()
	var jobs []job
	for _, doc := range h.state.Documents.All() {
		if cfg.ShouldValidate(doc.LanguageID) {
			jobs = append(jobs, job{doc: doc, gen: h.state.Begin(doc.URI)})
		}
	}
	if len(jobs) == 0 {
		return
	}
	h.goBackground(func(ctx context.Context) {
		h.validateMany(ctx, jobs)
	})
}
