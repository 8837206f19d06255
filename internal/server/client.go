package server

import (
	"context"
	"sync"

	"github.com/sourcegraph/go-lsp"

	"github.com/yaklabco/eslintls/internal/logging"
	"github.com/yaklabco/eslintls/internal/metrics"
	"github.com/yaklabco/eslintls/pkg/status"
)

// client sends server-initiated messages. Failures to reach the client are logged,
// never returned: a lost notification must not fail a validation.
type client struct {
	metrics *metrics.Metrics

	mu   sync.Mutex
	conn Conn
}

var _ status.Notifier = (*client)(nil)

// setConn attaches conn unless a connection is already attached.
func (c *client) setConn(conn Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		c.conn = conn
	}
}

func (c *client) current() Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn
}

func (c *client) notify(ctx context.Context, method string, params any) {
	conn := c.current()
	if conn == nil {
		return
	}
	if err := conn.Notify(ctx, method, params); err != nil {
		logging.FromContext(ctx).Error("failed to send notification", logging.FieldMethod, method, logging.FieldError, err)
	}
}

func (c *client) call(ctx context.Context, method string, params, result any) error {
	conn := c.current()
	if conn == nil {
		return nil
	}
	if err := conn.Call(ctx, method, params, result); err != nil {
		logging.FromContext(ctx).Error("request to client failed", logging.FieldMethod, method, logging.FieldError, err)
		return err
	}
	return nil
}

// NoConfig implements status.Notifier.
func (c *client) NoConfig(ctx context.Context, uri, message string) {
	c.metrics.ObserveNotice("noConfig")
	_ = c.call(ctx, MethodNoConfig, NoConfigParams{
		Message:  message,
		Document: lsp.TextDocumentIdentifier{URI: lsp.DocumentURI(uri)},
	}, nil)
}

// NoLibrary sends eslint/noLibrary for uri.
func (c *client) NoLibrary(ctx context.Context, uri string) {
	c.metrics.ObserveNotice("noLibrary")
	_ = c.call(ctx, MethodNoLibrary, NoLibraryParams{
		Source: lsp.TextDocumentIdentifier{URI: lsp.DocumentURI(uri)},
	}, nil)
}

// ShowMessage implements status.Notifier.
func (c *client) ShowMessage(ctx context.Context, typ lsp.MessageType, message string) {
	c.metrics.ObserveNotice(messageTypeName(typ))
	c.notify(ctx, methodShowMessage, lsp.ShowMessageParams{Type: typ, Message: message})
}

// LogMessage implements status.Notifier.
func (c *client) LogMessage(ctx context.Context, typ lsp.MessageType, message string) {
	c.notify(ctx, methodLogMessage, lsp.LogMessageParams{Type: typ, Message: message})
}

// Status sends eslint/status.
func (c *client) Status(ctx context.Context, state status.Status) {
	c.notify(ctx, MethodStatus, StatusParams{State: state})
}

// PublishDiagnostics replaces the diagnostics shown for uri.
func (c *client) PublishDiagnostics(ctx context.Context, uri string, diags []lsp.Diagnostic) {
	if diags == nil {
		diags = []lsp.Diagnostic{}
	}
	c.notify(ctx, methodPublishDiagnostics, lsp.PublishDiagnosticsParams{
		URI:         lsp.DocumentURI(uri),
		Diagnostics: diags,
	})
}

// ExitCalled sends eslint/exitCalled.
func (c *client) ExitCalled(ctx context.Context, code int, stack string) {
	c.notify(ctx, MethodExitCalled, ExitCalledParams{ExitCode: code, StackTrace: stack})
}

// RegisterWatchers asks the client to report changes to files matching globs.
func (c *client) RegisterWatchers(ctx context.Context, globs []string) error {
	watchers := make([]FileSystemWatcher, 0, len(globs))
	for _, glob := range globs {
		watchers = append(watchers, FileSystemWatcher{GlobPattern: glob})
	}
	return c.call(ctx, methodRegisterCapability, RegistrationParams{
		Registrations: []Registration{{
			ID:              "eslint-config-watchers",
			Method:          "workspace/didChangeWatchedFiles",
			RegisterOptions: DidChangeWatchedFilesRegistrationOptions{Watchers: watchers},
		}},
	}, nil)
}

// ApplyEdit asks the client to apply edit and reports whether it did.
func (c *client) ApplyEdit(ctx context.Context, label string, edit WorkspaceEdit) (bool, error) {
	var result ApplyWorkspaceEditResult
	if err := c.call(ctx, methodApplyEdit, ApplyWorkspaceEditParams{Label: label, Edit: edit}, &result); err != nil {
		return false, err
	}
	return result.Applied, nil
}

func messageTypeName(typ lsp.MessageType) string {
	switch typ {
	case lsp.MTError:
		return "error"
	case lsp.MTWarning:
		return "warning"
	case lsp.Info:
		return "info"
	default:
		return "log"
	}
}
