package server

import (
	"context"
	"encoding/json"

	"github.com/sourcegraph/go-lsp"

	"github.com/yaklabco/eslintls/internal/configloader"
	"github.com/yaklabco/eslintls/internal/logging"
	"github.com/yaklabco/eslintls/internal/watch"
	"github.com/yaklabco/eslintls/pkg/config"
	"github.com/yaklabco/eslintls/pkg/eslint"
	"github.com/yaklabco/eslintls/pkg/langdetect"
)

// initializeParams is the subset of the initialize request the server reads.
type initializeParams struct {
	RootURI               lsp.DocumentURI `json:"rootUri,omitempty"`
	RootPath              string          `json:"rootPath,omitempty"`
	InitializationOptions json.RawMessage `json:"initializationOptions,omitempty"`
	Capabilities          struct {
		Workspace struct {
			DidChangeWatchedFiles *struct {
				DynamicRegistration bool `json:"dynamicRegistration"`
			} `json:"didChangeWatchedFiles,omitempty"`
		} `json:"workspace"`
	} `json:"capabilities"`
}

// didChangeConfigurationParams keeps the settings raw until they are parsed.
type didChangeConfigurationParams struct {
	Settings json.RawMessage `json:"settings"`
}

func (h *Handler) initialize(ctx context.Context, params *initializeParams) (*lsp.InitializeResult, error) {
	root := params.RootPath
	if params.RootURI != "" {
		if path, err := eslint.PathFromURI(string(params.RootURI)); err == nil {
			root = path
		}
	}
	h.state.SetRoot(root)

	if len(params.InitializationOptions) > 0 {
		if err := h.applySettings(params.InitializationOptions); err != nil {
			logging.FromContext(ctx).Warn("ignoring initialization options", logging.FieldError, err)
		}
	}

	watched := params.Capabilities.Workspace.DidChangeWatchedFiles
	h.mu.Lock()
	h.dynamicWatch = watched != nil && watched.DynamicRegistration
	h.mu.Unlock()

	logging.FromContext(ctx).Info("initialized workspace", logging.FieldPath, root)

	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: true,
					Change:    lsp.TDSKFull,
					Save:      &lsp.SaveOptions{},
				},
			},
			CodeActionProvider: true,
			ExecuteCommandProvider: &lsp.ExecuteCommandOptions{
				Commands: []string{CommandApplySingleFix, CommandApplySameFixes, CommandApplyAllFixes},
			},
		},
	}, nil
}

// initialized asks the client to watch ESLint configuration files. Clients that
// cannot register watchers dynamically get a server-side watcher instead.
func (h *Handler) initialized(ctx context.Context) {
	root := h.state.Root()

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.dynamicWatch {
		h.goBackground(func(ctx context.Context) {
			if err := h.client.RegisterWatchers(ctx, configloader.ESLintConfigGlobs()); err != nil {
				logging.FromContext(ctx).Warn("client refused configuration watchers", logging.FieldError, err)
			}
		})
		return
	}
	if h.watcher != nil || root == "" {
		return
	}

	watcher, err := watch.New(ctx, root, configloader.IsESLintConfig)
	if err != nil {
		logging.FromContext(ctx).Warn("cannot watch configuration files", logging.FieldPath, root, logging.FieldError, err)
		return
	}
	h.watcher = watcher
	h.goBackground(func(ctx context.Context) {
		if err := watcher.Run(ctx, h.onFilesChanged); err != nil {
			logging.FromContext(ctx).Error("file watcher stopped", logging.FieldError, err)
		}
	})
}

// onFilesChanged feeds watcher events into the watched-files handler.
func (h *Handler) onFilesChanged(changes []watch.Change) {
	events := make([]FileEvent, 0, len(changes))
	for _, change := range changes {
		events = append(events, FileEvent{
			URI:  lsp.DocumentURI(eslint.URIFromPath(change.Path)),
			Type: int(change.Type),
		})
	}
	h.didChangeWatchedFiles(h.ctx, events)
}

func (h *Handler) didOpen(ctx context.Context, params *lsp.DidOpenTextDocumentParams) {
	item := params.TextDocument
	if item.LanguageID == "" {
		path, _ := eslint.PathFromURI(string(item.URI))
		item.LanguageID = langdetect.LanguageID(path, []byte(item.Text))
		logging.FromContext(ctx).Debug("detected language", logging.FieldURI, item.URI, logging.FieldLanguage, item.LanguageID)
	}
	h.schedule(h.state.Documents.Open(item))
}

func (h *Handler) didChange(ctx context.Context, params *lsp.DidChangeTextDocumentParams) {
	uri := string(params.TextDocument.URI)
	doc, ok := h.state.Documents.Change(uri, params.TextDocument.Version, params.ContentChanges)
	if !ok {
		logging.FromContext(ctx).Warn("change for unknown document", logging.FieldURI, uri)
		return
	}
	if h.state.Config().Run == config.RunOnType {
		h.schedule(doc)
	}
}

func (h *Handler) didSave(_ context.Context, params *lsp.DidSaveTextDocumentParams) {
	if h.state.Config().Run != config.RunOnSave {
		return
	}
	if doc, ok := h.state.Documents.Get(string(params.TextDocument.URI)); ok {
		h.schedule(doc)
	}
}

func (h *Handler) didClose(ctx context.Context, params *lsp.DidCloseTextDocumentParams) {
	uri := string(params.TextDocument.URI)
	h.state.Documents.Close(uri)
	h.state.Forget(uri)
	h.client.PublishDiagnostics(ctx, uri, nil)
}

// applySettings layers client settings over the file configuration.
func (h *Handler) applySettings(raw json.RawMessage) error {
	settings, err := config.ParseSettings(raw)
	if err != nil {
		return err
	}
	h.state.SetConfig(h.base.Apply(settings))
	return nil
}

func (h *Handler) didChangeConfiguration(ctx context.Context, params *didChangeConfigurationParams) error {
	if err := h.applySettings(params.Settings); err != nil {
		logging.FromContext(ctx).Error("invalid settings", logging.FieldError, err)
		return nil
	}

	if !h.state.Config().Enabled() {
		for _, doc := range h.state.Documents.All() {
			h.state.Fixes.Clear(doc.URI)
			h.client.PublishDiagnostics(ctx, doc.URI, nil)
		}
		return nil
	}
	h.scheduleAll()
	return nil
}
