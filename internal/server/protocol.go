package server

import (
	"encoding/json"

	"github.com/sourcegraph/go-lsp"

	"github.com/yaklabco/eslintls/pkg/status"
)

// Custom protocol methods.
const (
	MethodStatus     = "eslint/status"
	MethodNoConfig   = "eslint/noConfig"
	MethodNoLibrary  = "eslint/noLibrary"
	MethodAllFixes   = "textDocument/eslint/allFixes"
	MethodExitCalled = "eslint/exitCalled"
)

// Standard protocol methods sent by the server.
const (
	methodPublishDiagnostics = "textDocument/publishDiagnostics"
	methodShowMessage        = "window/showMessage"
	methodLogMessage         = "window/logMessage"
	methodApplyEdit          = "workspace/applyEdit"
	methodRegisterCapability = "client/registerCapability"
)

// Commands offered by code actions.
const (
	CommandApplySingleFix = "apply-single-fix"
	CommandApplySameFixes = "apply-same-fixes"
	CommandApplyAllFixes  = "apply-all-fixes"
)

// StatusParams is the payload of eslint/status.
type StatusParams struct {
	State status.Status `json:"state"`
}

// NoConfigParams is the payload of eslint/noConfig.
type NoConfigParams struct {
	Message  string                     `json:"message"`
	Document lsp.TextDocumentIdentifier `json:"document"`
}

// NoLibraryParams is the payload of eslint/noLibrary.
type NoLibraryParams struct {
	Source lsp.TextDocumentIdentifier `json:"source"`
}

// AllFixesParams is the payload of textDocument/eslint/allFixes.
type AllFixesParams struct {
	TextDocument lsp.TextDocumentIdentifier `json:"textDocument"`
}

// AllFixesResult is the result of textDocument/eslint/allFixes.
type AllFixesResult struct {
	DocumentVersion int            `json:"documentVersion"`
	Edits           []lsp.TextEdit `json:"edits"`
}

// ExitCalledParams is the payload of eslint/exitCalled.
type ExitCalledParams struct {
	ExitCode   int    `json:"exitCode"`
	StackTrace string `json:"stackTrace"`
}

// ExecuteCommandParams is the payload of workspace/executeCommand. Arguments of
// the fix commands are (uri, documentVersion, edits).
type ExecuteCommandParams struct {
	Command   string            `json:"command"`
	Arguments []json.RawMessage `json:"arguments,omitempty"`
}

// ApplyWorkspaceEditParams is the payload of workspace/applyEdit.
type ApplyWorkspaceEditParams struct {
	Label string        `json:"label,omitempty"`
	Edit  WorkspaceEdit `json:"edit"`
}

// ApplyWorkspaceEditResult is the client's answer to workspace/applyEdit.
type ApplyWorkspaceEditResult struct {
	Applied bool `json:"applied"`
}

// WorkspaceEdit carries versioned document changes.
type WorkspaceEdit struct {
	DocumentChanges []TextDocumentEdit `json:"documentChanges"`
}

// TextDocumentEdit is a set of edits against one version of a document.
type TextDocumentEdit struct {
	TextDocument lsp.VersionedTextDocumentIdentifier `json:"textDocument"`
	Edits        []lsp.TextEdit                      `json:"edits"`
}

// FileEvent is one entry of workspace/didChangeWatchedFiles.
type FileEvent struct {
	URI  lsp.DocumentURI `json:"uri"`
	Type int             `json:"type"`
}

// DidChangeWatchedFilesParams is the payload of workspace/didChangeWatchedFiles.
type DidChangeWatchedFilesParams struct {
	Changes []FileEvent `json:"changes"`
}

// RegistrationParams is the payload of client/registerCapability.
type RegistrationParams struct {
	Registrations []Registration `json:"registrations"`
}

// Registration registers one capability with the client.
type Registration struct {
	ID              string `json:"id"`
	Method          string `json:"method"`
	RegisterOptions any    `json:"registerOptions,omitempty"`
}

// DidChangeWatchedFilesRegistrationOptions lists the files the client watches.
type DidChangeWatchedFilesRegistrationOptions struct {
	Watchers []FileSystemWatcher `json:"watchers"`
}

// FileSystemWatcher watches paths matching GlobPattern.
type FileSystemWatcher struct {
	GlobPattern string `json:"globPattern"`
}

// File change types.
const (
	FileCreated = 1
	FileChanged = 2
	FileDeleted = 3
)
