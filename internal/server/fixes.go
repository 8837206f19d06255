package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/yaklabco/eslintls/internal/logging"
	"github.com/yaklabco/eslintls/pkg/fix"
)

// Messages shown when a fix command cannot be applied.
const (
	msgFixesOutdated = "ESLint fixes are outdated and can't be applied to the document."
	msgFixesFailed   = "Failed to apply ESLint fixes to the document."
)

// codeAction offers one command per recorded fix of the diagnostics in context,
// plus aggregate commands when there is more than one fix to aggregate.
func (h *Handler) codeAction(params *lsp.CodeActionParams) []lsp.Command {
	commands := []lsp.Command{}
	uri := string(params.TextDocument.URI)

	resolver := h.state.Fixes.Resolver(uri)
	if resolver.IsEmpty() {
		return commands
	}
	doc, ok := h.state.Documents.Get(uri)
	if !ok {
		return commands
	}

	var ruleID string
	for _, autoFix := range resolver.Scoped(params.Context.Diagnostics) {
		ruleID = autoFix.RuleID
		commands = append(commands, fixCommand(autoFix.Label, CommandApplySingleFix, uri,
			autoFix.DocumentVersion, []lsp.TextEdit{fix.ToTextEdit(doc.Text, autoFix)}))
	}
	if len(commands) == 0 {
		return commands
	}

	version := resolver.DocumentVersion()
	if same := resolver.SameRule(ruleID); len(same) > 1 {
		commands = append(commands, fixCommand(fmt.Sprintf("Fix all %s problems", ruleID),
			CommandApplySameFixes, uri, version, fix.ToTextEdits(doc.Text, same)))
	}
	if all := resolver.OverlapFree(); len(all) > 1 {
		commands = append(commands, fixCommand("Fix all auto-fixable problems",
			CommandApplyAllFixes, uri, version, fix.ToTextEdits(doc.Text, all)))
	}
	return commands
}

func fixCommand(title, command, uri string, version int, edits []lsp.TextEdit) lsp.Command {
	return lsp.Command{
		Title:     title,
		Command:   command,
		Arguments: []any{uri, version, edits},
	}
}

// allFixes returns every overlap-free fix of a document, or nil when there are none.
func (h *Handler) allFixes(params *AllFixesParams) *AllFixesResult {
	uri := string(params.TextDocument.URI)
	resolver := h.state.Fixes.Resolver(uri)
	if resolver.IsEmpty() {
		return nil
	}
	doc, ok := h.state.Documents.Get(uri)
	if !ok {
		return nil
	}
	return &AllFixesResult{
		DocumentVersion: resolver.DocumentVersion(),
		Edits:           fix.ToTextEdits(doc.Text, resolver.OverlapFree()),
	}
}

// fixArguments decodes the (uri, documentVersion, edits) arguments of a fix command.
func fixArguments(args []json.RawMessage) (string, int, []lsp.TextEdit, error) {
	const want = 3
	if len(args) != want {
		return "", 0, nil, fmt.Errorf("expected %d arguments, got %d", want, len(args))
	}

	var (
		uri     string
		version int
		edits   []lsp.TextEdit
	)
	if err := json.Unmarshal(args[0], &uri); err != nil {
		return "", 0, nil, fmt.Errorf("decode uri: %w", err)
	}
	if err := json.Unmarshal(args[1], &version); err != nil {
		return "", 0, nil, fmt.Errorf("decode document version: %w", err)
	}
	if err := json.Unmarshal(args[2], &edits); err != nil {
		return "", 0, nil, fmt.Errorf("decode edits: %w", err)
	}
	return uri, version, edits, nil
}

// executeCommand applies the edits of a fix command. The reply is sent right away;
// the workspace edit is requested in the background.
func (h *Handler) executeCommand(ctx context.Context, params *ExecuteCommandParams) error {
	switch params.Command {
	case CommandApplySingleFix, CommandApplySameFixes, CommandApplyAllFixes:
	default:
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "unknown command: " + params.Command}
	}

	uri, version, edits, err := fixArguments(params.Arguments)
	if err != nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
	}

	_, logger := logging.With(ctx, logging.FieldCommand, params.Command, logging.FieldURI, uri)
	h.goBackground(func(ctx context.Context) {
		ctx = logging.WithLogger(ctx, logger)
		applied := h.applyFixes(ctx, uri, version, edits)
		h.metrics.ObserveCommand(params.Command, applied)
	})
	return nil
}

// applyFixes sends the edits to the client if the document is still at version.
func (h *Handler) applyFixes(ctx context.Context, uri string, version int, edits []lsp.TextEdit) bool {
	logger := logging.FromContext(ctx)

	doc, ok := h.state.Documents.Get(uri)
	if !ok || doc.Version != version {
		logger.Warn("fixes are outdated", logging.FieldVersion, version)
		h.client.ShowMessage(ctx, lsp.MTWarning, msgFixesOutdated)
		return false
	}

	applied, err := h.client.ApplyEdit(ctx, "", WorkspaceEdit{
		DocumentChanges: []TextDocumentEdit{{
			TextDocument: lsp.VersionedTextDocumentIdentifier{
				TextDocumentIdentifier: lsp.TextDocumentIdentifier{URI: lsp.DocumentURI(uri)},
				Version:                version,
			},
			Edits: edits,
		}},
	})
	if err != nil || !applied {
		logger.Error("client did not apply fixes", logging.FieldFixes, len(edits), logging.FieldError, err)
		h.client.ShowMessage(ctx, lsp.MTError, msgFixesFailed)
		return false
	}

	logger.Debug("applied fixes", logging.FieldFixes, len(edits))
	return true
}
