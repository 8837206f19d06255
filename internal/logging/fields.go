// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"

	// Protocol fields.
	FieldMethod     = "method"
	FieldURI        = "uri"
	FieldVersion    = "version"
	FieldLanguage   = "language"
	FieldGeneration = "generation"
	FieldCommand    = "command"
	FieldEvent      = "event"
	FieldCode       = "code"
	FieldStack      = "stack"

	// Validation fields.
	FieldStatus      = "status"
	FieldRule        = "rule"
	FieldEngine      = "engine"
	FieldDocuments   = "documents"
	FieldFailed      = "failed"
	FieldDiagnostics = "diagnostics"
	FieldFixes       = "fixes"
	FieldDuration    = "duration"

	// Configuration fields.
	FieldConfig  = "config"
	FieldRun     = "run"
	FieldJobs    = "jobs"
	FieldDryRun  = "dry_run"
	FieldAddress = "address"

	// Build fields.
	FieldCommit = "commit"
	FieldBuilt  = "built"
)
