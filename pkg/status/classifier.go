package status

import (
	"context"
	"regexp"

	"github.com/sourcegraph/go-lsp"

	"github.com/yaklabco/eslintls/internal/logging"
	"github.com/yaklabco/eslintls/pkg/eslint"
)

// NoConfigSentinel is the message ESLint reports when no configuration applies.
const NoConfigSentinel = "No ESLint configuration found."

// Failure is an error raised while linting one document.
type Failure struct {
	// URI identifies the document.
	URI string

	// Path is the file system path of the document.
	Path string

	// Err is the error the engine returned.
	Err error

	// Engine is the engine that failed.
	Engine eslint.Engine
}

// Notifier sends the client-facing side effects of classification.
type Notifier interface {
	// NoConfig sends the eslint/noConfig request for uri.
	NoConfig(ctx context.Context, uri, message string)

	// ShowMessage shows message to the user.
	ShowMessage(ctx context.Context, typ lsp.MessageType, message string)

	// LogMessage writes message to the client's log.
	LogMessage(ctx context.Context, typ lsp.MessageType, message string)
}

// OpenDocuments reports whether a document is open in the client.
type OpenDocuments interface {
	IsOpen(uri string) bool
}

// Kind names the classifier that handled a failure.
type Kind string

// Classifier kinds.
const (
	KindNoConfig     Kind = "no_config"
	KindConfigSyntax Kind = "config_syntax"
	KindGeneric      Kind = "generic"
)

// Classifier turns a failure into a status. The boolean is false when the classifier
// does not recognize the failure.
type Classifier interface {
	Kind() Kind
	Classify(ctx context.Context, failure Failure) (Status, bool)
}

// Chain is an ordered list of classifiers. The first classifier that recognizes a
// failure decides its status.
type Chain []Classifier

// Classify runs the chain. The boolean is false when no classifier matched.
func (c Chain) Classify(ctx context.Context, failure Failure) (Status, Kind, bool) {
	for _, classifier := range c {
		if status, ok := classifier.Classify(ctx, failure); ok {
			return status, classifier.Kind(), true
		}
	}
	return 0, "", false
}

// Deps are the collaborators shared by the classifiers.
type Deps struct {
	Store     *DedupStore
	Notifier  Notifier
	Documents OpenDocuments
}

// SingleChain is the chain used when validating one document. It always matches.
func SingleChain(deps Deps) Chain {
	return append(BatchChain(deps), &GenericClassifier{Notifier: deps.Notifier})
}

// BatchChain is the chain used when validating every open document. Failures it does
// not match are collected by a MessageTracker instead.
func BatchChain(deps Deps) Chain {
	return Chain{
		&NoConfigClassifier{Store: deps.Store, Notifier: deps.Notifier},
		&ConfigSyntaxClassifier{Store: deps.Store, Notifier: deps.Notifier, Documents: deps.Documents},
	}
}

// NoConfigClassifier handles documents no ESLint configuration applies to.
type NoConfigClassifier struct {
	Store    *DedupStore
	Notifier Notifier
}

// Kind implements Classifier.
func (c *NoConfigClassifier) Kind() Kind { return KindNoConfig }

// Classify implements Classifier.
func (c *NoConfigClassifier) Classify(ctx context.Context, failure Failure) (Status, bool) {
	msg, _ := eslint.MessageOf(failure.Err)
	if eslint.TemplateOf(failure.Err) != eslint.NoConfigTemplate && msg != NoConfigSentinel {
		return 0, false
	}

	if c.Store.MarkNoConfig(failure.URI) {
		c.Notifier.NoConfig(ctx, failure.URI, Sanitize(failure.Err, failure.Path))
	}
	return Warn, true
}

// configPathPattern extracts the offending configuration file from one shape of
// configuration error.
type configPathPattern struct {
	re    *regexp.Regexp
	group int
}

var configPathPatterns = []configPathPattern{
	{re: regexp.MustCompile(`^Cannot read config file:\s+(.*)\nError:\s+(.*)`), group: 1},
	{re: regexp.MustCompile(`(.*):\n\s*Configuration for rule "(.*)" is `), group: 1},
	{re: regexp.MustCompile(`Cannot find module '([^']*)'\nReferenced from:\s+(.*)`), group: 2},
}

// ConfigPath returns the configuration file named by a configuration error message.
func ConfigPath(msg string) (string, bool) {
	for _, pattern := range configPathPatterns {
		if match := pattern.re.FindStringSubmatch(msg); match != nil {
			return match[pattern.group], true
		}
	}
	return "", false
}

// ConfigSyntaxClassifier handles unreadable or invalid configuration files.
type ConfigSyntaxClassifier struct {
	Store     *DedupStore
	Notifier  Notifier
	Documents OpenDocuments
}

// Kind implements Classifier.
func (c *ConfigSyntaxClassifier) Kind() Kind { return KindConfigSyntax }

// Classify implements Classifier.
func (c *ConfigSyntaxClassifier) Classify(ctx context.Context, failure Failure) (Status, bool) {
	msg, ok := eslint.MessageOf(failure.Err)
	if !ok {
		return 0, false
	}
	path, ok := ConfigPath(msg)
	if !ok {
		return 0, false
	}

	if c.Store.MarkConfigError(path, failure.Engine) {
		display := Sanitize(failure.Err, failure.Path)
		logging.FromContext(ctx).Error("configuration error", logging.FieldPath, path, logging.FieldError, display)
		c.Notifier.LogMessage(ctx, lsp.MTError, display)
		if c.Documents == nil || !c.Documents.IsOpen(eslint.URIFromPath(path)) {
			c.Notifier.ShowMessage(ctx, lsp.Info, display)
		}
	}
	return Warn, true
}

// GenericClassifier handles every failure, reporting it as an error.
type GenericClassifier struct {
	Notifier Notifier
}

// Kind implements Classifier.
func (c *GenericClassifier) Kind() Kind { return KindGeneric }

// Classify implements Classifier.
func (c *GenericClassifier) Classify(ctx context.Context, failure Failure) (Status, bool) {
	c.Notifier.ShowMessage(ctx, lsp.MTError, Sanitize(failure.Err, failure.Path))
	return Error, true
}
