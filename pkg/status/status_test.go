package status_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sourcegraph/go-lsp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/eslintls/pkg/eslint"
	"github.com/yaklabco/eslintls/pkg/status"
)

type shownMessage struct {
	Type    lsp.MessageType
	Message string
}

type noConfigRequest struct {
	URI     string
	Message string
}

type recordingNotifier struct {
	mu       sync.Mutex
	noConfig []noConfigRequest
	shown    []shownMessage
	logged   []shownMessage
}

func (n *recordingNotifier) NoConfig(_ context.Context, uri, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.noConfig = append(n.noConfig, noConfigRequest{URI: uri, Message: message})
}

func (n *recordingNotifier) ShowMessage(_ context.Context, typ lsp.MessageType, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.shown = append(n.shown, shownMessage{Type: typ, Message: message})
}

func (n *recordingNotifier) LogMessage(_ context.Context, typ lsp.MessageType, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.logged = append(n.logged, shownMessage{Type: typ, Message: message})
}

type openSet map[string]bool

func (s openSet) IsOpen(uri string) bool { return s[uri] }

func newDeps(docs status.OpenDocuments) (status.Deps, *recordingNotifier) {
	notifier := &recordingNotifier{}
	return status.Deps{Store: status.NewDedupStore(), Notifier: notifier, Documents: docs}, notifier
}

func TestWorst(t *testing.T) {
	t.Parallel()

	assert.Equal(t, status.Warn, status.Worst(status.OK, status.Warn))
	assert.Equal(t, status.Error, status.Worst(status.Error, status.Warn))
	assert.Equal(t, status.OK, status.Worst(status.OK, status.OK))
	assert.Equal(t, "warn", status.Warn.String())
	assert.Equal(t, "status(7)", status.Status(7).String())
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"line breaks", errors.New("a\nb\r\nc"), "a b c"},
		{"cli prefix", &eslint.LintError{Message: "CLI: bad option"}, "bad option"},
		{"no message", &eslint.LintError{}, "An unknown error occurred while validating file: /w/a.js"},
		{"nil error", nil, "An unknown error occurred while validating file: /w/a.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, status.Sanitize(tt.err, "/w/a.js"))
		})
	}
}

func TestNoConfigClassifier_Scenario(t *testing.T) {
	t.Parallel()

	deps, notifier := newDeps(openSet{})
	chain := status.SingleChain(deps)
	failure := status.Failure{
		URI:  "file:///a.js",
		Path: "/a.js",
		Err:  &eslint.LintError{Message: status.NoConfigSentinel},
	}

	got, kind, ok := chain.Classify(context.Background(), failure)
	require.True(t, ok)
	assert.Equal(t, status.Warn, got)
	assert.Equal(t, status.KindNoConfig, kind)

	require.Len(t, notifier.noConfig, 1)
	assert.Equal(t, noConfigRequest{URI: "file:///a.js", Message: status.NoConfigSentinel}, notifier.noConfig[0])
	assert.Empty(t, notifier.shown)
}

func TestNoConfigClassifier_Dedup(t *testing.T) {
	t.Parallel()

	deps, notifier := newDeps(openSet{})
	chain := status.SingleChain(deps)
	failure := status.Failure{
		URI: "file:///a.js",
		Err: &eslint.LintError{Message: "ESLint couldn't find a configuration file.", MessageTemplate: eslint.NoConfigTemplate},
	}

	for range 3 {
		got, _, ok := chain.Classify(context.Background(), failure)
		require.True(t, ok)
		assert.Equal(t, status.Warn, got)
	}
	assert.Len(t, notifier.noConfig, 1)

	other := failure
	other.URI = "file:///b.js"
	chain.Classify(context.Background(), other)
	assert.Len(t, notifier.noConfig, 2)

	deps.Store.ResetNoConfig()
	chain.Classify(context.Background(), failure)
	assert.Len(t, notifier.noConfig, 3)
}

func TestConfigPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		msg    string
		want   string
		wantOK bool
	}{
		{
			name:   "cannot read config file",
			msg:    "Cannot read config file: /w/.eslintrc.json\nError: Unexpected token }",
			want:   "/w/.eslintrc.json",
			wantOK: true,
		},
		{
			name:   "cannot read must start the message",
			msg:    "Oops Cannot read config file: /w/.eslintrc.json\nError: x",
			wantOK: false,
		},
		{
			name:   "invalid rule configuration",
			msg:    "/w/.eslintrc.yml:\n\tConfiguration for rule \"semi\" is invalid",
			want:   "/w/.eslintrc.yml",
			wantOK: true,
		},
		{
			name:   "missing module",
			msg:    "Cannot find module 'eslint-plugin-x'\nReferenced from: /w/package.json",
			want:   "/w/package.json",
			wantOK: true,
		},
		{
			name:   "unrelated",
			msg:    "Parsing error: Unexpected token",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := status.ConfigPath(tt.msg)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigSyntaxClassifier(t *testing.T) {
	t.Parallel()

	engine := eslint.EngineFunc(func(context.Context, string, string) (*eslint.Report, error) {
		return &eslint.Report{}, nil
	})
	failure := status.Failure{
		URI:    "file:///w/a.js",
		Path:   "/w/a.js",
		Err:    &eslint.LintError{Message: "Cannot read config file: /w/.eslintrc.json\nError: Unexpected token"},
		Engine: engine,
	}

	t.Run("config not open shows message once", func(t *testing.T) {
		t.Parallel()

		deps, notifier := newDeps(openSet{})
		chain := status.SingleChain(deps)

		for range 2 {
			got, kind, ok := chain.Classify(context.Background(), failure)
			require.True(t, ok)
			assert.Equal(t, status.Warn, got)
			assert.Equal(t, status.KindConfigSyntax, kind)
		}

		want := "Cannot read config file: /w/.eslintrc.json Error: Unexpected token"
		assert.Equal(t, []shownMessage{{Type: lsp.MTError, Message: want}}, notifier.logged)
		assert.Equal(t, []shownMessage{{Type: lsp.Info, Message: want}}, notifier.shown)

		stored, ok := deps.Store.ConfigErrorEngine("/w/.eslintrc.json")
		require.True(t, ok)
		assert.NotNil(t, stored)
	})

	t.Run("open config only logs", func(t *testing.T) {
		t.Parallel()

		deps, notifier := newDeps(openSet{eslint.URIFromPath("/w/.eslintrc.json"): true})
		status.SingleChain(deps).Classify(context.Background(), failure)

		assert.Len(t, notifier.logged, 1)
		assert.Empty(t, notifier.shown)
	})

	t.Run("cleared path reports again", func(t *testing.T) {
		t.Parallel()

		deps, notifier := newDeps(openSet{})
		chain := status.SingleChain(deps)
		chain.Classify(context.Background(), failure)
		deps.Store.ClearConfigError("/w/.eslintrc.json")
		chain.Classify(context.Background(), failure)

		assert.Len(t, notifier.logged, 2)
	})
}

func TestGenericClassifier(t *testing.T) {
	t.Parallel()

	deps, notifier := newDeps(openSet{})
	failure := status.Failure{URI: "file:///a.js", Err: errors.New("CLI: boom\nat line 1")}

	got, kind, ok := status.SingleChain(deps).Classify(context.Background(), failure)
	require.True(t, ok)
	assert.Equal(t, status.Error, got)
	assert.Equal(t, status.KindGeneric, kind)
	assert.Equal(t, []shownMessage{{Type: lsp.MTError, Message: "boom at line 1"}}, notifier.shown)

	_, _, ok = status.BatchChain(deps).Classify(context.Background(), failure)
	assert.False(t, ok, "batch chain has no catch-all")
}

func TestMessageTracker(t *testing.T) {
	t.Parallel()

	var tracker status.MessageTracker
	tracker.Add("first")
	tracker.Add("second")
	tracker.Add("first")
	assert.Equal(t, []string{"first", "second"}, tracker.Messages())

	notifier := &recordingNotifier{}
	assert.Equal(t, 2, tracker.Flush(context.Background(), notifier))
	assert.Equal(t, []shownMessage{
		{Type: lsp.MTError, Message: "first"},
		{Type: lsp.MTError, Message: "second"},
	}, notifier.shown)

	assert.Zero(t, tracker.Flush(context.Background(), notifier))
	assert.Empty(t, tracker.Messages())
}

func TestDedupStore(t *testing.T) {
	t.Parallel()

	store := status.NewDedupStore()
	assert.True(t, store.MarkNoLibrary("file:///a.js"))
	assert.False(t, store.MarkNoLibrary("file:///a.js"))
	assert.True(t, store.MarkNoConfig("file:///a.js"))

	assert.False(t, store.MarkNoConfig("file:///a.js"))

	assert.True(t, store.MarkConfigError("/w/.eslintrc", nil))
	assert.False(t, store.MarkConfigError("/w/.eslintrc", nil))

	store.ResetNoConfig()
	_, ok := store.ConfigErrorEngine("/w/.eslintrc")
	assert.True(t, ok, "resetting no-config reports keeps configuration errors")
	assert.True(t, store.MarkNoConfig("file:///a.js"))
	assert.True(t, store.MarkNoLibrary("file:///a.js"))
}
