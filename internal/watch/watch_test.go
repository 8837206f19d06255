package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/eslintls/internal/watch"
)

func TestWatcher_ReportsFilteredChanges(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg"), 0o755))

	onlyConfigs := func(path string) bool {
		return strings.HasPrefix(filepath.Base(path), ".eslintrc")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := watch.New(ctx, root, onlyConfigs)
	require.NoError(t, err)
	defer w.Close()

	batches := make(chan []watch.Change, 4)
	go func() {
		_ = w.Run(ctx, func(changes []watch.Change) { batches <- changes })
	}()

	require.NoError(t, os.WriteFile(filepath.Join(root, "pkg", "index.js"), []byte("x"), 0o644))
	configPath := filepath.Join(root, "pkg", ".eslintrc.json")
	require.NoError(t, os.WriteFile(configPath, []byte("{}"), 0o644))

	select {
	case changes := <-batches:
		require.NotEmpty(t, changes)
		for _, change := range changes {
			assert.Equal(t, configPath, change.Path, "unfiltered paths must not be reported")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
	}
}

func TestWatcher_MissingRoot(t *testing.T) {
	t.Parallel()

	_, err := watch.New(context.Background(), filepath.Join(t.TempDir(), "missing"), nil)
	require.Error(t, err)
}

func TestWatcher_StopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	w, err := watch.New(ctx, t.TempDir(), nil)
	require.NoError(t, err)
	defer w.Close()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, func([]watch.Change) {}) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
