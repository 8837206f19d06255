package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/eslintls/pkg/config"
)

func TestMatchGlob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		pattern string
		want    bool
	}{
		{"src/a.min.js", "*.min.js", true},
		{"a.js", "*.min.js", false},
		{"dist/bundle.js", "dist", true},
		{"dist/bundle.js", "dist/**", true},
		{"src/dist/bundle.js", "**/dist/**", true},
		{"src/lib/a.test.js", "**/*.test.js", true},
		{"src/lib/a.test.js", "src/**/*.test.js", true},
		{"test/lib/a.test.js", "src/**/*.test.js", false},
		{"src/a.js", "src/*.js", true},
		{"src/a.js", "", false},
		{"src/a.js", "[", false},
	}

	for _, tt := range tests {
		t.Run(tt.path+" "+tt.pattern, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, matchGlob(tt.path, tt.pattern))
		})
	}
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{
		"a.js", "b.mjs", "c.ts", "d.md", ".eslintrc.js",
		"src/e.jsx", "src/gen/f.js", "node_modules/pkg/index.js", ".git/hooks/g.js",
	} {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}
	rel := func(files []string) []string {
		out := make([]string, 0, len(files))
		for _, file := range files {
			r, err := filepath.Rel(dir, file)
			require.NoError(t, err)
			out = append(out, filepath.ToSlash(r))
		}
		return out
	}

	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "all extensions",
			opts: Options{},
			want: []string{"a.js", "b.mjs", "c.ts", "src/e.jsx", "src/gen/f.js"},
		},
		{
			name: "validated languages",
			opts: Options{Config: config.NewConfig()},
			want: []string{"a.js", "b.mjs", "src/e.jsx", "src/gen/f.js"},
		},
		{
			name: "exclude directory",
			opts: Options{ExcludeGlobs: []string{"src/gen"}},
			want: []string{"a.js", "b.mjs", "c.ts", "src/e.jsx"},
		},
		{
			name: "include globs",
			opts: Options{IncludeGlobs: []string{"src/**"}},
			want: []string{"src/e.jsx", "src/gen/f.js"},
		},
		{
			name: "explicit files and duplicates",
			opts: Options{Paths: []string{"d.md", "src", "src/e.jsx"}},
			want: []string{"d.md", "src/e.jsx", "src/gen/f.js"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := tt.opts
			opts.WorkingDir = dir
			files, err := Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rel(files))
		})
	}
}

func TestDiscoverMissingPath(t *testing.T) {
	t.Parallel()

	_, err := Discover(context.Background(), Options{WorkingDir: t.TempDir(), Paths: []string{"missing"}})
	assert.Error(t, err)
}
