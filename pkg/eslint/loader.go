package eslint

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Loader resolves the engine responsible for a document.
type Loader interface {
	// Resolve returns the engine for the document at uri. Concurrent calls for the same
	// uri share one resolution. Failures are returned as *LibraryLoadError.
	Resolve(ctx context.Context, uri string) (Engine, error)

	// Forget drops the memoized resolution for uri.
	Forget(uri string)
}

// resolveState is the lifecycle of a per-document resolution.
type resolveState int

const (
	statePending resolveState = iota
	stateResolved
	stateFailed
)

type resolution struct {
	state  resolveState
	engine Engine
	err    error
}

// binRelPath is where npm places the eslint executable inside a package.
var binRelPath = filepath.Join("node_modules", ".bin", "eslint")

// NodeLoader locates an eslint executable for each document: the nearest
// node_modules/.bin/eslint at or above the document's directory (not above Root),
// then NodePath, then $PATH.
type NodeLoader struct {
	// Root bounds the upward search. Empty means the file system root.
	Root string

	// NodePath is an extra node_modules directory to search.
	NodePath string

	// Args are passed to every engine created by this loader.
	Args []string

	lookPath func(string) (string, error)
	group    singleflight.Group

	mu      sync.Mutex
	docs    map[string]*resolution
	engines map[string]Engine // keyed by executable path
}

// NewNodeLoader creates a NodeLoader.
func NewNodeLoader(root, nodePath string, args []string) *NodeLoader {
	return &NodeLoader{
		Root:     root,
		NodePath: nodePath,
		Args:     args,
		lookPath: exec.LookPath,
		docs:     make(map[string]*resolution),
		engines:  make(map[string]Engine),
	}
}

// Resolve implements Loader.
func (l *NodeLoader) Resolve(ctx context.Context, uri string) (Engine, error) {
	l.mu.Lock()
	res, ok := l.docs[uri]
	if ok && res.state != statePending {
		l.mu.Unlock()
		return res.engine, res.err
	}
	if !ok {
		l.docs[uri] = &resolution{state: statePending}
	}
	l.mu.Unlock()

	value, err, _ := l.group.Do(uri, func() (any, error) {
		engine, err := l.resolve(ctx, uri)

		l.mu.Lock()
		defer l.mu.Unlock()
		res := &resolution{state: stateResolved, engine: engine}
		if err != nil {
			res = &resolution{state: stateFailed, err: err}
		}
		// Forget may have run while the lookup was in flight.
		if _, ok := l.docs[uri]; ok {
			l.docs[uri] = res
		}
		return engine, err
	})
	if err != nil {
		return nil, err
	}
	return value.(Engine), nil
}

// Forget implements Loader.
func (l *NodeLoader) Forget(uri string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.docs, uri)
}

func (l *NodeLoader) resolve(_ context.Context, uri string) (Engine, error) {
	// Documents without a file path (untitled buffers) resolve from Root.
	dir := l.Root
	path, err := PathFromURI(uri)
	switch {
	case err == nil:
		dir = filepath.Dir(path)
	case dir == "":
		return nil, &LibraryLoadError{URI: uri, Err: err}
	}

	bin, workDir, err := l.locate(dir)
	if err != nil {
		return nil, &LibraryLoadError{URI: uri, Dir: dir, Err: err}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if engine, ok := l.engines[bin]; ok {
		return engine, nil
	}
	engine := NewExecEngine(bin, workDir, l.Args)
	l.engines[bin] = engine
	return engine, nil
}

// locate returns the executable and the directory it should run in.
func (l *NodeLoader) locate(dir string) (string, string, error) {
	root := filepath.Clean(l.Root)
	for current := filepath.Clean(dir); ; {
		candidate := filepath.Join(current, binRelPath)
		if isExecutable(candidate) {
			return candidate, current, nil
		}
		parent := filepath.Dir(current)
		if parent == current || (l.Root != "" && current == root) {
			break
		}
		current = parent
	}

	if l.NodePath != "" {
		candidate := filepath.Join(l.NodePath, ".bin", "eslint")
		if isExecutable(candidate) {
			return candidate, dir, nil
		}
	}

	if bin, err := l.lookPath("eslint"); err == nil {
		return bin, dir, nil
	}
	return "", "", fmt.Errorf("%w in %s or any parent directory", ErrLibraryNotFound, dir)
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
