package server

import (
	"slices"
	"sync"

	"github.com/yaklabco/eslintls/pkg/config"
	"github.com/yaklabco/eslintls/pkg/eslint"
	"github.com/yaklabco/eslintls/pkg/fix"
	"github.com/yaklabco/eslintls/pkg/status"
)

// LoaderFactory builds the engine loader for a workspace root and configuration.
type LoaderFactory func(root string, cfg *config.Config) eslint.Loader

// State is everything the server remembers between requests. It is created when
// the server starts and torn down on shutdown.
type State struct {
	Fixes     *fix.Registry
	Dedup     *status.DedupStore
	Documents *Documents

	mu          sync.Mutex
	cfg         *config.Config
	root        string
	loader      eslint.Loader
	newLoader   LoaderFactory
	generations map[string]uint64
	counter     uint64
}

// NewState creates the state of a server using cfg until the client sends settings.
func NewState(cfg *config.Config, newLoader LoaderFactory) *State {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &State{
		Fixes:       fix.NewRegistry(),
		Dedup:       status.NewDedupStore(),
		Documents:   NewDocuments(),
		cfg:         cfg,
		newLoader:   newLoader,
		generations: make(map[string]uint64),
	}
}

// Config returns the current configuration.
func (s *State) Config() *config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Root returns the workspace root.
func (s *State) Root() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root
}

// SetRoot records the workspace root and rebuilds the loader.
func (s *State) SetRoot(root string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.root = root
	s.loader = nil
}

// SetConfig replaces the configuration. The loader is rebuilt when anything it
// depends on changed.
func (s *State) SetConfig(cfg *config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.cfg
	s.cfg = cfg
	if old == nil || old.NodePath != cfg.NodePath || !slices.Equal(old.EngineArgs(), cfg.EngineArgs()) {
		s.loader = nil
	}
}

// Loader returns the engine loader, creating it on first use.
func (s *State) Loader() eslint.Loader {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loader == nil {
		s.loader = s.newLoader(s.root, s.cfg)
	}
	return s.loader
}

// Begin starts a validation of uri and returns its generation.
func (s *State) Begin(uri string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++
	s.generations[uri] = s.counter
	return s.counter
}

// Commit runs fn while holding the state lock if gen is still the latest
// validation of uri. It reports whether fn ran.
func (s *State) Commit(uri string, gen uint64, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generations[uri] != gen {
		return false
	}
	fn()
	return true
}

// IsCurrent reports whether gen is the latest validation of uri.
func (s *State) IsCurrent(uri string, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[uri] == gen
}

// Forget drops the fixes and memoized engine lookup of uri. Validations still
// running for it are superseded. No-config and missing-library reports survive
// until a configuration file changes.
func (s *State) Forget(uri string) {
	s.mu.Lock()
	loader := s.loader
	delete(s.generations, uri)
	s.mu.Unlock()

	s.Fixes.Clear(uri)
	if loader != nil {
		loader.Forget(uri)
	}
}

// ForgetLibraries drops memoized engine lookups of every open document.
func (s *State) ForgetLibraries() {
	loader := s.Loader()
	for _, doc := range s.Documents.All() {
		loader.Forget(doc.URI)
	}
}
