package status

import (
	"sync"

	"github.com/yaklabco/eslintls/pkg/eslint"
)

// DedupStore remembers which failures were already reported so repeated
// validations do not repeat notifications. The zero value is not usable; call
// NewDedupStore.
type DedupStore struct {
	mu sync.Mutex

	// noConfig holds document URIs that already triggered eslint/noConfig.
	noConfig map[string]struct{}

	// configErrors maps a configuration file path to the engine that failed
	// reading it, so a later change to the file can be checked again with it.
	configErrors map[string]eslint.Engine

	// noLibrary holds document URIs that already triggered eslint/noLibrary.
	noLibrary map[string]struct{}
}

// NewDedupStore creates an empty store.
func NewDedupStore() *DedupStore {
	return &DedupStore{
		noConfig:     make(map[string]struct{}),
		configErrors: make(map[string]eslint.Engine),
		noLibrary:    make(map[string]struct{}),
	}
}

// MarkNoConfig records a no-config report for uri and reports whether it is the
// first one.
func (d *DedupStore) MarkNoConfig(uri string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return markOnce(d.noConfig, uri)
}

// MarkNoLibrary records a missing-library report for uri and reports whether it is
// the first one.
func (d *DedupStore) MarkNoLibrary(uri string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return markOnce(d.noLibrary, uri)
}

// MarkConfigError records a configuration error for path raised by engine and
// reports whether it is the first one for path.
func (d *DedupStore) MarkConfigError(path string, engine eslint.Engine) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.configErrors[path]; ok {
		return false
	}
	d.configErrors[path] = engine
	return true
}

// ConfigErrorEngine returns the engine that reported a configuration error for
// path, if any.
func (d *DedupStore) ConfigErrorEngine(path string) (eslint.Engine, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	engine, ok := d.configErrors[path]
	return engine, ok
}

// ClearConfigError forgets the configuration error reported for path.
func (d *DedupStore) ClearConfigError(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.configErrors, path)
}

// ResetNoConfig forgets every no-config and missing-library report.
func (d *DedupStore) ResetNoConfig() {
	d.mu.Lock()
	defer d.mu.Unlock()
	clear(d.noConfig)
	clear(d.noLibrary)
}

func markOnce(set map[string]struct{}, key string) bool {
	if _, ok := set[key]; ok {
		return false
	}
	set[key] = struct{}{}
	return true
}
