package fix

import (
	"maps"
	"sync"

	"github.com/sourcegraph/go-lsp"

	"github.com/yaklabco/eslintls/pkg/diagnostic"
	"github.com/yaklabco/eslintls/pkg/eslint"
)

// Registry holds the candidate fixes of every document, keyed by document URI and
// then by diagnostic key.
type Registry struct {
	mu    sync.Mutex
	fixes map[string]map[string]AutoFix
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{fixes: make(map[string]map[string]AutoFix)}
}

// Clear drops every fix recorded for uri.
func (r *Registry) Clear(uri string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.fixes, uri)
}

// Record stores the fix of problem under the key of diag. Problems without an edit or
// without a rule are ignored. An existing fix with the same key is replaced.
func (r *Registry) Record(uri string, version int, diag lsp.Diagnostic, problem eslint.Problem) {
	if !problem.HasFix() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entries, ok := r.fixes[uri]
	if !ok {
		entries = make(map[string]AutoFix)
		r.fixes[uri] = entries
	}
	entries[diagnostic.Key(diag)] = AutoFix{
		Label:           LabelFor(problem.RuleID),
		DocumentVersion: version,
		RuleID:          problem.RuleID,
		Edit: AutoFixEdit{
			Start: problem.Fix.Range[0],
			End:   problem.Fix.Range[1],
			Text:  problem.Fix.Text,
		},
	}
}

// Lookup returns a copy of the fixes recorded for uri.
func (r *Registry) Lookup(uri string) (map[string]AutoFix, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, ok := r.fixes[uri]
	if !ok {
		return nil, false
	}
	return maps.Clone(entries), true
}

// Resolver returns a Resolver over the current fixes of uri. The resolver is empty
// when nothing is recorded.
func (r *Registry) Resolver(uri string) *Resolver {
	snapshot, _ := r.Lookup(uri)
	return NewResolver(snapshot)
}
