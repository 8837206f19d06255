package fix

import (
	"cmp"
	"maps"
	"slices"

	"github.com/sourcegraph/go-lsp"

	"github.com/yaklabco/eslintls/pkg/diagnostic"
)

// Resolver answers fix queries over a snapshot of one document's recorded fixes.
// Later registry mutations do not affect a Resolver.
type Resolver struct {
	fixes  map[string]AutoFix
	sorted []AutoFix
}

// NewResolver creates a Resolver over a copy of snapshot.
func NewResolver(snapshot map[string]AutoFix) *Resolver {
	fixes := maps.Clone(snapshot)
	if fixes == nil {
		fixes = make(map[string]AutoFix)
	}

	// Seed the stable sort with key order so equal edits come out the same way
	// every time.
	keys := slices.Sorted(maps.Keys(fixes))
	sorted := make([]AutoFix, 0, len(keys))
	for _, key := range keys {
		sorted = append(sorted, fixes[key])
	}
	SortAutoFixes(sorted)

	return &Resolver{fixes: fixes, sorted: sorted}
}

// IsEmpty reports whether the snapshot holds no fixes.
func (r *Resolver) IsEmpty() bool {
	return len(r.fixes) == 0
}

// DocumentVersion returns the document version the fixes were computed against.
// All fixes of one snapshot come from the same validation pass. Returns 0 when empty.
func (r *Resolver) DocumentVersion() int {
	if len(r.sorted) == 0 {
		return 0
	}
	return r.sorted[0].DocumentVersion
}

// SortedAll returns every fix in edit order.
func (r *Resolver) SortedAll() []AutoFix {
	return slices.Clone(r.sorted)
}

// Scoped returns the fixes recorded for diags, in the order of diags. Diagnostics
// without a recorded fix are skipped.
func (r *Resolver) Scoped(diags []lsp.Diagnostic) []AutoFix {
	var result []AutoFix
	for _, diag := range diags {
		if autoFix, ok := r.fixes[diagnostic.Key(diag)]; ok {
			result = append(result, autoFix)
		}
	}
	return result
}

// OverlapFree returns a non-overlapping subsequence of SortedAll. It scans greedily:
// an edit is kept when it does not overlap the last kept edit. The result is maximal
// under this ordering, not necessarily the largest possible set.
func (r *Resolver) OverlapFree() []AutoFix {
	return r.selectGreedy(func(AutoFix) bool { return true })
}

// SameRule is OverlapFree restricted to fixes proposed by ruleID.
func (r *Resolver) SameRule(ruleID string) []AutoFix {
	return r.selectGreedy(func(autoFix AutoFix) bool { return autoFix.RuleID == ruleID })
}

func (r *Resolver) selectGreedy(accept func(AutoFix) bool) []AutoFix {
	var result []AutoFix
	var last *AutoFix
	for idx := range r.sorted {
		current := r.sorted[idx]
		if !accept(current) {
			continue
		}
		if last != nil && Overlaps(*last, current) {
			continue
		}
		result = append(result, current)
		last = &r.sorted[idx]
	}
	return result
}

// Overlaps reports whether next, which follows prev in edit order, starts before prev
// ends.
func Overlaps(prev, next AutoFix) bool {
	return prev.Edit.End > next.Edit.Start
}

// SortAutoFixes sorts fixes by start offset. Ties put an edit ending at offset 0
// first and otherwise order by end offset. The sort is stable.
func SortAutoFixes(fixes []AutoFix) {
	slices.SortStableFunc(fixes, func(a, b AutoFix) int {
		return compareEdits(a.Edit, b.Edit)
	})
}

func compareEdits(a, b AutoFixEdit) int {
	if a.Start != b.Start {
		return cmp.Compare(a.Start, b.Start)
	}
	aZero, bZero := a.End == 0, b.End == 0
	switch {
	case aZero && !bZero:
		return -1
	case bZero && !aZero:
		return 1
	default:
		return cmp.Compare(a.End, b.End)
	}
}
