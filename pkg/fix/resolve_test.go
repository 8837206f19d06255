package fix_test

import (
	"testing"

	"github.com/sourcegraph/go-lsp"

	"github.com/yaklabco/eslintls/pkg/diagnostic"
	"github.com/yaklabco/eslintls/pkg/fix"
)

func autoFix(rule string, start, end int) fix.AutoFix {
	return fix.AutoFix{
		Label:           fix.LabelFor(rule),
		DocumentVersion: 3,
		RuleID:          rule,
		Edit:            fix.AutoFixEdit{Start: start, End: end, Text: rule},
	}
}

func snapshotOf(fixes ...fix.AutoFix) map[string]fix.AutoFix {
	snapshot := make(map[string]fix.AutoFix, len(fixes))
	for idx, f := range fixes {
		snapshot[string(rune('a'+idx))] = f
	}
	return snapshot
}

func spans(fixes []fix.AutoFix) [][2]int {
	result := make([][2]int, 0, len(fixes))
	for _, f := range fixes {
		result = append(result, [2]int{f.Edit.Start, f.Edit.End})
	}
	return result
}

func equalSpans(t *testing.T, got []fix.AutoFix, want [][2]int) {
	t.Helper()

	gotSpans := spans(got)
	if len(gotSpans) != len(want) {
		t.Fatalf("got %v, want %v", gotSpans, want)
	}
	for i := range want {
		if gotSpans[i] != want[i] {
			t.Errorf("edit[%d]: got %v, want %v (all: %v)", i, gotSpans[i], want[i], gotSpans)
		}
	}
}

func TestResolver_Empty(t *testing.T) {
	t.Parallel()

	for _, resolver := range []*fix.Resolver{fix.NewResolver(nil), fix.NewResolver(map[string]fix.AutoFix{})} {
		if !resolver.IsEmpty() {
			t.Error("expected empty resolver")
		}
		if resolver.DocumentVersion() != 0 {
			t.Errorf("DocumentVersion = %d, want 0", resolver.DocumentVersion())
		}
		if len(resolver.SortedAll()) != 0 || len(resolver.OverlapFree()) != 0 ||
			len(resolver.SameRule("semi")) != 0 || len(resolver.Scoped([]lsp.Diagnostic{{}})) != 0 {
			t.Error("expected empty results from an empty snapshot")
		}
	}
}

func TestResolver_SortedAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		fixes []fix.AutoFix
		want  [][2]int
	}{
		{
			name:  "by start offset",
			fixes: []fix.AutoFix{autoFix("a", 20, 25), autoFix("b", 0, 5), autoFix("c", 10, 12)},
			want:  [][2]int{{0, 5}, {10, 12}, {20, 25}},
		},
		{
			name:  "same start orders by end",
			fixes: []fix.AutoFix{autoFix("a", 4, 9), autoFix("b", 4, 6)},
			want:  [][2]int{{4, 6}, {4, 9}},
		},
		{
			name:  "zero end sorts first",
			fixes: []fix.AutoFix{autoFix("a", 0, 3), autoFix("b", 0, 0), autoFix("c", 0, 1)},
			want:  [][2]int{{0, 0}, {0, 1}, {0, 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			equalSpans(t, fix.NewResolver(snapshotOf(tt.fixes...)).SortedAll(), tt.want)
		})
	}
}

func TestSortAutoFixes_ZeroEndSentinel(t *testing.T) {
	t.Parallel()

	// Start 0 with end 0 precedes any other edit starting at 0, even though
	// comparing ends alone would give the same answer; the rule is checked first.
	fixes := []fix.AutoFix{autoFix("a", 0, 2), autoFix("b", 0, 0)}
	fix.SortAutoFixes(fixes)
	equalSpans(t, fixes, [][2]int{{0, 0}, {0, 2}})

	// Stability for identical spans.
	first, second := autoFix("first", 5, 5), autoFix("second", 5, 5)
	stable := []fix.AutoFix{first, second}
	fix.SortAutoFixes(stable)
	if stable[0].RuleID != "first" || stable[1].RuleID != "second" {
		t.Errorf("sort is not stable: %v", []string{stable[0].RuleID, stable[1].RuleID})
	}
}

func TestOverlaps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		prev, next fix.AutoFix
		want       bool
	}{
		{"overlapping", autoFix("a", 10, 20), autoFix("b", 15, 25), true},
		{"adjacent", autoFix("a", 0, 5), autoFix("b", 5, 10), false},
		{"disjoint", autoFix("a", 0, 5), autoFix("b", 7, 10), false},
		{"contained", autoFix("a", 0, 10), autoFix("b", 3, 7), true},
		{"insertions at same offset", autoFix("a", 4, 4), autoFix("b", 4, 4), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fix.Overlaps(tt.prev, tt.next); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolver_OverlapFree(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		fixes []fix.AutoFix
		want  [][2]int
	}{
		{
			name:  "overlapping pair keeps the first",
			fixes: []fix.AutoFix{autoFix("a", 15, 25), autoFix("b", 10, 20)},
			want:  [][2]int{{10, 20}},
		},
		{
			name:  "compares against last kept edit",
			fixes: []fix.AutoFix{autoFix("a", 0, 10), autoFix("b", 5, 8), autoFix("c", 9, 12), autoFix("d", 10, 11)},
			want:  [][2]int{{0, 10}, {10, 11}},
		},
		{
			name:  "greedy is maximal not maximum",
			fixes: []fix.AutoFix{autoFix("a", 0, 100), autoFix("b", 1, 2), autoFix("c", 3, 4)},
			want:  [][2]int{{0, 100}},
		},
		{
			name:  "all disjoint",
			fixes: []fix.AutoFix{autoFix("a", 0, 1), autoFix("b", 1, 2), autoFix("c", 2, 3)},
			want:  [][2]int{{0, 1}, {1, 2}, {2, 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resolver := fix.NewResolver(snapshotOf(tt.fixes...))
			got := resolver.OverlapFree()
			equalSpans(t, got, tt.want)

			for i := 1; i < len(got); i++ {
				if got[i-1].Edit.End > got[i].Edit.Start {
					t.Errorf("adjacent edits overlap: %v then %v", got[i-1].Edit, got[i].Edit)
				}
			}

			// Idempotent.
			equalSpans(t, resolver.OverlapFree(), spans(got))
		})
	}
}

func TestResolver_SameRule(t *testing.T) {
	t.Parallel()

	resolver := fix.NewResolver(snapshotOf(
		autoFix("semi", 0, 5),
		autoFix("quotes", 4, 6),
		autoFix("semi", 5, 9),
		autoFix("semi", 8, 10),
		autoFix("semi", 12, 13),
	))

	// The quotes edit is skipped without becoming the overlap reference.
	equalSpans(t, resolver.SameRule("semi"), [][2]int{{0, 5}, {5, 9}, {12, 13}})
	equalSpans(t, resolver.SameRule("quotes"), [][2]int{{4, 6}})
	equalSpans(t, resolver.SameRule("indent"), nil)
}

func TestResolver_Scoped(t *testing.T) {
	t.Parallel()

	first := lsp.Diagnostic{Range: lsp.Range{End: lsp.Position{Character: 2}}, Code: "semi"}
	second := lsp.Diagnostic{Range: lsp.Range{Start: lsp.Position{Line: 3}}, Code: "quotes"}
	unknown := lsp.Diagnostic{Code: "indent"}

	resolver := fix.NewResolver(map[string]fix.AutoFix{
		diagnostic.Key(first):  autoFix("semi", 30, 31),
		diagnostic.Key(second): autoFix("quotes", 1, 2),
	})

	// Input order is kept, not edit order.
	got := resolver.Scoped([]lsp.Diagnostic{first, unknown, second})
	equalSpans(t, got, [][2]int{{30, 31}, {1, 2}})
}

func TestResolver_SnapshotIsolation(t *testing.T) {
	t.Parallel()

	snapshot := snapshotOf(autoFix("a", 0, 1))
	resolver := fix.NewResolver(snapshot)
	snapshot["z"] = autoFix("b", 5, 6)

	equalSpans(t, resolver.SortedAll(), [][2]int{{0, 1}})
	if resolver.DocumentVersion() != 3 {
		t.Errorf("DocumentVersion = %d, want 3", resolver.DocumentVersion())
	}
}
