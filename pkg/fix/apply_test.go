package fix_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/yaklabco/eslintls/pkg/fix"
)

func TestApplyEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		edits   []fix.TextEdit
		want    string
	}{
		{
			name:    "empty edits returns original",
			content: "hello world",
			want:    "hello world",
		},
		{
			name:    "single replacement",
			content: "hello world",
			edits:   []fix.TextEdit{{StartOffset: 0, EndOffset: 5, NewText: "hi"}},
			want:    "hi world",
		},
		{
			name:    "insertion",
			content: "let a = 1",
			edits:   []fix.TextEdit{{StartOffset: 9, EndOffset: 9, NewText: ";"}},
			want:    "let a = 1;",
		},
		{
			name:    "multiple",
			content: "var a = \"x\"",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 3, NewText: "let"},
				{StartOffset: 8, EndOffset: 11, NewText: "'x'"},
			},
			want: "let a = 'x'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := string(fix.ApplyEdits([]byte(tt.content), tt.edits))
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrepareEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		edits      []fix.TextEdit
		contentLen int
		wantErr    string
	}{
		{name: "empty", contentLen: 10},
		{
			name:       "unsorted valid",
			edits:      []fix.TextEdit{{StartOffset: 5, EndOffset: 10}, {StartOffset: 0, EndOffset: 5}},
			contentLen: 10,
		},
		{
			name:       "negative start",
			edits:      []fix.TextEdit{{StartOffset: -1, EndOffset: 5}},
			contentLen: 10,
			wantErr:    "start offset is negative",
		},
		{
			name:       "end before start",
			edits:      []fix.TextEdit{{StartOffset: 5, EndOffset: 3}},
			contentLen: 10,
			wantErr:    "end offset is before start offset",
		},
		{
			name:       "end past content",
			edits:      []fix.TextEdit{{StartOffset: 5, EndOffset: 15}},
			contentLen: 10,
			wantErr:    "exceeds content length",
		},
		{
			name:       "overlap",
			edits:      []fix.TextEdit{{StartOffset: 0, EndOffset: 7}, {StartOffset: 5, EndOffset: 10}},
			contentLen: 10,
			wantErr:    "overlaps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fix.PrepareEdits(tt.edits, tt.contentLen)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				for i := 1; i < len(got); i++ {
					if got[i].StartOffset < got[i-1].StartOffset {
						t.Error("result not sorted")
					}
				}
				return
			}

			var valErr *fix.ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected ValidationError, got %T (%v)", err, err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestApplyFixes(t *testing.T) {
	t.Parallel()

	text := "const s = \"é\"\nfoo()"
	resolver := fix.NewResolver(map[string]fix.AutoFix{
		"a": {RuleID: "quotes", Edit: fix.AutoFixEdit{Start: 10, End: 13, Text: "'é'"}},
		"b": {RuleID: "semi", Edit: fix.AutoFixEdit{Start: 13, End: 13, Text: ";"}},
		"c": {RuleID: "semi", Edit: fix.AutoFixEdit{Start: 19, End: 19, Text: ";"}},
	})

	got, err := fix.ApplyFixes(text, resolver.OverlapFree())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "const s = 'é';\nfoo();"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
