package fix

import (
	"fmt"
	"strings"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// DiffLineKind tells whether a diff line is kept, added or removed.
type DiffLineKind int

// Diff line kinds.
const (
	DiffLineContext DiffLineKind = iota
	DiffLineAdd
	DiffLineRemove
)

// DiffLine is one line of a hunk, without its prefix.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffHunk is a contiguous group of changes with surrounding context.
// Line numbers are 1-based.
type DiffHunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []DiffLine
}

// Diff is the line diff of a fixed file.
type Diff struct {
	Path      string
	Hunks     []DiffHunk
	Additions int
	Deletions int
}

// GenerateDiff returns the line diff between original and modified, or nil when
// they have the same lines.
func GenerateDiff(path string, original, modified []byte) *Diff {
	script := editScript(splitLines(original), splitLines(modified))

	diff := &Diff{Path: path}
	for _, line := range script {
		switch line.Kind {
		case DiffLineAdd:
			diff.Additions++
		case DiffLineRemove:
			diff.Deletions++
		}
	}
	if diff.Additions == 0 && diff.Deletions == 0 {
		return nil
	}
	diff.Hunks = groupHunks(script)
	return diff
}

// HasChanges reports whether the diff holds at least one hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders the diff in unified format.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")
	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n+++ b/%s\n", path, path)
	for _, hunk := range d.Hunks {
		builder.WriteString(hunk.Header())
		builder.WriteByte('\n')
		for _, line := range hunk.Lines {
			builder.WriteString(line.Prefix())
			builder.WriteString(line.Content)
			builder.WriteByte('\n')
		}
	}
	return builder.String()
}

// Header returns the "@@ -a,b +c,d @@" line of the hunk.
func (h DiffHunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
}

// Prefix returns the unified diff marker of the line.
func (l DiffLine) Prefix() string {
	switch l.Kind {
	case DiffLineAdd:
		return "+"
	case DiffLineRemove:
		return "-"
	default:
		return " "
	}
}

func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

// editScript turns orig into mod using a longest common subsequence table.
// Removals are emitted before additions at each point of difference.
func editScript(orig, mod []string) []DiffLine {
	rows, cols := len(orig), len(mod)
	table := make([][]int, rows+1)
	for i := range table {
		table[i] = make([]int, cols+1)
	}
	for i := rows - 1; i >= 0; i-- {
		for j := cols - 1; j >= 0; j-- {
			if orig[i] == mod[j] {
				table[i][j] = table[i+1][j+1] + 1
			} else {
				table[i][j] = max(table[i+1][j], table[i][j+1])
			}
		}
	}

	script := make([]DiffLine, 0, max(rows, cols))
	i, j := 0, 0
	for i < rows || j < cols {
		switch {
		case i < rows && j < cols && orig[i] == mod[j]:
			script = append(script, DiffLine{Kind: DiffLineContext, Content: orig[i]})
			i++
			j++
		case j == cols || (i < rows && table[i+1][j] >= table[i][j+1]):
			script = append(script, DiffLine{Kind: DiffLineRemove, Content: orig[i]})
			i++
		default:
			script = append(script, DiffLine{Kind: DiffLineAdd, Content: mod[j]})
			j++
		}
	}
	return script
}

// groupHunks splits an edit script into hunks. Changes separated by at most
// twice the context size share a hunk.
func groupHunks(script []DiffLine) []DiffHunk {
	var hunks []DiffHunk
	origLine, modLine := 1, 1

	var current *DiffHunk
	lastChange := -1
	for idx, line := range script {
		if line.Kind != DiffLineContext {
			if current == nil || idx-lastChange > 2*contextLines {
				if current != nil {
					hunks = append(hunks, closeHunk(*current, script, lastChange))
				}
				current = startHunk(script, idx, origLine, modLine)
			} else {
				current.Lines = append(current.Lines, script[lastChange+1:idx]...)
			}
			current.Lines = append(current.Lines, line)
			lastChange = idx
		}

		if line.Kind != DiffLineAdd {
			origLine++
		}
		if line.Kind != DiffLineRemove {
			modLine++
		}
	}
	if current != nil {
		hunks = append(hunks, closeHunk(*current, script, lastChange))
	}
	return hunks
}

// startHunk opens a hunk at script[idx] with up to contextLines of leading context.
func startHunk(script []DiffLine, idx, origLine, modLine int) *DiffHunk {
	from := max(0, idx-contextLines)
	lead := script[from:idx]
	hunk := &DiffHunk{
		OriginalStart: origLine - len(lead),
		ModifiedStart: modLine - len(lead),
	}
	hunk.Lines = append(hunk.Lines, lead...)
	return hunk
}

// closeHunk appends up to contextLines of trailing context after the last change.
func closeHunk(hunk DiffHunk, script []DiffLine, lastChange int) DiffHunk {
	tail := script[lastChange+1 : min(len(script), lastChange+1+contextLines)]
	hunk.Lines = append(hunk.Lines, tail...)
	return countLines(hunk)
}

func countLines(hunk DiffHunk) DiffHunk {
	hunk.OriginalCount, hunk.ModifiedCount = 0, 0
	for _, line := range hunk.Lines {
		if line.Kind != DiffLineAdd {
			hunk.OriginalCount++
		}
		if line.Kind != DiffLineRemove {
			hunk.ModifiedCount++
		}
	}
	return hunk
}
