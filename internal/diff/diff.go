// Package diff computes line-level diffs between two text buffers.
//
// Compute produces a minimal edit script via the classic dynamic-programming
// longest-common-subsequence algorithm. The pairing helpers in this package
// reshape that script for inline and side-by-side presentation; they never
// re-diff the inputs.
package diff

// Kind classifies a line in an edit script or paired stream.
type Kind int

const (
	// KindUnchanged is a line present in both sequences.
	KindUnchanged Kind = iota
	// KindAdded is a line present only in the revised sequence.
	KindAdded
	// KindRemoved is a line present only in the original sequence.
	KindRemoved
	// KindModified marks a paired line that falls inside a change region
	// spanning both sequences. Compute never emits it; SideBySide assigns
	// it when a caller-supplied region list identifies a substitution.
	KindModified
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindUnchanged:
		return "unchanged"
	case KindAdded:
		return "added"
	case KindRemoved:
		return "removed"
	case KindModified:
		return "modified"
	default:
		return "unknown"
	}
}

// Entry is one line of an edit script, in revised-document order.
// OriginalLine is 1-based and set for unchanged and removed entries;
// RevisedLine is 1-based and set for unchanged and added entries.
// A zero value means the counter does not apply to this entry.
type Entry struct {
	Kind         Kind
	Text         string
	OriginalLine int
	RevisedLine  int
}

// Compute diffs two line sequences and returns the edit script in
// top-to-bottom order. Equality is exact; callers must split both buffers
// on the same line terminator before calling. The function is total:
// empty inputs produce empty or all-added/all-removed scripts.
func Compute(original, revised []string) []Entry {
	m := len(original)
	n := len(revised)

	// LCS length table over prefixes.
	table := make([][]int, m+1)
	for i := range table {
		table[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if original[i-1] == revised[j-1] {
				table[i][j] = table[i-1][j-1] + 1
			} else if table[i-1][j] > table[i][j-1] {
				table[i][j] = table[i-1][j]
			} else {
				table[i][j] = table[i][j-1]
			}
		}
	}

	// Backtrack from the bottom-right corner. The >= tie-break when scores
	// are equal consumes the revised line first, which after reversal renders
	// an ambiguous substitution as removed-then-added.
	entries := make([]Entry, 0, m+n)
	i, j := m, n
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && original[i-1] == revised[j-1]:
			entries = append(entries, Entry{
				Kind:         KindUnchanged,
				Text:         original[i-1],
				OriginalLine: i,
				RevisedLine:  j,
			})
			i--
			j--
		case j > 0 && (i == 0 || table[i][j-1] >= table[i-1][j]):
			entries = append(entries, Entry{
				Kind:        KindAdded,
				Text:        revised[j-1],
				RevisedLine: j,
			})
			j--
		default:
			entries = append(entries, Entry{
				Kind:         KindRemoved,
				Text:         original[i-1],
				OriginalLine: i,
			})
			i--
		}
	}

	// Reverse into top-to-bottom order.
	for l, r := 0, len(entries)-1; l < r; l, r = l+1, r-1 {
		entries[l], entries[r] = entries[r], entries[l]
	}
	return entries
}

// Stats summarizes an edit script for display.
type Stats struct {
	Added     int
	Removed   int
	Unchanged int
}

// Summarize counts the entries of each kind in a script.
func Summarize(script []Entry) Stats {
	var s Stats
	for _, e := range script {
		switch e.Kind {
		case KindAdded:
			s.Added++
		case KindRemoved:
			s.Removed++
		case KindUnchanged:
			s.Unchanged++
		}
	}
	return s
}

// HasChanges reports whether the script contains any added or removed lines.
func (s Stats) HasChanges() bool {
	return s.Added > 0 || s.Removed > 0
}
