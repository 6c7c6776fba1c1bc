package conflict

import (
	"slices"
	"strings"
)

// Choice identifies how a conflict was resolved.
type Choice string

const (
	// ChooseCurrent keeps the current (ours) side verbatim.
	ChooseCurrent Choice = "current"
	// ChooseIncoming keeps the incoming (theirs) side verbatim.
	ChooseIncoming Choice = "incoming"
	// ChooseBoth keeps both sides, current first.
	ChooseBoth Choice = "both"
	// ChooseBothReverse keeps both sides, incoming first. Only the 3-way
	// conflict viewer offers it; the simple resolve action set does not.
	ChooseBothReverse Choice = "bothReverse"
	// ChooseCustom replaces the conflict with caller-supplied text.
	// Set through ResolveCustom, never through Resolve.
	ChooseCustom Choice = "custom"
)

// Store tracks resolution state for the conflicts parsed from one buffer.
// It is single-threaded mutable state owned by one resolve session; an
// embedding host that shares it across goroutines must serialize access
// itself.
type Store struct {
	conflicts []Conflict
	index     map[string]int
}

// NewStore wraps a parsed conflict list in a resolution store. The slice is
// copied, so later mutations of the caller's slice do not leak in.
func NewStore(conflicts []Conflict) *Store {
	s := &Store{
		conflicts: slices.Clone(conflicts),
		index:     make(map[string]int, len(conflicts)),
	}
	for i := range s.conflicts {
		s.index[s.conflicts[i].ID] = i
	}
	return s
}

// Len returns the number of conflicts in the store.
func (s *Store) Len() int {
	return len(s.conflicts)
}

// Conflicts returns the store's conflict list in ordinal order. The backing
// array is shared; callers treat it as read-only and go through Resolve to
// change state.
func (s *Store) Conflicts() []Conflict {
	return s.conflicts
}

// Get returns the conflict with the given id, or false when no such
// conflict exists.
func (s *Store) Get(id string) (*Conflict, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return &s.conflicts[i], true
}

// Resolve applies a choice to the conflict with the given id and reports
// whether anything was resolved. An unknown id is a no-op: UI action
// dispatch can race a re-parse, and dropping the action is safer than
// failing it. Re-resolving an already resolved conflict overwrites the
// previous choice; there is no transition back to unresolved.
//
// ChooseCustom is rejected here because it needs replacement text; use
// ResolveCustom.
func (s *Store) Resolve(id string, choice Choice) bool {
	c, ok := s.Get(id)
	if !ok {
		return false
	}

	var lines []string
	switch choice {
	case ChooseCurrent:
		lines = slices.Clone(c.CurrentLines)
	case ChooseIncoming:
		lines = slices.Clone(c.IncomingLines)
	case ChooseBoth:
		lines = append(slices.Clone(c.CurrentLines), c.IncomingLines...)
	case ChooseBothReverse:
		lines = append(slices.Clone(c.IncomingLines), c.CurrentLines...)
	default:
		return false
	}

	c.Resolved = true
	c.Resolution = choice
	c.ResolvedLines = lines
	return true
}

// ResolveCustom resolves the conflict with caller-supplied replacement
// text, split on "\n". Empty text resolves to a single blank line, matching
// what splitting an empty string yields.
func (s *Store) ResolveCustom(id, text string) bool {
	c, ok := s.Get(id)
	if !ok {
		return false
	}

	c.Resolved = true
	c.Resolution = ChooseCustom
	c.ResolvedLines = strings.Split(text, "\n")
	return true
}

// ResolvedCount returns how many conflicts have been resolved.
func (s *Store) ResolvedCount() int {
	n := 0
	for i := range s.conflicts {
		if s.conflicts[i].Resolved {
			n++
		}
	}
	return n
}

// AllResolved reports whether the store holds at least one conflict and
// every one of them is resolved. A store with zero conflicts is never
// considered all-resolved, so a no-op parse cannot enable save.
func (s *Store) AllResolved() bool {
	if len(s.conflicts) == 0 {
		return false
	}
	for i := range s.conflicts {
		if !s.conflicts[i].Resolved {
			return false
		}
	}
	return true
}

// BuildResolvedContent splices resolved lines over each resolved conflict's
// marker block and copies everything else through verbatim. Unresolved
// conflicts keep their marker block exactly as found, so with zero
// resolutions the result is byte-identical to the input buffer. Conflicts
// whose recorded range no longer fits the buffer are skipped rather than
// spliced wrongly.
func (s *Store) BuildResolvedContent(original string) string {
	lines := strings.Split(original, "\n")

	out := make([]string, 0, len(lines))
	cursor := 0
	for i := range s.conflicts {
		c := &s.conflicts[i]
		start := c.StartLine - 1
		end := c.EndLine - 1
		if start < cursor || end >= len(lines) {
			continue
		}

		out = append(out, lines[cursor:start]...)
		if c.Resolved {
			out = append(out, c.ResolvedLines...)
		} else {
			out = append(out, lines[start:end+1]...)
		}
		cursor = end + 1
	}
	out = append(out, lines[cursor:]...)

	return strings.Join(out, "\n")
}
