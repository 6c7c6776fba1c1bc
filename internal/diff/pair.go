package diff

// InlineLine is an edit script entry annotated with a display counter for
// the unified view's gutter. DisplayLine is 1-based and increments once per
// entry regardless of kind, independent of the original/revised counters.
type InlineLine struct {
	Entry
	DisplayLine int
}

// Inline annotates a script with running display line numbers for the
// unified view.
func Inline(script []Entry) []InlineLine {
	out := make([]InlineLine, len(script))
	for i, e := range script {
		out[i] = InlineLine{Entry: e, DisplayLine: i + 1}
	}
	return out
}

// PairedLine is one row of the side-by-side view. A side whose line number
// is 0 is blank; the renderer draws a placeholder row there so the two
// columns stay vertically aligned. ChangeGroup is 1-based and 0 when the
// row is not part of any change region.
type PairedLine struct {
	Kind        Kind
	LeftText    string
	RightText   string
	LeftLine    int
	RightLine   int
	ChangeGroup int
}

// Region marks a contiguous original+revised line range as one logical
// change. Ranges are 1-based and inclusive; a zero Start on a side means
// the region touches no lines on that side.
type Region struct {
	OriginalStart int
	OriginalEnd   int
	RevisedStart  int
	RevisedEnd    int
}

// spansBoth reports whether the region covers lines on both sides, i.e.
// represents a substitution rather than a pure insertion or deletion.
func (r Region) spansBoth() bool {
	return r.OriginalStart > 0 && r.RevisedStart > 0
}

// SideBySide pairs an edit script into aligned rows. Exactly one row is
// emitted per script entry: unchanged entries populate both sides, removed
// entries the left side only, added entries the right side only. When
// regions is non-nil, rows whose line falls inside a region carry that
// region's 1-based index as ChangeGroup, and added/removed rows inside a
// region spanning both sides are reclassified as modified. With a nil
// region list every non-unchanged row keeps its added/removed kind.
func SideBySide(script []Entry, regions []Region) []PairedLine {
	out := make([]PairedLine, 0, len(script))
	for _, e := range script {
		p := PairedLine{Kind: e.Kind}
		switch e.Kind {
		case KindUnchanged:
			p.LeftText = e.Text
			p.RightText = e.Text
			p.LeftLine = e.OriginalLine
			p.RightLine = e.RevisedLine
		case KindRemoved:
			p.LeftText = e.Text
			p.LeftLine = e.OriginalLine
		case KindAdded:
			p.RightText = e.Text
			p.RightLine = e.RevisedLine
		}
		if e.Kind != KindUnchanged {
			if idx, ok := regionFor(regions, e); ok {
				p.ChangeGroup = idx + 1
				if regions[idx].spansBoth() {
					p.Kind = KindModified
				}
			}
		}
		out = append(out, p)
	}
	return out
}

// regionFor returns the index of the region containing the entry's line on
// its own side.
func regionFor(regions []Region, e Entry) (int, bool) {
	for i, r := range regions {
		switch e.Kind {
		case KindRemoved:
			if r.OriginalStart > 0 && e.OriginalLine >= r.OriginalStart && e.OriginalLine <= r.OriginalEnd {
				return i, true
			}
		case KindAdded:
			if r.RevisedStart > 0 && e.RevisedLine >= r.RevisedStart && e.RevisedLine <= r.RevisedEnd {
				return i, true
			}
		}
	}
	return 0, false
}

// Regions groups each maximal run of consecutive added/removed entries into
// one change region. Callers pass the result to SideBySide; change-group
// navigation in the viewers steps through the same list.
func Regions(script []Entry) []Region {
	var regions []Region
	inRun := false
	for _, e := range script {
		if e.Kind == KindUnchanged {
			inRun = false
			continue
		}
		if !inRun {
			regions = append(regions, Region{})
			inRun = true
		}
		r := &regions[len(regions)-1]
		switch e.Kind {
		case KindRemoved:
			if r.OriginalStart == 0 {
				r.OriginalStart = e.OriginalLine
			}
			r.OriginalEnd = e.OriginalLine
		case KindAdded:
			if r.RevisedStart == 0 {
				r.RevisedStart = e.RevisedLine
			}
			r.RevisedEnd = e.RevisedLine
		}
	}
	return regions
}
