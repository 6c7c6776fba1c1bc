package diff

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Span is a half-open [Start, End) rune range within a single line.
// Rune offsets rather than byte offsets so the renderer can slice styled
// segments without re-decoding.
type Span struct {
	Start int
	End   int
}

// IntralineSpans computes the character ranges that differ between the two
// sides of a modified line pair. The returned spans cover deleted runes in
// left and inserted runes in right, after semantic cleanup so that small
// equalities inside a larger edit are absorbed into one span.
func IntralineSpans(left, right string) (leftSpans, rightSpans []Span) {
	if left == right {
		return nil, nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(left, right, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	leftPos, rightPos := 0, 0
	for _, d := range diffs {
		n := utf8.RuneCountInString(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			leftPos += n
			rightPos += n
		case diffmatchpatch.DiffDelete:
			leftSpans = appendSpan(leftSpans, leftPos, leftPos+n)
			leftPos += n
		case diffmatchpatch.DiffInsert:
			rightSpans = appendSpan(rightSpans, rightPos, rightPos+n)
			rightPos += n
		}
	}
	return leftSpans, rightSpans
}

// appendSpan adds a span, merging it into the previous one when adjacent.
func appendSpan(spans []Span, start, end int) []Span {
	if n := len(spans); n > 0 && spans[n-1].End == start {
		spans[n-1].End = end
		return spans
	}
	return append(spans, Span{Start: start, End: end})
}
