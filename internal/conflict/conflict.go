// Package conflict parses Git-style conflict markers out of a text buffer
// and tracks per-conflict resolution choices for a resolve session.
//
// The parser and the store operate on lines split with "\n"; callers that
// deal in CRLF files normalize before handing buffers in (the document
// package does this) and restore the terminator on write.
package conflict

import (
	"fmt"
	"strings"
)

// Default labels used when a marker line carries no trailing text.
const (
	DefaultCurrentLabel  = "Current"
	DefaultIncomingLabel = "Incoming"
)

// Conflict is one marker-delimited conflict region in a buffer.
//
// StartLine and EndLine are 1-based inclusive positions of the opening and
// closing marker lines in the buffer the conflict was parsed from. BaseLines
// is nil when the conflict had no "|||||||" section, and an empty non-nil
// slice when the section was present but empty.
//
// Resolved is true iff Resolution and ResolvedLines are both set.
type Conflict struct {
	ID            string
	Ordinal       int
	CurrentLines  []string
	IncomingLines []string
	BaseLines     []string
	CurrentLabel  string
	IncomingLabel string
	StartLine     int
	EndLine       int
	Resolved      bool
	Resolution    Choice
	ResolvedLines []string
}

// HasBase reports whether the conflict carried a "|||||||" base section.
func (c *Conflict) HasBase() bool {
	return c.BaseLines != nil
}

// section tracks which part of an open conflict is being accumulated.
type section int

const (
	sectionNone section = iota
	sectionCurrent
	sectionBase
	sectionIncoming
)

const markerLen = 7

// isMarker reports whether the line opens with exactly seven repetitions of
// ch. An eighth repetition disqualifies the line, so content like
// "<<<<<<<<" is not mistaken for a marker.
func isMarker(line string, ch byte) bool {
	if len(line) < markerLen {
		return false
	}
	for i := 0; i < markerLen; i++ {
		if line[i] != ch {
			return false
		}
	}
	return len(line) == markerLen || line[markerLen] != ch
}

// markerLabel returns the trimmed text after a marker prefix, or fallback
// when the marker carries no label.
func markerLabel(line, fallback string) string {
	label := strings.TrimSpace(line[markerLen:])
	if label == "" {
		return fallback
	}
	return label
}

// Parse scans a buffer for Git-style conflict markers and returns the
// conflicts that close properly, in scan order. Ordinals are 1-based over
// closed conflicts and IDs are derived from them, so ranges are
// non-overlapping and strictly increasing.
//
// Malformed input never raises an error; it only degrades the result. A
// conflict whose end marker is missing at buffer end is dropped, an opening
// marker inside an open conflict abandons the partial record and starts
// over from the new marker, and separator or end markers seen out of order
// are treated as ordinary content. Mid-edit buffers routinely look like
// this, so the parser stays silent about all of it.
func Parse(buffer string) []Conflict {
	lines := strings.Split(buffer, "\n")

	var conflicts []Conflict
	var cur *Conflict
	state := sectionNone

	for i, line := range lines {
		lineNo := i + 1
		switch {
		case isMarker(line, '<'):
			cur = &Conflict{
				CurrentLabel: markerLabel(line, DefaultCurrentLabel),
				StartLine:    lineNo,
			}
			state = sectionCurrent
		case state == sectionCurrent && isMarker(line, '|'):
			cur.BaseLines = []string{}
			state = sectionBase
		case (state == sectionCurrent || state == sectionBase) && isMarker(line, '='):
			state = sectionIncoming
		case state == sectionIncoming && isMarker(line, '>'):
			cur.IncomingLabel = markerLabel(line, DefaultIncomingLabel)
			cur.EndLine = lineNo
			cur.Ordinal = len(conflicts) + 1
			cur.ID = fmt.Sprintf("conflict-%d", cur.Ordinal)
			conflicts = append(conflicts, *cur)
			cur = nil
			state = sectionNone
		case state == sectionCurrent:
			cur.CurrentLines = append(cur.CurrentLines, line)
		case state == sectionBase:
			cur.BaseLines = append(cur.BaseLines, line)
		case state == sectionIncoming:
			cur.IncomingLines = append(cur.IncomingLines, line)
		}
	}

	return conflicts
}
