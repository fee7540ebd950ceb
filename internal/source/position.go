package source

import "fmt"

// Position is a 0-based (line, column) location inside a document.
// Column counts bytes within the line; a column equal to the line length
// denotes the end-of-line insertion point.
type Position struct {
	Line int
	Col  int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Before reports whether p precedes other lexicographically by (line, column).
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

// Range is an ordered pair of positions with Start <= End.
type Range struct {
	Start Position
	End   Position
}

// RangeAt builds a single-line range of the given byte width.
func RangeAt(line, col, width int) Range {
	return Range{
		Start: Position{Line: line, Col: col},
		End:   Position{Line: line, Col: col + width},
	}
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// Empty reports whether the range covers no text.
func (r Range) Empty() bool {
	return r.Start == r.End
}

// Valid reports whether the range is ordered and non-negative.
func (r Range) Valid() bool {
	if r.Start.Line < 0 || r.Start.Col < 0 {
		return false
	}
	return !r.End.Before(r.Start)
}

// Overlaps reports whether two ranges conflict when applied as edits.
// Ranges are half-open; two empty ranges never conflict, while an empty
// range conflicts with a non-empty one that strictly contains its position.
func (r Range) Overlaps(other Range) bool {
	if r.Empty() && other.Empty() {
		return false
	}
	if r.Empty() {
		return !r.Start.Before(other.Start) && r.Start.Before(other.End)
	}
	if other.Empty() {
		return !other.Start.Before(r.Start) && other.Start.Before(r.End)
	}
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}
