package source

import "strings"

// Document is an immutable, 0-indexed view of a schema text as lines.
// It is the unit both the formatter and the diagnostic locator consume;
// neither mutates it, all edits are expressed as replacement text or patches.
type Document struct {
	lines []string
}

// NewDocument splits text into lines on '\n'. The split is loss-free:
// Text() reproduces the input byte-for-byte.
func NewDocument(text string) *Document {
	return &Document{lines: strings.Split(text, "\n")}
}

// NewDocumentFromLines wraps an existing line slice without copying.
func NewDocumentFromLines(lines []string) *Document {
	return &Document{lines: lines}
}

// LineCount returns the number of lines, always at least one.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns the i-th line, or the empty string when i is out of bounds.
func (d *Document) Line(i int) string {
	if i < 0 || i >= len(d.lines) {
		return ""
	}
	return d.lines[i]
}

// Lines returns the underlying line slice. Callers must not modify it.
func (d *Document) Lines() []string {
	return d.lines
}

// Text joins the lines back into the full document text.
func (d *Document) Text() string {
	return strings.Join(d.lines, "\n")
}

// OffsetOf converts a position into a byte offset in Text().
// Out-of-bounds positions are clamped to the nearest valid offset.
func (d *Document) OffsetOf(p Position) int {
	if p.Line < 0 {
		return 0
	}
	off := 0
	for i := 0; i < p.Line && i < len(d.lines); i++ {
		off += len(d.lines[i]) + 1
	}
	if p.Line >= len(d.lines) {
		if len(d.lines) == 0 {
			return 0
		}
		return off - 1
	}
	col := p.Col
	if col < 0 {
		col = 0
	}
	if col > len(d.lines[p.Line]) {
		col = len(d.lines[p.Line])
	}
	return off + col
}

// Clamp returns r constrained to positions that exist in the document.
func (d *Document) Clamp(r Range) Range {
	r.Start = d.clampPos(r.Start)
	r.End = d.clampPos(r.End)
	if r.End.Before(r.Start) {
		r.End = r.Start
	}
	return r
}

func (d *Document) clampPos(p Position) Position {
	if p.Line < 0 {
		return Position{}
	}
	if p.Line >= len(d.lines) {
		last := len(d.lines) - 1
		return Position{Line: last, Col: len(d.lines[last])}
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if p.Col > len(d.lines[p.Line]) {
		p.Col = len(d.lines[p.Line])
	}
	return p
}
