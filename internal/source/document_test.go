package source

import "testing"

func TestDocumentRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"struct Wallet {",
		"struct Wallet {\n    balance: u64;\n}\n",
		"\n\n",
		"a\r\nb", // lone CR survives; only FileSet.Load normalizes
	}
	for _, text := range cases {
		doc := NewDocument(text)
		if got := doc.Text(); got != text {
			t.Fatalf("round trip mismatch:\nwant %q\ngot  %q", text, got)
		}
	}
}

func TestDocumentLineAccess(t *testing.T) {
	doc := NewDocument("first\nsecond\n")
	if doc.LineCount() != 3 {
		t.Fatalf("expected 3 lines (trailing newline yields empty last line), got %d", doc.LineCount())
	}
	if doc.Line(1) != "second" {
		t.Fatalf("expected %q, got %q", "second", doc.Line(1))
	}
	if doc.Line(-1) != "" || doc.Line(99) != "" {
		t.Fatalf("out-of-bounds line access must return empty string")
	}
}

func TestDocumentOffsetOf(t *testing.T) {
	doc := NewDocument("ab\ncd")
	tests := []struct {
		pos  Position
		want int
	}{
		{Position{Line: 0, Col: 0}, 0},
		{Position{Line: 0, Col: 2}, 2},
		{Position{Line: 1, Col: 0}, 3},
		{Position{Line: 1, Col: 2}, 5},
		{Position{Line: 0, Col: 99}, 2}, // clamped to end of line
		{Position{Line: 99, Col: 0}, 5}, // clamped to end of text
		{Position{Line: -1, Col: 5}, 0}, // clamped to start
	}
	for _, tt := range tests {
		if got := doc.OffsetOf(tt.pos); got != tt.want {
			t.Errorf("OffsetOf(%v) = %d, want %d", tt.pos, got, tt.want)
		}
	}
}

func TestRangeOverlaps(t *testing.T) {
	at := func(l, c, w int) Range { return RangeAt(l, c, w) }
	if at(0, 0, 2).Overlaps(at(0, 2, 2)) {
		t.Fatalf("adjacent ranges must not overlap")
	}
	if !at(0, 0, 3).Overlaps(at(0, 2, 2)) {
		t.Fatalf("intersecting ranges must overlap")
	}
	if at(0, 1, 0).Overlaps(at(0, 5, 0)) {
		t.Fatalf("two empty ranges never conflict")
	}
	if !at(0, 1, 0).Overlaps(at(0, 0, 3)) {
		t.Fatalf("empty range inside a non-empty one conflicts")
	}
}

func TestDocumentClamp(t *testing.T) {
	doc := NewDocument("abc\nde")
	r := doc.Clamp(Range{Start: Position{Line: 5, Col: 0}, End: Position{Line: 7, Col: 3}})
	want := Range{Start: Position{Line: 1, Col: 2}, End: Position{Line: 1, Col: 2}}
	if r != want {
		t.Fatalf("Clamp mismatch: want %v, got %v", want, r)
	}
}
