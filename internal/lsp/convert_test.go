package lsp

import (
	"testing"

	"lumos/internal/fix"
	"lumos/internal/locate"
	"lumos/internal/source"
)

func TestUTF16ColRoundTrip(t *testing.T) {
	// "naïve": the ï is two UTF-8 bytes but one UTF-16 unit.
	line := "  naïve PublicKey"
	tests := []struct {
		bytes int
		units int
	}{
		{0, 0},
		{2, 2},
		{8, 7},   // end of "naïve"
		{18, 17}, // end of line
	}
	for _, tt := range tests {
		if got := utf16Col(line, tt.bytes); got != tt.units {
			t.Errorf("utf16Col(%d) = %d, want %d", tt.bytes, got, tt.units)
		}
		if got := byteCol(line, tt.units); got != tt.bytes {
			t.Errorf("byteCol(%d) = %d, want %d", tt.units, got, tt.bytes)
		}
	}
}

func TestUTF16ColSurrogatePair(t *testing.T) {
	// The emoji is four UTF-8 bytes and two UTF-16 units.
	line := "a\U0001F600b"
	if got := utf16Col(line, 5); got != 3 {
		t.Fatalf("utf16Col = %d, want 3", got)
	}
	if got := byteCol(line, 3); got != 5 {
		t.Fatalf("byteCol = %d, want 5", got)
	}
}

func TestPublishedPositionsUseUTF16Units(t *testing.T) {
	doc := source.NewDocument("struct Account {\n  naïve PublicKey;\n}")
	d, ok := locate.Diagnose("Caused by: missing `:` in field declaration", doc)
	if !ok {
		t.Fatal("expected a diagnostic")
	}
	// Byte columns: the trimmed field spans 2..19 on line 1.
	if d.Range.Start.Col != 2 || d.Range.End.Col != 19 {
		t.Fatalf("byte range = %d..%d, want 2..19", d.Range.Start.Col, d.Range.End.Col)
	}

	got := toLSPDiagnostic(doc, d)
	if got.Range.Start.Character != 2 {
		t.Errorf("start character = %d, want 2", got.Range.Start.Character)
	}
	if got.Range.End.Character != 18 {
		t.Errorf("end character = %d, want 18 UTF-16 units", got.Range.End.Character)
	}
}

func TestCodeActionEditsUseUTF16Units(t *testing.T) {
	doc := source.NewDocument("struct Account {\n  naïve: PublicKey\n}")
	d, ok := locate.Diagnose("Error: missing semicolon after field", doc)
	if !ok {
		t.Fatal("expected a diagnostic")
	}
	fixes := fix.Propose(doc, d)
	if len(fixes) == 0 {
		t.Fatal("expected a quick fix")
	}

	action := toCodeAction(doc, testURI, d, fixes[0])
	edits := action.Edit.Changes[testURI]
	if len(edits) != 1 {
		t.Fatalf("got %d edits, want 1", len(edits))
	}
	// The semicolon goes after byte 19, which is 18 UTF-16 units in.
	if edits[0].Range.Start.Character != 18 {
		t.Fatalf("edit character = %d, want 18", edits[0].Range.Start.Character)
	}
}
