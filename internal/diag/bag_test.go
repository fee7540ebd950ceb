package diag

import (
	"testing"

	"lumos/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 3; i++ {
		ok := b.Add(NewError(SchemaError, source.RangeAt(i, 0, 1), "boom"))
		if i < 2 && !ok {
			t.Fatalf("add %d rejected below limit", i)
		}
		if i == 2 && ok {
			t.Fatalf("add beyond limit accepted")
		}
	}
	if b.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", b.Len())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(8)
	b.Add(NewError(SchemaMissingSemi, source.RangeAt(2, 0, 1), "second"))
	b.Add(NewError(SchemaMissingColon, source.RangeAt(0, 4, 1), "first"))
	b.Add(NewError(SchemaMissingColon, source.RangeAt(0, 4, 1), "first again"))
	b.Sort()
	b.Dedup()

	if b.Len() != 2 {
		t.Fatalf("expected dedup to 2 items, got %d", b.Len())
	}
	items := b.Items()
	if items[0].Code != SchemaMissingColon || items[1].Code != SchemaMissingSemi {
		t.Fatalf("unexpected order: %v then %v", items[0].Code, items[1].Code)
	}
}

func TestBagHasErrors(t *testing.T) {
	b := NewBag(4)
	b.Add(New(SevWarning, FmtInfo, source.RangeAt(0, 0, 1), "note"))
	if b.HasErrors() {
		t.Fatalf("warning-only bag must not report errors")
	}
	b.Add(NewError(SchemaError, source.RangeAt(0, 0, 1), "boom"))
	if !b.HasErrors() {
		t.Fatalf("bag with error must report errors")
	}
}

func TestCodeString(t *testing.T) {
	if got := SchemaMissingColon.String(); got != "LUM2001" {
		t.Fatalf("unexpected code string %q", got)
	}
	if got := SchemaMissingColon.ID(); got != "lum2001" {
		t.Fatalf("unexpected code id %q", got)
	}
}
