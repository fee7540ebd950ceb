package source

import (
	"bytes"
	"testing"
)

func TestNormalizeCRLF(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		changed bool
	}{
		{"struct A {}\n", "struct A {}\n", false},
		{"struct A {\r\n}\r\n", "struct A {\n}\n", true},
		{"lone\rcarriage", "lone\rcarriage", false},
		{"mixed\r\nand\rlone", "mixed\nand\rlone", true},
	}
	for _, tt := range tests {
		got, changed := normalizeCRLF([]byte(tt.in))
		if string(got) != tt.want || changed != tt.changed {
			t.Errorf("normalizeCRLF(%q) = (%q, %v), want (%q, %v)", tt.in, got, changed, tt.want, tt.changed)
		}
	}
}

func TestRemoveBOM(t *testing.T) {
	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte("struct A {}")...)
	got, had := removeBOM(withBOM)
	if !had || !bytes.Equal(got, []byte("struct A {}")) {
		t.Fatalf("BOM not stripped: %q", got)
	}
	got, had = removeBOM([]byte("no bom"))
	if had || string(got) != "no bom" {
		t.Fatalf("unexpected BOM removal on %q", got)
	}
}

func TestFileSetAddVirtual(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("wallet.lumos", []byte("struct Wallet {\n}\n"))
	f := fs.Get(id)
	if f.Flags&FileVirtual == 0 {
		t.Fatalf("virtual flag not set")
	}
	if len(f.LineIdx) != 2 {
		t.Fatalf("expected 2 newline offsets, got %d", len(f.LineIdx))
	}
	if doc := f.Document(); doc.Line(0) != "struct Wallet {" {
		t.Fatalf("unexpected first line %q", doc.Line(0))
	}
	if _, ok := fs.GetByPath("wallet.lumos"); !ok {
		t.Fatalf("file not indexed by path")
	}
}

func TestFileResolve(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("s.lumos", []byte("a\nb\n")))
	lc := f.Resolve(Position{Line: 1, Col: 0})
	if lc.Line != 2 || lc.Col != 1 {
		t.Fatalf("Resolve mismatch: got %d:%d, want 2:1", lc.Line, lc.Col)
	}
}
