package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"lumos/internal/diag"
	"lumos/internal/source"
)

func TestPrettyPlain(t *testing.T) {
	doc := source.NewDocument("wallet PublicKey\n")
	d := diag.NewError(diag.SchemaMissingColon, source.RangeAt(0, 0, 6), "expected `:` after field name")

	var buf bytes.Buffer
	Pretty(&buf, "wallet.lumos", doc, []diag.Diagnostic{d}, PrettyOpts{Context: true})

	out := buf.String()
	if !strings.Contains(out, "wallet.lumos:1:1: ERROR LUM2001: expected `:` after field name") {
		t.Fatalf("header mismatch:\n%s", out)
	}
	if !strings.Contains(out, "    wallet PublicKey\n    ^~~~~~\n") {
		t.Fatalf("caret underline mismatch:\n%s", out)
	}
}

func TestPrettyWithoutContext(t *testing.T) {
	doc := source.NewDocument("x\n")
	d := diag.NewError(diag.SchemaError, source.RangeAt(0, 0, 1), "boom")

	var buf bytes.Buffer
	Pretty(&buf, "s.lumos", doc, []diag.Diagnostic{d}, PrettyOpts{})
	if strings.Count(buf.String(), "\n") != 1 {
		t.Fatalf("expected a single header line:\n%q", buf.String())
	}
}

func TestJSON(t *testing.T) {
	d := diag.NewError(diag.SchemaMissingSemi, source.RangeAt(2, 4, 3), "missing semicolon")

	var buf bytes.Buffer
	if err := JSON(&buf, "s.lumos", []diag.Diagnostic{d}); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	var decoded []JSONDiagnostic
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected one entry, got %d", len(decoded))
	}
	got := decoded[0]
	if got.Line != 3 || got.Column != 5 || got.Code != "LUM2002" || got.Source != "LUMOS" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, "s.lumos", nil); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("expected empty array, got %q", buf.String())
	}
}
