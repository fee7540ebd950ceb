package locate

import "testing"

func TestExtractMessageCausedBy(t *testing.T) {
	raw := "thread 'main' panicked\nCaused by: Schema parsing error: missing colon after field name\nnote: run again"
	msg, ok := ExtractMessage(raw)
	if !ok {
		t.Fatalf("expected a message")
	}
	if msg != "missing colon after field name" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestExtractMessageCausedByWithoutSubMarker(t *testing.T) {
	msg, ok := ExtractMessage("caused by: unexpected token `}`")
	if !ok || msg != "unexpected token `}`" {
		t.Fatalf("unexpected: ok=%v msg=%q", ok, msg)
	}
}

func TestExtractMessageErrorFallback(t *testing.T) {
	msg, ok := ExtractMessage("lumos-compiler: Error: expected `;` at end of statement")
	if !ok || msg != "expected `;` at end of statement" {
		t.Fatalf("unexpected: ok=%v msg=%q", ok, msg)
	}
}

func TestExtractMessageCausedByWinsOverError(t *testing.T) {
	raw := "Error: build failed\nCaused by: missing semicolon"
	msg, ok := ExtractMessage(raw)
	if !ok || msg != "missing semicolon" {
		t.Fatalf("caused-by marker must win: ok=%v msg=%q", ok, msg)
	}
}

func TestExtractMessageNoMarker(t *testing.T) {
	// Scenario D: unrecognizable output yields nothing, not a fabricated
	// error.
	if _, ok := ExtractMessage("everything exploded with no markers"); ok {
		t.Fatalf("expected no message")
	}
	if _, ok := ExtractMessage(""); ok {
		t.Fatalf("expected no message for empty text")
	}
}

func TestExtractMessageCaseInsensitive(t *testing.T) {
	msg, ok := ExtractMessage("CAUSED BY: SCHEMA PARSING ERROR: bad thing")
	if !ok || msg != "bad thing" {
		t.Fatalf("unexpected: ok=%v msg=%q", ok, msg)
	}
}
