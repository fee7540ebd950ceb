package locate

import (
	"strings"

	"lumos/internal/diag"
	"lumos/internal/source"
)

// codeFor maps a lowercased message to a stable diagnostic code.
func codeFor(msg string) diag.Code {
	switch {
	case mentionsMissingColon(msg):
		return diag.SchemaMissingColon
	case mentionsMissingSemi(msg):
		return diag.SchemaMissingSemi
	case mentionsMissingBrace(msg):
		return diag.SchemaMissingBrace
	case strings.Contains(msg, "type"):
		return diag.SchemaUnknownType
	case strings.Contains(msg, "attribute") || strings.Contains(msg, "annotation"):
		return diag.SchemaMissingAttr
	default:
		return diag.SchemaError
	}
}

// Diagnose produces at most one diagnostic per validation run: the extracted
// message, anchored by heuristic location. The message text is preserved
// verbatim even when the location falls back to the document start.
func Diagnose(rawErrorText string, doc *source.Document) (diag.Diagnostic, bool) {
	msg, ok := ExtractMessage(rawErrorText)
	if !ok {
		return diag.Diagnostic{}, false
	}
	rng := Locate(msg, doc)
	return diag.NewError(codeFor(strings.ToLower(msg)), rng, msg), true
}
