package diagfmt

import (
	"encoding/json"
	"io"

	"lumos/internal/diag"
)

// JSONDiagnostic is the wire form of one diagnostic. Positions are 1-based
// to match the pretty renderer.
type JSONDiagnostic struct {
	Path     string `json:"path"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	EndLine  int    `json:"endLine"`
	EndCol   int    `json:"endColumn"`
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Source   string `json:"source"`
}

// JSON encodes diagnostics as an indented JSON array.
func JSON(w io.Writer, path string, diags []diag.Diagnostic) error {
	payload := make([]JSONDiagnostic, 0, len(diags))
	for _, d := range diags {
		payload = append(payload, JSONDiagnostic{
			Path:     path,
			Line:     d.Range.Start.Line + 1,
			Column:   d.Range.Start.Col + 1,
			EndLine:  d.Range.End.Line + 1,
			EndCol:   d.Range.End.Col + 1,
			Severity: d.Severity.String(),
			Code:     d.Code.String(),
			Message:  d.Message,
			Source:   d.Source,
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
