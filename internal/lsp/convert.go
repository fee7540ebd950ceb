package lsp

import (
	"unicode/utf8"

	"lumos/internal/diag"
	"lumos/internal/source"
)

// utf16Col converts a byte column within line to UTF-16 code units, the
// protocol's default position encoding.
func utf16Col(line string, byteCol int) int {
	if byteCol > len(line) {
		byteCol = len(line)
	}
	units := 0
	for i := 0; i < byteCol; {
		r, size := utf8.DecodeRuneInString(line[i:])
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		i += size
	}
	return units
}

func toLSPPosition(doc *source.Document, p source.Position) position {
	return position{Line: p.Line, Character: utf16Col(doc.Line(p.Line), p.Col)}
}

func toLSPRange(doc *source.Document, r source.Range) lspRange {
	return lspRange{Start: toLSPPosition(doc, r.Start), End: toLSPPosition(doc, r.End)}
}

// byteCol is the inverse of utf16Col, clamped to the end of the line.
func byteCol(line string, utf16Units int) int {
	units := 0
	i := 0
	for i < len(line) && units < utf16Units {
		r, size := utf8.DecodeRuneInString(line[i:])
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		i += size
	}
	return i
}

func fromLSPPosition(doc *source.Document, p position) source.Position {
	return source.Position{Line: p.Line, Col: byteCol(doc.Line(p.Line), p.Character)}
}

func fromLSPRange(doc *source.Document, r lspRange) source.Range {
	return source.Range{
		Start: fromLSPPosition(doc, r.Start),
		End:   fromLSPPosition(doc, r.End),
	}
}

func toLSPSeverity(sev diag.Severity) int {
	switch sev {
	case diag.SevError:
		return 1
	case diag.SevWarning:
		return 2
	default:
		return 3
	}
}

func toLSPDiagnostic(doc *source.Document, d diag.Diagnostic) lspDiagnostic {
	return lspDiagnostic{
		Range:    toLSPRange(doc, d.Range),
		Severity: toLSPSeverity(d.Severity),
		Code:     d.Code.String(),
		Source:   d.Source,
		Message:  d.Message,
	}
}

func toCodeAction(doc *source.Document, uri string, d diag.Diagnostic, f diag.Fix) codeAction {
	edits := make([]textEdit, 0, len(f.Edits))
	for _, e := range f.Edits {
		edits = append(edits, textEdit{Range: toLSPRange(doc, e.Range), NewText: e.NewText})
	}
	return codeAction{
		Title:       f.Title,
		Kind:        "quickfix",
		IsPreferred: f.IsPreferred,
		Diagnostics: []lspDiagnostic{toLSPDiagnostic(doc, d)},
		Edit: &workspaceEdit{
			Changes: map[string][]textEdit{uri: edits},
		},
	}
}
