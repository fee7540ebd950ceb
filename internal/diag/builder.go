package diag

import "lumos/internal/source"

func New(sev Severity, code Code, rng source.Range, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Range:    rng,
		Message:  msg,
		Source:   SourceName,
	}
}

func NewError(code Code, rng source.Range, msg string) Diagnostic {
	return New(SevError, code, rng, msg)
}

func (d Diagnostic) WithFix(title string, edits ...TextEdit) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{Title: title, Edits: edits})
	return d
}
