package diag

import (
	"lumos/internal/source"
)

// SourceName tags every diagnostic this toolchain produces.
const SourceName = "LUMOS"

// TextEdit is a single replacement of a range with new text.
// OldText, when non-empty, guards application: the edit is skipped if the
// document no longer contains it at the range.
type TextEdit struct {
	Range   source.Range
	NewText string
	OldText string
}

// Fix is a named, independently applicable repair suggestion.
type Fix struct {
	ID          string
	Title       string
	IsPreferred bool
	Edits       []TextEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Range    source.Range
	Source   string
	Fixes    []Fix
}
