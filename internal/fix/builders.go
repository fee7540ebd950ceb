package fix

import (
	"lumos/internal/diag"
	"lumos/internal/source"
)

// Option mutates a fix during construction.
type Option func(*diag.Fix)

// Preferred marks the fix as the preferred suggestion.
func Preferred() Option {
	return func(f *diag.Fix) {
		f.IsPreferred = true
	}
}

// WithID sets a stable identifier for the fix.
func WithID(id string) Option {
	return func(f *diag.Fix) {
		f.ID = id
	}
}

func applyOptions(f diag.Fix, opts []Option) diag.Fix {
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

// InsertText creates a fix inserting text at a position.
func InsertText(title string, at source.Position, text string, opts ...Option) diag.Fix {
	fix := diag.Fix{
		Title: title,
		Edits: []diag.TextEdit{{
			Range:   source.Range{Start: at, End: at},
			NewText: text,
		}},
	}
	return applyOptions(fix, opts)
}

// ReplaceRange creates a fix replacing the text covered by a range.
// expect, when non-empty, guards application against stale documents.
func ReplaceRange(title string, rng source.Range, newText, expect string, opts ...Option) diag.Fix {
	fix := diag.Fix{
		Title: title,
		Edits: []diag.TextEdit{{
			Range:   rng,
			NewText: newText,
			OldText: expect,
		}},
	}
	return applyOptions(fix, opts)
}
