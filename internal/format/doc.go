// Package format re-indents schema documents, sorts attribute annotations and
// column-aligns struct field declarations using only lexical line
// classification.
//
// Purpose: a single-pass, total formatter: it never fails, and malformed
// input degrades to indentation-only changes.
// Does not do: parsing, semantic checks, or partial/incremental formatting.
// Dependencies: internal/classify, internal/source.
package format
