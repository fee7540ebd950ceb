package format

import (
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"lumos/internal/classify"
)

// alignFields formats one flush batch of field lines so that the type column
// lines up across the batch. A batch is bounded by where the printer decided
// to flush it (struct entry/exit), never the whole document: sibling structs
// align independently.
func alignFields(lines []string, indent string) []string {
	type fieldParts struct {
		name string
		rest string
		ok   bool
	}

	parts := make([]fieldParts, len(lines))
	maxName := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		idx := strings.Index(trimmed, classify.FieldSeparator)
		if idx < 0 {
			// No separator: passed through indented but unpadded.
			parts[i] = fieldParts{name: trimmed}
			continue
		}
		name := strings.TrimSpace(trimmed[:idx])
		rest := strings.TrimSpace(trimmed[idx+1:])
		// A doubled separator collapses to one.
		rest = strings.TrimSpace(strings.TrimPrefix(rest, classify.FieldSeparator))
		parts[i] = fieldParts{name: name, rest: rest, ok: true}
		if w := runewidth.StringWidth(name); w > maxName {
			maxName = w
		}
	}

	out := make([]string, len(lines))
	for i, p := range parts {
		if !p.ok {
			out[i] = indent + p.name
			continue
		}
		pad := strings.Repeat(" ", maxName-runewidth.StringWidth(p.name))
		out[i] = strings.TrimRight(indent+p.name+classify.FieldSeparator+pad+" "+p.rest, " ")
	}
	return out
}

// sortStrings orders attribute lines byte-wise; normalization is not
// locale-aware.
func sortStrings(s []string) {
	sort.Strings(s)
}
