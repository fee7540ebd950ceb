package fix

import (
	"fmt"
	"regexp"
	"strings"

	"lumos/internal/classify"
	"lumos/internal/diag"
	"lumos/internal/source"
)

// annotationLookahead bounds the forward scan for a struct declaration when
// inserting a required annotation.
const annotationLookahead = 5

// canonicalTypes maps lowercase aliases to their canonical spelling.
// Order is the fixed table-scan order: the first alias that matches the
// anchor line wins and scanning stops.
var canonicalTypes = []struct {
	alias     string
	canonical string
}{
	{"pubkey", "PublicKey"},
	{"publickey", "PublicKey"},
	{"string", "String"},
	{"vec", "Vec"},
	{"option", "Option"},
	{"boolean", "bool"},
}

var (
	aliasRes = buildAliasPatterns()
	markerRe = regexp.MustCompile(`#\[[A-Za-z_][A-Za-z0-9_]*\]`)
)

func buildAliasPatterns() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(canonicalTypes))
	for i, ct := range canonicalTypes {
		res[i] = regexp.MustCompile(`(?i)\b` + ct.alias + `\b`)
	}
	return res
}

// Rule pairs a message trigger with a fix builder.
type Rule struct {
	ID    string
	Match func(msg string) bool
	Build func(doc *source.Document, d diag.Diagnostic) (diag.Fix, bool)
}

// rules is the fixed priority order. All matching rules fire; a failed build
// only omits that rule's fix.
var rules = []Rule{
	{ID: "insert-colon", Match: matchMissingColon, Build: buildInsertSeparator},
	{ID: "insert-semicolon", Match: matchMissingSemi, Build: buildInsertTerminator},
	{ID: "correct-casing", Match: matchUnknownType, Build: buildCorrectCasing},
	{ID: "insert-annotation", Match: matchMissingAnnotation, Build: buildInsertAnnotation},
}

func matchMissingColon(msg string) bool {
	if strings.Contains(msg, "`:`") {
		return true
	}
	return strings.Contains(msg, "colon") && !strings.Contains(msg, "semicolon")
}

func matchMissingSemi(msg string) bool {
	return strings.Contains(msg, "semicolon") || strings.Contains(msg, "`;`")
}

func matchUnknownType(msg string) bool {
	if !strings.Contains(msg, "type") {
		return false
	}
	return strings.Contains(msg, "unknown") ||
		strings.Contains(msg, "unrecognized") ||
		strings.Contains(msg, "invalid") ||
		strings.Contains(msg, "misnamed")
}

func matchMissingAnnotation(msg string) bool {
	return strings.Contains(msg, "attribute") ||
		strings.Contains(msg, "annotation") ||
		strings.Contains(msg, "#[")
}

// Propose evaluates every rule against the diagnostic and returns the fixes
// whose construction succeeded, in rule priority order.
func Propose(doc *source.Document, d diag.Diagnostic) []diag.Fix {
	msg := strings.ToLower(d.Message)
	fixes := make([]diag.Fix, 0, 2)
	for _, r := range rules {
		if !r.Match(msg) {
			continue
		}
		f, ok := r.Build(doc, d)
		if !ok || len(f.Edits) == 0 {
			continue
		}
		if f.ID == "" {
			f.ID = r.ID
		}
		fixes = append(fixes, f)
	}
	return fixes
}

func buildInsertSeparator(doc *source.Document, d diag.Diagnostic) (diag.Fix, bool) {
	line := doc.Line(d.Range.Start.Line)
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return diag.Fix{}, false
	}
	col := strings.Index(line, tokens[0]) + len(tokens[0])
	at := source.Position{Line: d.Range.Start.Line, Col: col}
	return InsertText("Insert missing colon", at, classify.FieldSeparator,
		WithID("insert-colon"), Preferred()), true
}

func buildInsertTerminator(doc *source.Document, d diag.Diagnostic) (diag.Fix, bool) {
	line := doc.Line(d.Range.Start.Line)
	trimmed := strings.TrimRight(line, " \t")
	if strings.TrimSpace(trimmed) == "" || strings.HasSuffix(trimmed, ";") {
		return diag.Fix{}, false
	}
	at := source.Position{Line: d.Range.Start.Line, Col: len(trimmed)}
	return InsertText("Insert missing semicolon", at, ";",
		WithID("insert-semicolon"), Preferred()), true
}

func buildCorrectCasing(doc *source.Document, d diag.Diagnostic) (diag.Fix, bool) {
	lineNo := d.Range.Start.Line
	line := doc.Line(lineNo)
	for i, ct := range canonicalTypes {
		if !aliasRes[i].MatchString(line) {
			continue
		}
		// First table hit only; scanning stops here even when the
		// replacement turns out to be a no-op.
		corrected := aliasRes[i].ReplaceAllString(line, ct.canonical)
		if corrected == line {
			return diag.Fix{}, false
		}
		rng := source.RangeAt(lineNo, 0, len(line))
		return ReplaceRange(fmt.Sprintf("Replace with `%s`", ct.canonical), rng, corrected, line,
			WithID("correct-casing")), true
	}
	return diag.Fix{}, false
}

func buildInsertAnnotation(doc *source.Document, d diag.Diagnostic) (diag.Fix, bool) {
	marker := markerRe.FindString(d.Message)
	if marker == "" {
		marker = "#[account]"
	}
	start := d.Range.Start.Line
	last := doc.LineCount() - 1
	end := start + annotationLookahead
	if end > last {
		end = last
	}
	for j := start; j <= end; j++ {
		line := doc.Line(j)
		trimmed := strings.TrimSpace(line)
		if !classify.IsDeclOpen(trimmed) {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		at := source.Position{Line: j, Col: 0}
		return InsertText(fmt.Sprintf("Insert %s annotation", marker), at, indent+marker+"\n",
			WithID("insert-annotation")), true
	}
	return diag.Fix{}, false
}
