package locate

import (
	"regexp"
	"strings"

	"lumos/internal/classify"
	"lumos/internal/source"
)

var (
	// Two whitespace-separated words: a field declared without its type
	// separator.
	twoWordsRe = regexp.MustCompile(`^\S+\s+\S+$`)

	structDeclRe = regexp.MustCompile(`^(?:pub\s+)?(?:struct|enum)\s+\w+`)
)

// mentionsMissingColon must not fire on semicolon messages: "semicolon"
// contains "colon" as a substring.
func mentionsMissingColon(msg string) bool {
	if strings.Contains(msg, "`:`") {
		return true
	}
	return strings.Contains(msg, "colon") && !strings.Contains(msg, "semicolon")
}

func mentionsMissingSemi(msg string) bool {
	return strings.Contains(msg, "semicolon") || strings.Contains(msg, "`;`")
}

func mentionsMissingBrace(msg string) bool {
	return strings.Contains(msg, "brace") || strings.Contains(msg, "`{`") || strings.Contains(msg, "{")
}

// Locate maps an extracted error message to a document range. Buckets are
// tried in order and the first match wins; every scan stops at its first
// candidate line. When nothing matches, the first character of the document
// is reported: imprecise location is preferred over no diagnostic.
func Locate(message string, doc *source.Document) source.Range {
	msg := strings.ToLower(message)

	switch {
	case mentionsMissingColon(msg):
		if rng, ok := findMissingColon(doc); ok {
			return rng
		}
	case mentionsMissingSemi(msg):
		if rng, ok := findMissingSemi(doc); ok {
			return rng
		}
	case mentionsMissingBrace(msg):
		if rng, ok := findMissingBrace(doc); ok {
			return rng
		}
	}
	return doc.Clamp(source.RangeAt(0, 0, 1))
}

func findMissingColon(doc *source.Document) (source.Range, bool) {
	for i, line := range doc.Lines() {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.Contains(trimmed, classify.FieldSeparator) {
			continue
		}
		if !twoWordsRe.MatchString(trimmed) {
			continue
		}
		col := len(line) - len(strings.TrimLeft(line, " \t"))
		return source.RangeAt(i, col, len(trimmed)), true
	}
	return source.Range{}, false
}

func findMissingSemi(doc *source.Document) (source.Range, bool) {
	for i, line := range doc.Lines() {
		trimmed := strings.TrimSpace(line)
		if !strings.Contains(trimmed, classify.FieldSeparator) {
			continue
		}
		if strings.HasSuffix(trimmed, ";") || strings.HasSuffix(trimmed, "{") {
			continue
		}
		return endOfLine(i, line), true
	}
	return source.Range{}, false
}

func findMissingBrace(doc *source.Document) (source.Range, bool) {
	for i, line := range doc.Lines() {
		trimmed := strings.TrimSpace(line)
		if !structDeclRe.MatchString(trimmed) || strings.Contains(trimmed, "{") {
			continue
		}
		return endOfLine(i, line), true
	}
	return source.Range{}, false
}

// endOfLine anchors at the end-of-line insertion point, zero width.
func endOfLine(i int, line string) source.Range {
	return source.RangeAt(i, len(line), 0)
}
