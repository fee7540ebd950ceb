package locate

import (
	"regexp"
	"strings"
)

var (
	causedByRe = regexp.MustCompile(`(?i)caused by:\s*(?:schema parsing error:\s*)?(.+)`)
	errorRe    = regexp.MustCompile(`(?i)\berror:\s*(.+)`)
)

// ExtractMessage pulls one representative error message out of raw compiler
// output. "Caused by:" lines win over generic "Error:" lines; when neither
// marker is present there is no message and no diagnostic for this run.
func ExtractMessage(raw string) (string, bool) {
	if m := causedByRe.FindStringSubmatch(raw); m != nil {
		if msg := strings.TrimSpace(m[1]); msg != "" {
			return msg, true
		}
	}
	if m := errorRe.FindStringSubmatch(raw); m != nil {
		if msg := strings.TrimSpace(m[1]); msg != "" {
			return msg, true
		}
	}
	return "", false
}
