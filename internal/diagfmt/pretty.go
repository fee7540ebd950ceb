package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"lumos/internal/diag"
	"lumos/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
	codeColor = color.New(color.FgCyan)
)

// Pretty renders diagnostics in a human-readable form:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// followed, when opts.Context is set, by the source line with a caret
// underline covering the diagnostic range. Lines and columns are 1-based.
func Pretty(w io.Writer, path string, doc *source.Document, diags []diag.Diagnostic, opts PrettyOpts) {
	for _, d := range diags {
		sev := d.Severity.String()
		code := d.Code.String()
		if opts.Color {
			sev = severityColor(d.Severity).Sprint(sev)
			code = codeColor.Sprint(code)
		}
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			path, d.Range.Start.Line+1, d.Range.Start.Col+1, sev, code, d.Message)

		if opts.Context {
			writeContext(w, doc, d)
		}
	}
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}

func writeContext(w io.Writer, doc *source.Document, d diag.Diagnostic) {
	line := doc.Line(d.Range.Start.Line)
	if strings.TrimSpace(line) == "" {
		return
	}
	fmt.Fprintf(w, "    %s\n", line)

	start := d.Range.Start.Col
	if start > len(line) {
		start = len(line)
	}
	width := 1
	if d.Range.End.Line == d.Range.Start.Line && d.Range.End.Col > start {
		width = d.Range.End.Col - start
	}
	if start+width > len(line)+1 {
		width = len(line) + 1 - start
		if width < 1 {
			width = 1
		}
	}
	underline := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", start), underline)
}
