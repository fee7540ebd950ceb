package format

import "strings"

// writer accumulates output lines and remembers the last non-blank emission,
// which the printer consults for lone open braces.
type writer struct {
	lines []string
	last  string
}

func newWriter() *writer {
	return &writer{lines: make([]string, 0, 64)}
}

func (w *writer) line(level, indentSize int, trimmed string) {
	w.push(strings.Repeat(" ", level*indentSize) + trimmed)
}

func (w *writer) raw(line string) {
	w.push(line)
}

func (w *writer) push(line string) {
	w.lines = append(w.lines, line)
	if t := strings.TrimSpace(line); t != "" {
		w.last = t
	}
}

// lastEmitted returns the trimmed text of the last non-blank output line.
func (w *writer) lastEmitted() string {
	return w.last
}

func (w *writer) String() string {
	return strings.Join(w.lines, "\n")
}
