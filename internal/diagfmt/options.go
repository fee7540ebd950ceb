package diagfmt

// PrettyOpts controls human-readable diagnostic rendering.
type PrettyOpts struct {
	// Color enables ANSI colors.
	Color bool
	// Context prints the offending source line with a caret underline.
	Context bool
}
