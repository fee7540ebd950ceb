// Package diag defines the diagnostic model shared by the locator, the
// quick-fix engine, the CLI renderers and the LSP server.
//
// Diagnostics are plain values: a severity, a stable code, a message, and a
// (line, column) range into the originating document. Fix suggestions travel
// attached to the diagnostic as lists of single text edits.
package diag
