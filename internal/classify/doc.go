// Package classify assigns a LineKind to each raw line of a schema document.
//
// Classification is purely lexical: it looks only at the current line's
// trimmed text plus a single bit of surrounding state (whether the line sits
// inside a struct body). This deliberately stands in for a real tokenizer so
// its limitations stay documented and testable in one place.
package classify
