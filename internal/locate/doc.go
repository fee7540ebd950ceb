// Package locate turns the opaque error output of the external schema
// compiler into a best-effort source location.
//
// It is explicitly heuristic, not parse-backed: one representative message is
// extracted per validation run, and the location is guessed by scanning the
// document for the first line matching the shape the message complains about.
// It can point at the wrong occurrence, and misses all but one error in
// multi-error files. Unrecognizable error text yields no diagnostic at all.
package locate
