package diag

import (
	"fmt"
	"strings"
)

type Code uint16

const (
	// UnknownCode is the fallback when no more specific code applies.
	UnknownCode Code = 0

	// Formatter diagnostics (reserved; the formatter is total and currently
	// reports nothing, but check output shares this space).
	FmtInfo Code = 1000

	// Schema validation errors surfaced by the locator.
	SchemaError        Code = 2000
	SchemaMissingColon Code = 2001
	SchemaMissingSemi  Code = 2002
	SchemaMissingBrace Code = 2003
	SchemaUnknownType  Code = 2004
	SchemaMissingAttr  Code = 2005
)

func (c Code) String() string {
	return fmt.Sprintf("LUM%04d", uint16(c))
}

// ID returns the lowercase form used in fix identifiers and cache payloads.
func (c Code) ID() string {
	return strings.ToLower(c.String())
}
