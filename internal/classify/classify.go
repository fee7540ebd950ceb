package classify

import "strings"

// LineKind is the mutually exclusive lexical class of a single line.
type LineKind uint8

const (
	// Blank is a line whose trimmed text is empty.
	Blank LineKind = iota
	// Attribute is a `#[...]` annotation line.
	Attribute
	// StructOrEnumOpen declares a struct or enum and opens a block.
	StructOrEnumOpen
	// BlockClose is a line that is or begins a closing brace.
	BlockClose
	// FieldLine is a `name: type` declaration inside a struct body.
	FieldLine
	// Other is every line not covered by the kinds above.
	Other
)

func (k LineKind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Attribute:
		return "attribute"
	case StructOrEnumOpen:
		return "struct-or-enum-open"
	case BlockClose:
		return "block-close"
	case FieldLine:
		return "field"
	case Other:
		return "other"
	}
	return "unknown"
}

// AttributeMarker opens an annotation line.
const AttributeMarker = "#["

// FieldSeparator separates a field name from its type.
const FieldSeparator = ":"

// State carries the single piece of cross-line context classification needs.
type State struct {
	InStructBody bool
}

// Classify maps a raw line to its LineKind. Rules apply in priority order
// and never consult text beyond the current line.
func Classify(line string, st State) LineKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return Blank
	case strings.HasPrefix(trimmed, AttributeMarker):
		return Attribute
	case IsDeclOpen(trimmed):
		return StructOrEnumOpen
	case strings.HasPrefix(trimmed, "}"):
		return BlockClose
	case st.InStructBody && strings.Contains(trimmed, FieldSeparator):
		return FieldLine
	default:
		return Other
	}
}

// IsDeclOpen reports whether trimmed text starts a struct or enum declaration.
func IsDeclOpen(trimmed string) bool {
	for _, kw := range []string{"struct ", "enum ", "pub struct ", "pub enum "} {
		if strings.HasPrefix(trimmed, kw) {
			return true
		}
	}
	// Bare keyword with no name still opens a declaration line.
	return trimmed == "struct" || trimmed == "enum"
}

// IsStructDecl reports whether trimmed text declares a struct specifically.
// Enum bodies do not receive field alignment, so the formatter needs the
// distinction.
func IsStructDecl(trimmed string) bool {
	return strings.HasPrefix(trimmed, "struct ") ||
		strings.HasPrefix(trimmed, "pub struct ") ||
		trimmed == "struct"
}
