package source

type (
	// FileID uniquely identifies a schema file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a schema file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, editor buffer).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single schema file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a schema file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
