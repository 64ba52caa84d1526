package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (editor buffer, test, stdin).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source module.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}

// Position is an editor position: zero-based line and zero-based column
// counted in UTF-16 code units.
type Position struct {
	Line      uint32 `json:"line" msgpack:"l"`
	Character uint32 `json:"character" msgpack:"c"`
}

// Less reports whether p is located strictly before other.
func (p Position) Less(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Character < other.Character
}

// Range is a half-open interval of editor positions.
type Range struct {
	Start Position `json:"start" msgpack:"s"`
	End   Position `json:"end" msgpack:"e"`
}

// Contains reports whether other lies within r (inclusive at both ends).
func (r Range) Contains(other Range) bool {
	return !other.Start.Less(r.Start) && !r.End.Less(other.End)
}

// Intersects reports whether the two ranges overlap or touch.
func (r Range) Intersects(other Range) bool {
	return !r.End.Less(other.Start) && !other.End.Less(r.Start)
}
