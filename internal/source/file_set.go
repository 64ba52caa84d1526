package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"unicode/utf8"

	"fortio.org/safecast"
)

// FileSet manages a collection of source files. It is safe for concurrent use.
type FileSet struct {
	mu      sync.RWMutex
	files   []*File
	index   map[string]FileID // path -> id
	baseDir string            // базовая директория для относительных путей
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]*File, 0),
		index: make(map[string]FileID),
	}
}

// NewFileSetWithBase создаёт FileSet с заданной базовой директорией.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

// BaseDir возвращает текущую базовую директорию.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fileSet.baseDir
}

// NewFile builds a standalone file from raw editor or disk content.
// CRLF and a leading BOM are normalized away, like Load does.
func NewFile(id FileID, path string, content []byte, flags FileFlags) *File {
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return &File{
		ID:      id,
		Path:    normalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}
}

// Add stores a file from normalized bytes and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	fileSet.mu.Lock()
	defer fileSet.mu.Unlock()

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	f := NewFile(id, path, content, flags)
	fileSet.files = append(fileSet.files, f)
	// индекс всегда указывает на последнюю версию файла
	fileSet.index[f.Path] = id
	return id
}

// Load reads a file from disk, normalizes CRLF/BOM, and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fileSet.Add(path, content, 0), nil
}

// AddVirtual adds a virtual file (editor buffer, test, or stdin) with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return fileSet.files[id]
}

// GetLatest returns the latest file ID for the given path, if it exists.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into 1-based line and byte column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.Get(span.File)
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// LineCount returns the number of lines in the file.
func (f *File) LineCount() int {
	return len(f.LineIdx) + 1
}

// lineStart returns the byte offset of the zero-based line.
func (f *File) lineStart(line uint32) uint32 {
	if line == 0 {
		return 0
	}
	if int(line-1) >= len(f.LineIdx) {
		return f.contentLen()
	}
	return f.LineIdx[line-1] + 1
}

func (f *File) lineEnd(line uint32) uint32 {
	if int(line) < len(f.LineIdx) {
		return f.LineIdx[line]
	}
	return f.contentLen()
}

func (f *File) contentLen() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	return n
}

// GetLine возвращает строку с заданным номером (1-based) из файла.
// Если строка не существует, возвращает пустую строку.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 || int(lineNum) > f.LineCount() {
		return ""
	}
	start, end := f.lineStart(lineNum-1), f.lineEnd(lineNum-1)
	if start >= end {
		return ""
	}
	return string(f.Content[start:end])
}

// PositionAt converts a byte offset into an editor position.
func (f *File) PositionAt(off uint32) Position {
	if n := f.contentLen(); off > n {
		off = n
	}
	lc := toLineCol(f.LineIdx, off)
	line := lc.Line - 1
	return Position{Line: line, Character: utf16Len(f.Content[f.lineStart(line):off])}
}

// OffsetAt converts an editor position into a byte offset. Positions past the
// end of a line clamp to the line end, lines past the end clamp to the file end.
func (f *File) OffsetAt(pos Position) uint32 {
	if int(pos.Line) >= f.LineCount() {
		return f.contentLen()
	}
	start, end := f.lineStart(pos.Line), f.lineEnd(pos.Line)
	var units uint32
	off := start
	for off < end && units < pos.Character {
		r, size := utf8.DecodeRune(f.Content[off:end])
		if r >= 0x10000 {
			units += 2
		} else {
			units++
		}
		off += uint32(size) // #nosec G115 -- size is at most utf8.UTFMax
	}
	return off
}

// RangeOf converts a span of this file into an editor range.
func (f *File) RangeOf(sp Span) Range {
	return Range{Start: f.PositionAt(sp.Start), End: f.PositionAt(sp.End)}
}

// Slice returns the text covered by sp.
func (f *File) Slice(sp Span) string {
	return string(f.Content[sp.Start:sp.End])
}

// FormatPath форматирует путь к файлу в зависимости от режима.
// mode: "absolute", "relative", "basename", "auto"
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path
	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
		return f.Path
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		if len(f.Path) < 40 || !filepath.IsAbs(f.Path) {
			return f.Path
		}
		return filepath.Base(f.Path)
	default:
		return f.Path
	}
}
