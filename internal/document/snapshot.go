package document

import (
	"sync"

	"bslint/internal/ast"
	"bslint/internal/lexer"
	"bslint/internal/parser"
	"bslint/internal/source"
	"bslint/internal/symbols"
	"bslint/internal/token"
)

// Snapshot holds every artifact derived from one version of a document's
// text. A snapshot is immutable once published; methods are computed lazily
// and memoized per snapshot.
type Snapshot struct {
	URI      string
	Version  int
	File     *source.File
	Tokens   []token.Token
	Comments []token.Token
	Tree     *ast.Tree

	methodsOnce sync.Once
	methods     []symbols.Method
}

// Build tokenizes and parses text into a new snapshot.
func Build(id source.FileID, uri string, version int, text string) *Snapshot {
	file := source.NewFile(id, uri, []byte(text), source.FileVirtual)
	tokens := lexer.Tokenize(file, lexer.Options{})
	return &Snapshot{
		URI:      uri,
		Version:  version,
		File:     file,
		Tokens:   tokens,
		Comments: token.Comments(tokens),
		Tree:     parser.Parse(tokens),
	}
}

// Text returns the normalized document text.
func (s *Snapshot) Text() string {
	return string(s.File.Content)
}

// Hash is the content hash of the snapshot text.
func (s *Snapshot) Hash() [32]byte {
	return s.File.Hash
}

// Methods returns the module's procedures and functions.
func (s *Snapshot) Methods() []symbols.Method {
	s.methodsOnce.Do(func() {
		s.methods = symbols.Methods(s.Tree)
	})
	return s.methods
}
