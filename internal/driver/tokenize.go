package driver

import (
	"bslint/internal/diag"
	"bslint/internal/lexer"
	"bslint/internal/source"
	"bslint/internal/token"
)

// TokenizeResult is the full token stream of one file.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and lexes it. Lexical problems land in Bag.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	tokens := lexer.Tokenize(file, lexer.Options{Reporter: NewBagReporter(file, bag)})
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}

// NewBagReporter turns lexer complaints about file into parse error
// diagnostics collected in bag.
func NewBagReporter(file *source.File, bag *diag.Bag) lexer.Reporter {
	return bagReporter{file: file, bag: bag}
}

type bagReporter struct {
	file *source.File
	bag  *diag.Bag
}

func (r bagReporter) Report(kind string, sp source.Span, msg string) {
	r.bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.CodeParseError,
		Message:  kind + ": " + msg,
		Range:    r.file.RangeOf(sp),
		Span:     sp,
	})
}
