package fix

import (
	"bslint/internal/diag"
	"bslint/internal/source"
)

// KindQuickFix is the LSP code action kind of every fix produced here.
const KindQuickFix = "quickfix"

// TextEdit replaces the text in Range with NewText. Range.Start == Range.End
// is an insertion.
type TextEdit struct {
	Range   source.Range `json:"range"`
	NewText string       `json:"newText"`
}

// CodeAction is a fix proposal. Documents are never modified by producing one.
type CodeAction struct {
	Title       string
	Kind        string
	Diagnostics []diag.Diagnostic
	Edits       map[string][]TextEdit // по URI
	IsPreferred bool
}

// InsertText creates an insertion at pos.
func InsertText(pos source.Position, text string) TextEdit {
	return TextEdit{Range: source.Range{Start: pos, End: pos}, NewText: text}
}

// ReplaceRange replaces rng with text.
func ReplaceRange(rng source.Range, text string) TextEdit {
	return TextEdit{Range: rng, NewText: text}
}

// NewQuickFix bundles edits of one document into a single code action.
func NewQuickFix(title, uri string, diagnostics []diag.Diagnostic, edits []TextEdit) CodeAction {
	return CodeAction{
		Title:       title,
		Kind:        KindQuickFix,
		Diagnostics: diagnostics,
		Edits:       map[string][]TextEdit{uri: edits},
	}
}

// EditCount returns the number of edits over all documents.
func (a CodeAction) EditCount() int {
	n := 0
	for _, edits := range a.Edits {
		n += len(edits)
	}
	return n
}
