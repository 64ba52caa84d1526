package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bslint/internal/ast"
	"bslint/internal/lexer"
	"bslint/internal/parser"
	"bslint/internal/source"
)

func pos(line, ch uint32) source.Position {
	return source.Position{Line: line, Character: ch}
}

func TestStorageHelpers(t *testing.T) {
	tokens := lexer.TokenizeText("А = 1;\nБ = 2;")
	tree := parser.Parse(tokens)

	s := NewStorage(CodeMissingSpace, SevWarning, "default")
	s.AddToken(tokens[0])
	s.AddTokenRange(tokens[0], tokens[5], WithMessage("custom"))
	stmt := ast.Collect(tree.Root, ast.KindAssignment)[1]
	s.AddNode(tree, stmt, WithHint(HintMissingBoth), WithRelated(tokens[0].Range(), "see"))
	s.AddToken(tokens[0]) // без дедупликации

	got := s.Diagnostics()
	require.Len(t, got, 4)

	assert.Equal(t, "default", got[0].Message)
	assert.Equal(t, source.Range{Start: pos(0, 0), End: pos(0, 1)}, got[0].Range)

	assert.Equal(t, "custom", got[1].Message)
	assert.Equal(t, source.Range{Start: pos(0, 0), End: pos(0, 6)}, got[1].Range)

	assert.Equal(t, source.Range{Start: pos(1, 0), End: pos(1, 6)}, got[2].Range)
	assert.Equal(t, HintMissingBoth, got[2].Hint)
	require.Len(t, got[2].Related, 1)
	assert.Equal(t, "see", got[2].Related[0].Msg)
	assert.Equal(t, CodeMissingSpace, got[2].Code)
	assert.Equal(t, SevWarning, got[2].Severity)

	s.Clear()
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Len(t, got, 4, "returned slice is a copy")
}

func TestStorageAddNodeForMissingToken(t *testing.T) {
	tokens := lexer.TokenizeText("Процедура А()\n")
	tree := parser.Parse(tokens)
	var missing *ast.Node
	ast.Walk(tree.Root, func(n *ast.Node) bool {
		if n.IsMissing() {
			missing = n
		}
		return true
	})
	require.NotNil(t, missing)

	s := NewStorage(CodeParseError, SevError, "x")
	s.AddNode(tree, missing)
	d := s.Diagnostics()[0]
	assert.Equal(t, pos(0, 0), d.Range.Start)
	assert.Equal(t, d.Range.Start, d.Range.End)
}

func TestBagSortAndErrors(t *testing.T) {
	b := NewBag(4)
	b.Add(
		Diagnostic{Severity: SevInfo, Code: CodeMissingSpace, Range: source.Range{Start: pos(2, 0)}},
		Diagnostic{Severity: SevWarning, Code: CodeUsingThisForm, Range: source.Range{Start: pos(0, 5)}},
		Diagnostic{Severity: SevError, Code: CodeParseError, Range: source.Range{Start: pos(0, 5)}},
	)
	assert.True(t, b.HasErrors())
	b.Sort()
	assert.Equal(t, CodeParseError, b.Items()[0].Code)
	assert.Equal(t, CodeUsingThisForm, b.Items()[1].Code)
	assert.Equal(t, CodeMissingSpace, b.Items()[2].Code)

	b.Filter(SevWarning)
	assert.Equal(t, 2, b.Len())
}

func TestCodesAndSeverity(t *testing.T) {
	for _, c := range Codes() {
		got, ok := LookupCode(c.ID())
		assert.True(t, ok)
		assert.Equal(t, c, got)
	}
	_, ok := LookupCode("Unknown")
	assert.False(t, ok)

	sev, ok := ParseSeverity("warn")
	assert.True(t, ok)
	assert.Equal(t, SevWarning, sev)
	assert.Equal(t, 1, SevError.LSP())
	assert.Equal(t, 4, SevHint.LSP())
}

func TestMessages(t *testing.T) {
	ru := Messages{Lang: ParseLanguage("RU")}
	en := Messages{Lang: ParseLanguage("en")}
	assert.Equal(t, "Слева от \"+\" отсутствует пробел",
		ru.Get(CodeMissingSpace, "message", ru.Get(CodeMissingSpace, "wordLeft"), "+"))
	assert.Equal(t, "To the right of \",\" there is no space",
		en.Get(CodeMissingSpace, "message", en.Get(CodeMissingSpace, "wordRight"), ","))
	assert.Equal(t, "MissingSpace.nope", en.Get(CodeMissingSpace, "nope"))
	for _, c := range Codes() {
		assert.NotContains(t, ru.Get(c, "name"), ".name", c.ID())
		assert.NotContains(t, en.Get(c, "name"), ".name", c.ID())
	}
}

func TestFormatShort(t *testing.T) {
	out := FormatShort("m.bsl", []Diagnostic{
		{Severity: SevWarning, Code: CodeMissingSpace, Message: "b\nc", Range: source.Range{Start: pos(1, 2)}},
		{Severity: SevError, Code: CodeParseError, Message: "a", Range: source.Range{Start: pos(0, 0)}},
	})
	assert.Equal(t, "ERROR ParseError m.bsl:1:1 a\nWARNING MissingSpace m.bsl:2:3 b c", out)
}
