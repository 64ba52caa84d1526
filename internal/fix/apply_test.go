package fix

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bslint/internal/source"
)

func p(line, ch uint32) source.Position {
	return source.Position{Line: line, Character: ch}
}

func TestApplyInsertsAndReplaces(t *testing.T) {
	file := source.NewFile(0, "m.bsl", []byte("А=Б;\nЭтаФорма.Закрыть();"), source.FileVirtual)
	actions := []CodeAction{
		NewQuickFix("spaces", "m.bsl", nil, []TextEdit{InsertText(p(0, 1), " "), InsertText(p(0, 2), " ")}),
		NewQuickFix("this", "m.bsl", nil, []TextEdit{ReplaceRange(source.Range{Start: p(1, 0), End: p(1, 8)}, "ЭтотОбъект")}),
		NewQuickFix("other document", "other.bsl", nil, []TextEdit{InsertText(p(0, 0), "x")}),
	}
	res, err := Apply(file, "m.bsl", actions)
	require.NoError(t, err)
	assert.Equal(t, "А = Б;\nЭтотОбъект.Закрыть();", string(res.Content))
	assert.Len(t, res.Applied, 2)
	assert.Equal(t, 2, actions[0].EditCount())
	assert.Equal(t, "А=Б;\nЭтаФорма.Закрыть();", string(file.Content), "source file is untouched")
}

func TestApplySkipsConflictsAndDuplicates(t *testing.T) {
	file := source.NewFile(0, "m.bsl", []byte("abcdef"), source.FileVirtual)
	rng := source.Range{Start: p(0, 1), End: p(0, 4)}
	actions := []CodeAction{
		NewQuickFix("first", "m.bsl", nil, []TextEdit{ReplaceRange(rng, "X")}),
		NewQuickFix("overlap", "m.bsl", nil, []TextEdit{ReplaceRange(source.Range{Start: p(0, 2), End: p(0, 5)}, "Y")}),
		NewQuickFix("same", "m.bsl", nil, []TextEdit{ReplaceRange(rng, "X")}),
	}
	res, err := Apply(file, "m.bsl", actions)
	require.NoError(t, err)
	assert.Equal(t, "aXef", string(res.Content))
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "overlap", res.Skipped[0].Title)
}

func TestApplyWithoutEdits(t *testing.T) {
	file := source.NewFile(0, "m.bsl", []byte("x"), source.FileVirtual)
	_, err := Apply(file, "m.bsl", nil)
	assert.True(t, errors.Is(err, ErrNoFixes))
}

func TestSpansConflict(t *testing.T) {
	cases := []struct {
		a, b offsetEdit
		want bool
	}{
		{offsetEdit{start: 1, end: 1}, offsetEdit{start: 1, end: 1}, false},
		{offsetEdit{start: 2, end: 2}, offsetEdit{start: 1, end: 3}, true},
		{offsetEdit{start: 3, end: 3}, offsetEdit{start: 1, end: 3}, false},
		{offsetEdit{start: 0, end: 2}, offsetEdit{start: 2, end: 4}, false},
		{offsetEdit{start: 0, end: 3}, offsetEdit{start: 2, end: 4}, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, spansConflict(tc.a, tc.b), "%+v vs %+v", tc.a, tc.b)
	}
}
