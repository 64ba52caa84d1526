package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bslint/internal/diag"
	"bslint/internal/token"
)

func TestCommentedCodeGroupIsReportedOnce(t *testing.T) {
	src := "// КаталогПрограмм = \"C:\\Program Files\";\n// х = 1;\n"
	_, ds := run(t, diag.CodeCommentedCode, nil, src)
	require.Len(t, ds, 1)
	assert.Equal(t, rng(0, 0, 1, 9), ds[0].Range)
	assert.Equal(t, "Удалите закомментированный код", ds[0].Message)
	assert.Equal(t, diag.SevInfo, ds[0].Severity)
}

func TestCommentedCodeSkipsMethodDescriptions(t *testing.T) {
	src := `// Описание метода
// Возврат = 1;
Процедура А()
КонецПроцедуры
`
	_, ds := run(t, diag.CodeCommentedCode, nil, src)
	assert.Empty(t, ds)
}

func TestCommentedCodeProseWithAdjacentIdentifiers(t *testing.T) {
	_, ds := run(t, diag.CodeCommentedCode, nil, "// Вызвать метод Записать();\n")
	assert.Empty(t, ds)
}

func TestCommentedCodeGrouping(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want int
	}{
		{"blank line splits groups", "// х = 1;\n\n// у = 2;\n", 2},
		{"trailing comment joins next line", "А = 1; // х = 1;\n// у = 2;\n", 1},
		{"code between splits groups", "// х = 1;\nА = 1;\n// у = 2;\n", 2},
		{"prose only", "// Просто комментарий\n// ещё строка\n", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ds := run(t, diag.CodeCommentedCode, nil, tc.src)
			assert.Len(t, ds, tc.want)
		})
	}
}

func TestGroupCommentsIsIdempotent(t *testing.T) {
	ctx := newContext("// а\n// б\n\n// в\nА = 1; // г\n// д\n")
	first := groupComments(ctx.Snapshot.Tokens, ctx.Snapshot.Comments)
	second := groupComments(ctx.Snapshot.Tokens, ctx.Snapshot.Comments)
	assert.Equal(t, first, second)

	var sizes []int
	for _, g := range first {
		sizes = append(sizes, len(g))
	}
	assert.Equal(t, []int{2, 1, 2}, sizes)

	var total int
	for _, g := range first {
		total += len(g)
	}
	assert.Equal(t, len(ctx.Snapshot.Comments), total, "every comment belongs to exactly one group")
	assert.Empty(t, groupComments(nil, []token.Token{}))

	// перегруппировка результата даёт то же разбиение
	var flat []token.Token
	for _, g := range first {
		flat = append(flat, g...)
	}
	regrouped := groupComments(ctx.Snapshot.Tokens, flat)
	assert.Equal(t, groupTexts(first), groupTexts(regrouped))

	// и каждая группа по отдельности не распадается
	for _, g := range first {
		again := groupComments(ctx.Snapshot.Tokens, g)
		require.Len(t, again, 1)
		assert.Equal(t, groupTexts([][]token.Token{g}), groupTexts(again))
	}
}

func groupTexts(groups [][]token.Token) [][]string {
	out := make([][]string, 0, len(groups))
	for _, g := range groups {
		texts := make([]string, 0, len(g))
		for _, c := range g {
			texts = append(texts, c.Text)
		}
		out = append(out, texts)
	}
	return out
}

func TestCommentedCodeThreshold(t *testing.T) {
	_, ds := run(t, diag.CodeCommentedCode, map[string]any{"threshold": int64(1)}, "// х = 1;\n")
	assert.Empty(t, ds)

	r, err := New(diag.CodeCommentedCode, map[string]any{"threshold": 1.5})
	assert.Error(t, err)
	assert.Len(t, r.Check(newContext("// х = 1;\n")), 1, "invalid threshold falls back to the default")

	_, err = New(diag.CodeCommentedCode, map[string]any{"threshold": "abc"})
	assert.Error(t, err)
}

func TestUncommentStripsStackedMarkers(t *testing.T) {
	assert.Equal(t, " А = 1;", uncomment("//// А = 1;"))
	assert.Equal(t, "/ А", uncomment("/// А"))
	assert.Equal(t, "А", uncomment("А"))
}
