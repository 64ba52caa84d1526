package lexer_test

import (
	"strings"
	"testing"

	"bslint/internal/lexer"
	"bslint/internal/source"
	"bslint/internal/token"
)

// testReporter собирает все ошибки, полученные от лексера
type testReporter struct {
	kinds []string
}

func (r *testReporter) Report(kind string, _ source.Span, _ string) {
	r.kinds = append(r.kinds, kind)
}

func tokenize(input string) ([]token.Token, *testReporter) {
	rep := &testReporter{}
	f := source.NewFile(0, "test.bsl", []byte(input), source.FileVirtual)
	return lexer.Tokenize(f, lexer.Options{Reporter: rep}), rep
}

func kindsOf(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.Kind.String() + "(" + t.Text + ")"
	}
	return strings.Join(parts, " ")
}

// expectTokens проверяет последовательность значимых токенов
func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	all, rep := tokenize(input)
	tokens := token.Significant(all)
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %s\nerrors: %v",
			len(expected), len(tokens), input, tokensToString(tokens), rep.kinds)
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("token %d: expected %v, got %v (text: %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
}

func TestStreamIncludesWhitespaceAndComments(t *testing.T) {
	tokens, _ := tokenize("А = 1; // коммент\nБ")
	want := []token.Kind{
		token.Ident, token.WhiteSpace, token.Assign, token.WhiteSpace, token.Number, token.Semicolon,
		token.WhiteSpace, token.LineComment, token.WhiteSpace, token.Ident,
	}
	got := kindsOf(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %s", tokensToString(tokens))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: %v, want %v", i, got[i], want[i])
		}
		if tokens[i].Index != i {
			t.Errorf("token %d has index %d", i, tokens[i].Index)
		}
	}
	if tokens[7].Text != "// коммент" {
		t.Errorf("comment text %q", tokens[7].Text)
	}
}

func TestTokensAreContiguousAndOrdered(t *testing.T) {
	src := "Процедура Тест(Знач А, Б = 1) Экспорт\n\tВозврат;\nКонецПроцедуры\n"
	tokens, _ := tokenize(src)
	var b strings.Builder
	for i, tok := range tokens {
		b.WriteString(tok.Text)
		if i > 0 {
			prev := tokens[i-1]
			if prev.Span.End != tok.Span.Start {
				t.Fatalf("gap between %d and %d", i-1, i)
			}
			if tok.Pos.Less(prev.Pos) {
				t.Fatalf("token %d is before token %d", i, i-1)
			}
		}
	}
	if b.String() != src {
		t.Fatalf("concatenated tokens differ from source")
	}
}

func TestPositionsUseUTF16Columns(t *testing.T) {
	tokens, _ := tokenize("Перем Я;\n  Б")
	last := tokens[len(tokens)-1]
	if last.Pos != (source.Position{Line: 1, Character: 2}) {
		t.Errorf("Б starts at %+v", last.Pos)
	}
	ya := tokens[2]
	if ya.Text != "Я" || ya.Pos.Character != 6 || ya.End.Character != 7 {
		t.Errorf("Я at %+v..%+v", ya.Pos, ya.End)
	}
}

func TestKeywordsAndOperators(t *testing.T) {
	expectTokens(t, "Если А <> Б И НЕ В Тогда КонецЕсли;", []token.Kind{
		token.KwIf, token.Ident, token.NotEq, token.Ident, token.KwAnd, token.KwNot, token.Ident,
		token.KwThen, token.KwEndIf, token.Semicolon,
	})
	expectTokens(t, "a<=b>=c<d>e", []token.Kind{
		token.Ident, token.LtEq, token.Ident, token.GtEq, token.Ident, token.Lt, token.Ident, token.Gt, token.Ident,
	})
	expectTokens(t, "Return -1.5 % 2;", []token.Kind{
		token.KwReturn, token.Minus, token.Number, token.Percent, token.Number, token.Semicolon,
	})
}

func TestStrings(t *testing.T) {
	expectTokens(t, `А = "текст ""в кавычках""";`, []token.Kind{
		token.Ident, token.Assign, token.String, token.Semicolon,
	})

	tokens, rep := tokenize("Текст = \"первая\n\t|вторая\";")
	sig := token.Significant(tokens)
	if len(rep.kinds) != 0 {
		t.Fatalf("unexpected errors %v", rep.kinds)
	}
	if sig[2].Kind != token.String || !strings.Contains(sig[2].Text, "|вторая") {
		t.Fatalf("multi-line string not joined: %s", tokensToString(sig))
	}
	if sig[2].End.Line != 1 {
		t.Errorf("string should end on line 1, got %+v", sig[2].End)
	}
}

func TestUnterminatedStringReportsAndStopsAtLineEnd(t *testing.T) {
	tokens, rep := tokenize("А = \"нет конца\nБ = 1;")
	if len(rep.kinds) != 1 || rep.kinds[0] != "UnterminatedString" {
		t.Fatalf("errors: %v", rep.kinds)
	}
	sig := token.Significant(tokens)
	if sig[2].Kind != token.Invalid || sig[3].Text != "Б" {
		t.Fatalf("tokens: %s", tokensToString(sig))
	}
}

func TestDateAnnotationPreprocessor(t *testing.T) {
	expectTokens(t, "#Область Служебные\n&НаСервере\nД = '20240131';\n#КонецОбласти", []token.Kind{
		token.Preprocessor, token.Annotation, token.Ident, token.Assign, token.Date, token.Semicolon, token.Preprocessor,
	})
}

func TestLabelAndTernary(t *testing.T) {
	expectTokens(t, "~Метка: А = ?(Б, 1, 2);", []token.Kind{
		token.Tilde, token.Ident, token.Colon, token.Ident, token.Assign, token.Question, token.LParen,
		token.Ident, token.Comma, token.Number, token.Comma, token.Number, token.RParen, token.Semicolon,
	})
}

func TestUnknownCharacter(t *testing.T) {
	tokens, rep := tokenize("А $ Б")
	if len(rep.kinds) != 1 {
		t.Fatalf("errors: %v", rep.kinds)
	}
	if sig := token.Significant(tokens); sig[1].Kind != token.Invalid || sig[1].Text != "$" {
		t.Fatalf("tokens: %s", tokensToString(sig))
	}
}

func TestNonBreakingSpaceIsWhitespace(t *testing.T) {
	tokens, _ := tokenize("А\u00a0=\u00a01")
	if tokens[1].Kind != token.WhiteSpace || tokens[3].Kind != token.WhiteSpace {
		t.Fatalf("tokens: %s", tokensToString(tokens))
	}
}

func TestTokenizeText(t *testing.T) {
	tokens := lexer.TokenizeText("Сообщить(\"Привет\");")
	if got := len(token.Significant(tokens)); got != 5 {
		t.Fatalf("expected 5 significant tokens, got %d", got)
	}
}
