package token_test

import (
	"testing"

	"bslint/internal/token"
)

func TestLookupKeywordIsBilingualAndCaseInsensitive(t *testing.T) {
	tests := []struct {
		text string
		want token.Kind
	}{
		{"Процедура", token.KwProcedure},
		{"PROCEDURE", token.KwProcedure},
		{"КонецЕсли", token.KwEndIf},
		{"endif", token.KwEndIf},
		{"Возврат", token.KwReturn},
		{"Return", token.KwReturn},
		{"НЕОПРЕДЕЛЕНО", token.KwUndefined},
		{"И", token.KwAnd},
	}
	for _, tt := range tests {
		got, ok := token.LookupKeyword(tt.text)
		if !ok || got != tt.want {
			t.Errorf("LookupKeyword(%q) = %v, %v; want %v", tt.text, got, ok, tt.want)
		}
	}
	if _, ok := token.LookupKeyword("Сообщить"); ok {
		t.Error("Сообщить must not be a keyword")
	}
}

func TestLookupDirective(t *testing.T) {
	tests := []struct {
		text string
		want token.ContextDirective
	}{
		{"&НаСервере", token.DirectiveAtServer},
		{"&AtClient", token.DirectiveAtClient},
		{"&насерверебезконтекста", token.DirectiveAtServerNoContext},
		{"&НаКлиентеНаСервереБезКонтекста", token.DirectiveAtClientAtServerNoContext},
		{"&AtClientAtServer", token.DirectiveAtClientAtServer},
		{"&Вместо", token.DirectiveNone},
	}
	for _, tt := range tests {
		if got := token.LookupDirective(tt.text); got != tt.want {
			t.Errorf("LookupDirective(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestKindClasses(t *testing.T) {
	for _, k := range []token.Kind{token.KwProcedure, token.KwAwait, token.KwNot} {
		if !k.IsKeyword() {
			t.Errorf("%v should be keyword", k)
		}
	}
	for _, k := range []token.Kind{token.Plus, token.NotEq, token.Tilde} {
		if !k.IsOperator() {
			t.Errorf("%v should be operator", k)
		}
	}
	if token.Ident.IsKeyword() || token.Ident.IsOperator() {
		t.Error("Ident is neither keyword nor operator")
	}
	if !token.Date.IsLiteral() || !token.KwNull.IsLiteral() {
		t.Error("Date and NULL are literals")
	}
}

func TestCommentsAndSignificant(t *testing.T) {
	stream := []token.Token{
		{Kind: token.Ident, Text: "А"},
		{Kind: token.WhiteSpace, Text: " "},
		{Kind: token.LineComment, Text: "// x"},
		{Kind: token.WhiteSpace, Text: "\n"},
		{Kind: token.Semicolon, Text: ";"},
		{Kind: token.EOF},
	}
	if got := token.Comments(stream); len(got) != 1 || got[0].Text != "// x" {
		t.Errorf("Comments() = %v", got)
	}
	if got := token.Significant(stream); len(got) != 2 {
		t.Errorf("Significant() = %v", got)
	}
}
