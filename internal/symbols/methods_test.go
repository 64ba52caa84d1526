package symbols

import (
	"testing"

	"bslint/internal/lexer"
	"bslint/internal/parser"
	"bslint/internal/source"
	"bslint/internal/token"
)

func methodsOf(t *testing.T, src string) ([]Method, []token.Token) {
	t.Helper()
	tokens := lexer.Tokenize(source.NewFile(0, "m.bsl", []byte(src), source.FileVirtual), lexer.Options{})
	return Methods(parser.Parse(tokens)), tokens
}

func TestMethodsWithDescriptions(t *testing.T) {
	src := `// Складывает числа.
//
// Параметры:
//   А - Число
&НаСервере
Функция Сложить(А) Экспорт
	Возврат А;
КонецФункции

А = 1; // хвостовой комментарий
Процедура БезОписания()
КонецПроцедуры

// оторванный комментарий

Процедура ТожеБезОписания()
КонецПроцедуры
`
	methods, tokens := methodsOf(t, src)
	if len(methods) != 3 {
		t.Fatalf("expected 3 methods, got %d", len(methods))
	}

	m := methods[0]
	if m.Name != "Сложить" || !m.IsFunction || !m.Export || m.Directive != token.DirectiveAtServer {
		t.Errorf("unexpected method %+v", m)
	}
	if m.Description == nil {
		t.Fatal("expected a description")
	}
	if m.Description.Range.Start.Line != 0 || m.Description.Range.End.Line != 3 {
		t.Errorf("description range %+v", m.Description.Range)
	}

	comments := token.Comments(tokens)
	if !m.Description.Contains(comments[0], comments[3]) {
		t.Error("description should contain its own comments")
	}
	if m.Description.Contains(comments[0], comments[4]) {
		t.Error("description must not contain a later comment")
	}

	if methods[1].Description != nil {
		t.Errorf("trailing code comment taken as description: %+v", methods[1].Description)
	}
	if methods[2].Description != nil {
		t.Errorf("comment separated by a blank line taken as description")
	}
}
