package parser

import (
	"strings"
	"testing"

	"bslint/internal/ast"
	"bslint/internal/lexer"
	"bslint/internal/source"
)

func parseSrc(t *testing.T, src string) *ast.Tree {
	t.Helper()
	f := source.NewFile(0, "test.bsl", []byte(src), source.FileVirtual)
	return Parse(lexer.Tokenize(f, lexer.Options{}))
}

func missingNodes(tree *ast.Tree) []*ast.Node {
	var out []*ast.Node
	ast.Walk(tree.Root, func(n *ast.Node) bool {
		if n.IsMissing() {
			out = append(out, n)
		}
		return true
	})
	return out
}

func errorSummary(nodes []*ast.Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.Text
	}
	return strings.Join(parts, "; ")
}

const sample = `Перем МодульнаяПеременная Экспорт;

&НаСервере
Функция Сумма(Знач А, Б = 1) Экспорт
	// комментарий
	Результат = А + Б;
	Если Результат > 10 Тогда
		Сообщить("Много");
	ИначеЕсли Результат < 0 Тогда
		Возврат -1;
	Иначе
		Для Каждого Элемент Из Массив Цикл
			Продолжить;
		КонецЦикла;
	КонецЕсли;
	Попытка
		Запрос.Выполнить();
	Исключение
		ВызватьИсключение "Ошибка";
	КонецПопытки;
	Возврат ?(Результат = 0, Неопределено, Новый Структура("А", А));
КонецФункции

Процедура Пустая()
КонецПроцедуры

Сумма(1, 2);
`

func TestParseWellFormedModule(t *testing.T) {
	tree := parseSrc(t, sample)
	if m := missingNodes(tree); len(m) != 0 {
		t.Fatalf("unexpected missing tokens: %s", errorSummary(m))
	}
	errs := ast.Collect(tree.Root, ast.KindError)
	if len(errs) != 0 {
		t.Fatalf("unexpected error nodes: %s", errorSummary(errs))
	}

	subs := ast.Collect(tree.Root, ast.KindSub)
	if len(subs) != 2 {
		t.Fatalf("expected 2 subs, got %d", len(subs))
	}
	fn := subs[0]
	if !fn.IsFunction || !fn.Export || fn.Name != "Сумма" {
		t.Errorf("unexpected function header: %+v", fn)
	}
	params := fn.First(ast.KindSubDecl).First(ast.KindParamList).All(ast.KindParam)
	if len(params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(params))
	}
	if got := tree.Text(params[0]); got != "ЗначА" {
		t.Errorf("param text %q", got)
	}
	if ann := fn.First(ast.KindSubDecl).First(ast.KindAnnotation); ann == nil || tree.Text(ann) != "&НаСервере" {
		t.Errorf("annotation not attached to declaration")
	}
	if subs[1].IsFunction || subs[1].Name != "Пустая" {
		t.Errorf("unexpected procedure header: %+v", subs[1])
	}

	if len(ast.Collect(tree.Root, ast.KindModuleVars)) != 1 {
		t.Error("module variables not recognized")
	}
	if got := len(ast.Collect(tree.Root, ast.KindString)); got != 3 {
		t.Errorf("expected 3 string nodes, got %d", got)
	}
	calls := ast.Collect(tree.Root, ast.KindCallStatement)
	if len(calls) != 3 {
		t.Fatalf("expected 3 call statements, got %d", len(calls))
	}
	if got := tree.Text(calls[1]); got != "Запрос.Выполнить();" {
		t.Errorf("call statement text %q", got)
	}
}

func TestMissingEndKeywordIsSynthesized(t *testing.T) {
	tree := parseSrc(t, "Процедура А()\n\tБ = 1;\n")
	m := missingNodes(tree)
	if len(m) != 1 {
		t.Fatalf("expected one missing node, got %q", errorSummary(m))
	}
	if m[0].Text != "<missing 'КонецПроцедуры'>" {
		t.Errorf("missing text %q", m[0].Text)
	}
	if m[0].Parent.Kind != ast.KindSub {
		t.Errorf("missing node parent %v", m[0].Parent.Kind)
	}
	start, ok := tree.StartToken(m[0].Parent)
	if !ok || start.Text != "Процедура" {
		t.Errorf("parent start token %q", start.Text)
	}
}

func TestMissingSemicolonBetweenStatements(t *testing.T) {
	tree := parseSrc(t, "А = 1\nБ = 2;")
	m := missingNodes(tree)
	if len(m) != 1 || m[0].Text != "<missing ';'>" {
		t.Fatalf("got %q", errorSummary(m))
	}
	// последний оператор блока может обходиться без ';'
	tree = parseSrc(t, "Процедура А()\n\tБ = 2\nКонецПроцедуры")
	if m := missingNodes(tree); len(m) != 0 {
		t.Fatalf("got %q", errorSummary(m))
	}
}

func TestMismatchedEndKeywords(t *testing.T) {
	tree := parseSrc(t, "Процедура А()\n\tЕсли Б Тогда\n\tКонецЦикла;\nКонецПроцедуры")
	m := missingNodes(tree)
	if len(m) != 1 || m[0].Text != "<missing 'КонецЕсли'>" {
		t.Fatalf("got %q", errorSummary(m))
	}
	var stray []*ast.Node
	for _, e := range ast.Collect(tree.Root, ast.KindError) {
		if !e.IsMissing() {
			stray = append(stray, e)
		}
	}
	if len(stray) != 1 || stray[0].Text != "КонецЦикла" {
		t.Fatalf("stray tokens: %s", errorSummary(stray))
	}
}

func TestNewSubClosesUnterminatedOne(t *testing.T) {
	tree := parseSrc(t, "Процедура А()\n\nПроцедура Б()\nКонецПроцедуры")
	if got := len(ast.Collect(tree.Root, ast.KindSub)); got != 2 {
		t.Fatalf("expected 2 subs, got %d", got)
	}
	if m := missingNodes(tree); len(m) != 1 {
		t.Fatalf("got %q", errorSummary(m))
	}
}

func TestExpressionOwnTokensSkipNestedExpressions(t *testing.T) {
	tree := parseSrc(t, "А = Б + Ф(В, Г[Д]);")
	assign := ast.Collect(tree.Root, ast.KindAssignment)[0]
	expr := assign.First(ast.KindExpression)
	var texts []string
	for _, tok := range tree.OwnTokens(expr) {
		texts = append(texts, tok.Text)
	}
	if got := strings.Join(texts, " "); got != "Б + Ф ( , )" {
		t.Fatalf("own tokens %q", got)
	}
	if got := len(ast.Collect(tree.Root, ast.KindExpression)); got != 4 {
		t.Fatalf("expected 4 expressions, got %d", got)
	}
}

func TestStatementAncestorOfString(t *testing.T) {
	tree := parseSrc(t, "Если Версия = \"1.2.3.4\" Тогда\n\tПуть = \"C:\\temp\";\nКонецЕсли;")
	strs := ast.Collect(tree.Root, ast.KindString)
	if len(strs) != 2 {
		t.Fatalf("expected 2 strings, got %d", len(strs))
	}
	isStmt := func(n *ast.Node) bool { return n.Kind.IsStatement() }
	if st := strs[0].Ancestor(isStmt); st == nil || st.Kind != ast.KindIf {
		t.Errorf("first string should belong to the If statement")
	}
	if st := strs[1].Ancestor(isStmt); st == nil || st.Kind != ast.KindAssignment {
		t.Errorf("second string should belong to the assignment")
	}
}

func TestParserAlwaysTerminates(t *testing.T) {
	inputs := []string{
		"", ")", "КонецЕсли", "Процедура", "Функция А(", "А = ;", "А(,,", "?(", "Для", "&НаКлиенте",
		"Перем", "~", "Новый", "А.;", "Если Тогда Иначе КонецЕсли КонецЕсли",
	}
	for _, in := range inputs {
		tree := parseSrc(t, in)
		if tree.Root == nil {
			t.Fatalf("nil root for %q", in)
		}
	}
}
