package token

import (
	"golang.org/x/text/cases"
)

var keywords = map[string]Kind{}

func init() {
	for k, names := range map[Kind][]string{
		KwProcedure:     {"процедура", "procedure"},
		KwFunction:      {"функция", "function"},
		KwEndProcedure:  {"конецпроцедуры", "endprocedure"},
		KwEndFunction:   {"конецфункции", "endfunction"},
		KwVal:           {"знач", "val"},
		KwExport:        {"экспорт", "export"},
		KwVar:           {"перем", "var"},
		KwReturn:        {"возврат", "return"},
		KwIf:            {"если", "if"},
		KwThen:          {"тогда", "then"},
		KwElsIf:         {"иначеесли", "elsif"},
		KwElse:          {"иначе", "else"},
		KwEndIf:         {"конецесли", "endif"},
		KwWhile:         {"пока", "while"},
		KwFor:           {"для", "for"},
		KwEach:          {"каждого", "each"},
		KwIn:            {"из", "in"},
		KwTo:            {"по", "to"},
		KwDo:            {"цикл", "do"},
		KwEndDo:         {"конеццикла", "enddo"},
		KwTry:           {"попытка", "try"},
		KwExcept:        {"исключение", "except"},
		KwEndTry:        {"конецпопытки", "endtry"},
		KwRaise:         {"вызватьисключение", "raise"},
		KwBreak:         {"прервать", "break"},
		KwContinue:      {"продолжить", "continue"},
		KwNew:           {"новый", "new"},
		KwAnd:           {"и", "and"},
		KwOr:            {"или", "or"},
		KwNot:           {"не", "not"},
		KwTrue:          {"истина", "true"},
		KwFalse:         {"ложь", "false"},
		KwUndefined:     {"неопределено", "undefined"},
		KwNull:          {"null"},
		KwGoto:          {"перейти", "goto"},
		KwAddHandler:    {"добавитьобработчик", "addhandler"},
		KwRemoveHandler: {"удалитьобработчик", "removehandler"},
		KwAsync:         {"асинх", "async"},
		KwAwait:         {"ждать", "await"},
	} {
		for _, n := range names {
			keywords[n] = k
		}
	}
}

// Fold returns the case-folded form of s used for keyword and directive
// comparison, so that "КонецЕсли", "КОНЕЦЕСЛИ" and "конецесли" compare equal.
func Fold(s string) string {
	// Caser is stateful, so a fresh one per call keeps Fold safe for concurrent use.
	return cases.Fold().String(s)
}

// LookupKeyword возвращает тип и bool, если это ключевое слово.
// Ключевые слова регистронезависимые, русские и английские формы равноправны.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[Fold(ident)]
	return k, ok
}

// ContextDirective is a compilation directive that binds a method to an
// execution context.
type ContextDirective uint8

const (
	DirectiveNone ContextDirective = iota
	DirectiveAtClient
	DirectiveAtServer
	DirectiveAtServerNoContext
	DirectiveAtClientAtServerNoContext
	DirectiveAtClientAtServer
)

var directives = map[string]ContextDirective{
	"наклиенте":                      DirectiveAtClient,
	"atclient":                       DirectiveAtClient,
	"насервере":                      DirectiveAtServer,
	"atserver":                       DirectiveAtServer,
	"насерверебезконтекста":          DirectiveAtServerNoContext,
	"atservernocontext":              DirectiveAtServerNoContext,
	"наклиентенасерверебезконтекста": DirectiveAtClientAtServerNoContext,
	"atclientatservernocontext":      DirectiveAtClientAtServerNoContext,
	"наклиентенасервере":             DirectiveAtClientAtServer,
	"atclientatserver":               DirectiveAtClientAtServer,
}

// LookupDirective resolves the text of an Annotation token ("&НаСервере").
// Unknown annotations (for example extension annotations &Вместо) yield DirectiveNone.
func LookupDirective(annotation string) ContextDirective {
	if len(annotation) > 0 && annotation[0] == '&' {
		annotation = annotation[1:]
	}
	return directives[Fold(annotation)]
}
