package recognizer

// BSLFootprint describes BSL code. Patterns tolerate a leading "//" so raw
// comment text can be scored as is.
type BSLFootprint struct{}

const (
	linePrefix = `^[\s/]*`
	word       = `[\wА-яЁё]`
)

func (BSLFootprint) Detectors() []Detector {
	return []Detector{
		NewEndWithDetector(0.95, ';'),
		NewKeywordsDetector(0.95,
			"КонецЕсли", "КонецЦикла", "КонецПроцедуры", "КонецФункции", "КонецПопытки",
			"EndIf", "EndDo", "EndProcedure", "EndFunction", "EndTry"),
		NewKeywordsDetector(0.7,
			"Процедура", "Функция", "Если", "Тогда", "ИначеЕсли", "Иначе", "Для", "Каждого",
			"Пока", "Цикл", "Попытка", "Исключение", "Возврат", "Продолжить", "Прервать",
			"ВызватьИсключение", "Новый", "Перем",
			"Procedure", "Function", "If", "Then", "ElsIf", "Else", "For", "Each",
			"While", "Do", "Try", "Except", "Return", "Continue", "Break",
			"Raise", "New", "Var"),
		NewKeywordsDetector(0.3,
			"Знач", "Экспорт", "Истина", "Ложь", "Неопределено",
			"Val", "Export", "True", "False", "Undefined", "Null"),
		NewContainsDetector(0.7, "()", "<>", "<=", ">=", ")."),
		NewPatternDetector(0.9, linePrefix+word+`+(\.`+word+`+|\[[^\]]*\])*\s*=\s*[^\s=]`),
		NewPatternDetector(0.9, linePrefix+word+`+(\.`+word+`+)*\(.*\)\s*;?\s*$`),
		NewPatternDetector(0.9, linePrefix+`[&#]`+word+`+`),
		NewCamelCaseDetector(0.3),
	}
}
