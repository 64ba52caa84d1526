package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// WhiteSpace covers runs of spaces, tabs and line breaks.
	WhiteSpace
	// LineComment covers '//' up to the end of the line.
	LineComment
	// Preprocessor covers a whole '#...' instruction line.
	Preprocessor
	// Annotation covers '&Name' compilation directives.
	Annotation

	// Ident represents an identifier token.
	Ident
	// Number represents a numeric literal.
	Number
	// String represents a (possibly multi-line) string literal.
	String
	// Date represents a date literal in single quotes.
	Date

	KwProcedure     // Процедура
	KwFunction      // Функция
	KwEndProcedure  // КонецПроцедуры
	KwEndFunction   // КонецФункции
	KwVal           // Знач
	KwExport        // Экспорт
	KwVar           // Перем
	KwReturn        // Возврат
	KwIf            // Если
	KwThen          // Тогда
	KwElsIf         // ИначеЕсли
	KwElse          // Иначе
	KwEndIf         // КонецЕсли
	KwWhile         // Пока
	KwFor           // Для
	KwEach          // Каждого
	KwIn            // Из
	KwTo            // По
	KwDo            // Цикл
	KwEndDo         // КонецЦикла
	KwTry           // Попытка
	KwExcept        // Исключение
	KwEndTry        // КонецПопытки
	KwRaise         // ВызватьИсключение
	KwBreak         // Прервать
	KwContinue      // Продолжить
	KwNew           // Новый
	KwAnd           // И
	KwOr            // Или
	KwNot           // Не
	KwTrue          // Истина
	KwFalse         // Ложь
	KwUndefined     // Неопределено
	KwNull          // NULL
	KwGoto          // Перейти
	KwAddHandler    // ДобавитьОбработчик
	KwRemoveHandler // УдалитьОбработчик
	KwAsync         // Асинх
	KwAwait         // Ждать

	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Percent   // %
	Assign    // = (also equality)
	NotEq     // <>
	Lt        // <
	LtEq      // <=
	Gt        // >
	GtEq      // >=
	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	Comma     // ,
	Semicolon // ;
	Dot       // .
	Question  // ?
	Colon     // :
	Tilde     // ~
)

var kindNames = [...]string{
	Invalid:         "Invalid",
	EOF:             "EOF",
	WhiteSpace:      "WhiteSpace",
	LineComment:     "LineComment",
	Preprocessor:    "Preprocessor",
	Annotation:      "Annotation",
	Ident:           "Ident",
	Number:          "Number",
	String:          "String",
	Date:            "Date",
	KwProcedure:     "KwProcedure",
	KwFunction:      "KwFunction",
	KwEndProcedure:  "KwEndProcedure",
	KwEndFunction:   "KwEndFunction",
	KwVal:           "KwVal",
	KwExport:        "KwExport",
	KwVar:           "KwVar",
	KwReturn:        "KwReturn",
	KwIf:            "KwIf",
	KwThen:          "KwThen",
	KwElsIf:         "KwElsIf",
	KwElse:          "KwElse",
	KwEndIf:         "KwEndIf",
	KwWhile:         "KwWhile",
	KwFor:           "KwFor",
	KwEach:          "KwEach",
	KwIn:            "KwIn",
	KwTo:            "KwTo",
	KwDo:            "KwDo",
	KwEndDo:         "KwEndDo",
	KwTry:           "KwTry",
	KwExcept:        "KwExcept",
	KwEndTry:        "KwEndTry",
	KwRaise:         "KwRaise",
	KwBreak:         "KwBreak",
	KwContinue:      "KwContinue",
	KwNew:           "KwNew",
	KwAnd:           "KwAnd",
	KwOr:            "KwOr",
	KwNot:           "KwNot",
	KwTrue:          "KwTrue",
	KwFalse:         "KwFalse",
	KwUndefined:     "KwUndefined",
	KwNull:          "KwNull",
	KwGoto:          "KwGoto",
	KwAddHandler:    "KwAddHandler",
	KwRemoveHandler: "KwRemoveHandler",
	KwAsync:         "KwAsync",
	KwAwait:         "KwAwait",
	Plus:            "Plus",
	Minus:           "Minus",
	Star:            "Star",
	Slash:           "Slash",
	Percent:         "Percent",
	Assign:          "Assign",
	NotEq:           "NotEq",
	Lt:              "Lt",
	LtEq:            "LtEq",
	Gt:              "Gt",
	GtEq:            "GtEq",
	LParen:          "LParen",
	RParen:          "RParen",
	LBracket:        "LBracket",
	RBracket:        "RBracket",
	Comma:           "Comma",
	Semicolon:       "Semicolon",
	Dot:             "Dot",
	Question:        "Question",
	Colon:           "Colon",
	Tilde:           "Tilde",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsKeyword reports whether the kind is a language keyword.
func (k Kind) IsKeyword() bool {
	return k >= KwProcedure && k <= KwAwait
}

// IsOperator reports whether the kind is an operator or punctuation.
func (k Kind) IsOperator() bool {
	return k >= Plus && k <= Tilde
}

// IsLiteral reports whether the kind is a literal value.
func (k Kind) IsLiteral() bool {
	switch k {
	case Number, String, Date, KwTrue, KwFalse, KwUndefined, KwNull:
		return true
	default:
		return false
	}
}
