package lexer

import (
	"bslint/internal/token"
)

// scanString сканирует строку целиком, включая многострочные продолжения:
//
//	"первая строка
//	|вторая строка"
//
// Кавычка внутри строки удваивается (""), других escape-последовательностей нет.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '"':
			lx.cursor.Bump()
			if lx.cursor.Peek() == '"' {
				lx.cursor.Bump()
				continue
			}
			return lx.emit(token.String, start)
		case '\n':
			if !lx.continuesString() {
				sp := lx.cursor.SpanFrom(start)
				lx.report("UnterminatedString", sp, "newline in string literal")
				return lx.emit(token.Invalid, start)
			}
			continue
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.report("UnterminatedString", sp, "unterminated string literal")
	return lx.emit(token.Invalid, start)
}

// continuesString стоит на '\n': если следующая строка после отступа начинается
// с '|', съедает всё до '|' включительно и сообщает true.
func (lx *Lexer) continuesString() bool {
	mark := lx.cursor.Mark()
	lx.cursor.Bump() // '\n'
	for b := lx.cursor.Peek(); b == ' ' || b == '\t' || b == '\r'; b = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
	if lx.cursor.Eat('|') {
		return true
	}
	lx.cursor.Reset(mark)
	return false
}
