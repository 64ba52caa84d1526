package lexer

import (
	"bslint/internal/token"
)

// Числа BSL: 123, 1.5. Экспоненты и других систем счисления в языке нет.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	return lx.emit(token.Number, start)
}

// scanDate: '20240131' или '2024-01-31 10:00:00', внутри кавычек что угодно до
// закрывающей кавычки на той же строке.
func (lx *Lexer) scanDate() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '\''
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\'' {
			lx.cursor.Bump()
			return lx.emit(token.Date, start)
		}
		if b == '\n' {
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.report("UnterminatedDate", sp, "unterminated date literal")
	return lx.emit(token.Invalid, start)
}
