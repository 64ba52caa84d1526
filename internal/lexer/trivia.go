package lexer

import (
	"bslint/internal/token"
)

// scanWhiteSpace коалесцирует пробелы, табы, переводы строк и NBSP в один токен.
func (lx *Lexer) scanWhiteSpace() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		if isSpaceByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
			continue
		}
		if lx.atNBSP() {
			lx.cursor.Bump()
			lx.cursor.Bump()
			continue
		}
		break
	}
	return lx.emit(token.WhiteSpace, start)
}

// scanComment: "//" до конца строки, перевод строки в комментарий не входит.
func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	return lx.emit(token.LineComment, start)
}

// atNBSP проверяет U+00A0, который 1С-редактор охотно вставляет вместо пробела.
func (lx *Lexer) atNBSP() bool {
	return lx.cursor.Peek() == 0xC2 && lx.cursor.PeekAt(1) == 0xA0
}
