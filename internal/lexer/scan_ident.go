package lexer

import (
	"bslint/internal/token"
)

// scanIdentOrKeyword сканирует идентификатор и проверяет через LookupKeyword.
// Ключевые слова регистронезависимые. Token.Text ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 || !isIdentStartRune(r) {
		// неизвестный символ, например '$' или одиночный байт мусора
		lx.bumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.report("UnknownChar", sp, "unknown character")
		return lx.emit(token.Invalid, start)
	}
	lx.scanIdentTail()

	tok := lx.emit(token.Ident, start)
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}

func (lx *Lexer) scanIdentTail() {
	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				return
			}
			lx.cursor.Bump()
			continue
		}
		r, sz := lx.peekRune()
		if sz == 0 || !isIdentContinueRune(r) {
			return
		}
		lx.bumpRune()
	}
}

// scanAnnotation: &НаСервере. Голый '&' считается ошибкой.
func (lx *Lexer) scanAnnotation() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '&'
	r, sz := lx.peekRune()
	if sz == 0 || !isIdentStartRune(r) {
		sp := lx.cursor.SpanFrom(start)
		lx.report("BadAnnotation", sp, "expected annotation name after '&'")
		return lx.emit(token.Invalid, start)
	}
	lx.scanIdentTail()
	return lx.emit(token.Annotation, start)
}

// scanPreprocessor: '#' и всё до конца строки (#Область, #Если Сервер Тогда, #КонецЕсли).
func (lx *Lexer) scanPreprocessor() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	return lx.emit(token.Preprocessor, start)
}
