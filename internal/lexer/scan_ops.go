package lexer

import (
	"bslint/internal/token"
)

// Жадность: сначала 2-символьные (<> <= >=), затем 1-символьные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	switch {
	case lx.try2('<', '>'):
		return lx.emit(token.NotEq, start)
	case lx.try2('<', '='):
		return lx.emit(token.LtEq, start)
	case lx.try2('>', '='):
		return lx.emit(token.GtEq, start)
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '+':
		return lx.emit(token.Plus, start)
	case '-':
		return lx.emit(token.Minus, start)
	case '*':
		return lx.emit(token.Star, start)
	case '/':
		return lx.emit(token.Slash, start)
	case '%':
		return lx.emit(token.Percent, start)
	case '=':
		return lx.emit(token.Assign, start)
	case '<':
		return lx.emit(token.Lt, start)
	case '>':
		return lx.emit(token.Gt, start)
	case '(':
		return lx.emit(token.LParen, start)
	case ')':
		return lx.emit(token.RParen, start)
	case '[':
		return lx.emit(token.LBracket, start)
	case ']':
		return lx.emit(token.RBracket, start)
	case ',':
		return lx.emit(token.Comma, start)
	case ';':
		return lx.emit(token.Semicolon, start)
	case '.':
		return lx.emit(token.Dot, start)
	case '?':
		return lx.emit(token.Question, start)
	case ':':
		return lx.emit(token.Colon, start)
	case '~':
		return lx.emit(token.Tilde, start)
	default:
		sp := lx.cursor.SpanFrom(start)
		lx.report("UnknownChar", sp, "unknown character")
		return lx.emit(token.Invalid, start)
	}
}
