package parser

import (
	"bslint/internal/ast"
	"bslint/internal/token"
)

func isBinaryOp(k token.Kind) bool {
	switch k {
	case token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.Assign, token.NotEq, token.Lt, token.LtEq, token.Gt, token.GtEq,
		token.KwAnd, token.KwOr:
		return true
	default:
		return false
	}
}

// parseExpression: member (op member)*. Приоритеты операций для анализа не
// нужны, поэтому выражение плоское; вложенными узлами становятся только
// скобки, аргументы, индексы и тернарный оператор.
func (p *Parser) parseExpression() *ast.Node {
	e := ast.NewNode(ast.KindExpression)
	p.parseMember(e)
	for isBinaryOp(p.peek().Kind) {
		p.take(e)
		p.parseMember(e)
	}
	return e
}

func (p *Parser) parseMember(e *ast.Node) {
	for p.atOr(token.Minus, token.Plus, token.KwNot) {
		p.take(e)
	}
	if p.at(token.KwAwait) {
		p.take(e)
	}

	switch k := p.peek().Kind; {
	case k == token.String:
		s := ast.NewNode(ast.KindString)
		// соседние литералы склеиваются: "а" "б"
		for p.at(token.String) {
			p.take(s)
		}
		e.Append(s)
	case k.IsLiteral():
		p.take(e)
	case k == token.LParen:
		p.take(e)
		e.Append(p.parseExpression())
		p.expect(e, token.RParen)
		p.parseModifiers(e)
	case k == token.Question:
		e.Append(p.parseTernary())
		p.parseModifiers(e)
	case k == token.KwNew:
		e.Append(p.parseNew())
		p.parseModifiers(e)
	case k == token.Ident:
		p.take(e)
		p.parseModifiers(e)
	default:
		e.Append(missing(token.Invalid, "expression"))
	}
}

// parseModifiers: .Поле, [Индекс], (Аргументы) в любом количестве.
func (p *Parser) parseModifiers(n *ast.Node) {
	for {
		switch p.peek().Kind {
		case token.Dot:
			p.take(n)
			// после точки допустимы и ключевые слова: Запрос.Выполнить, Объект.Новый
			if next := p.peek(); next.Kind == token.Ident || next.Kind.IsKeyword() {
				p.take(n)
			} else {
				n.Append(missing(token.Ident, spelling(token.Ident)))
			}
		case token.LBracket:
			p.take(n)
			n.Append(p.parseExpression())
			p.expect(n, token.RBracket)
		case token.LParen:
			n.Append(p.parseCallArgs())
		default:
			return
		}
	}
}

// parseCallArgs: (А, , Б). Пропущенные аргументы допустимы.
func (p *Parser) parseCallArgs() *ast.Node {
	args := ast.NewNode(ast.KindCallArgs)
	p.take(args) // '('
	for !p.at(token.RParen) {
		if p.at(token.Comma) {
			p.take(args)
			continue
		}
		if p.at(token.EOF) || p.at(token.Semicolon) || p.atBoundary() {
			break
		}
		before := p.pos
		args.Append(p.parseExpression())
		if p.pos == before {
			// выражение не съело ни одного токена, выходим, чтобы не зациклиться
			break
		}
		if !p.atOr(token.Comma, token.RParen) {
			break
		}
	}
	p.expect(args, token.RParen)
	return args
}

// parseTernary: ?(Условие, Тогда, Иначе)
func (p *Parser) parseTernary() *ast.Node {
	n := ast.NewNode(ast.KindTernary)
	p.take(n) // '?'
	if !p.expect(n, token.LParen) {
		return n
	}
	n.Append(p.parseExpression())
	p.expect(n, token.Comma)
	n.Append(p.parseExpression())
	p.expect(n, token.Comma)
	n.Append(p.parseExpression())
	p.expect(n, token.RParen)
	return n
}

// parseNew: Новый Массив, Новый Структура("А", 1), Новый("Массив").
func (p *Parser) parseNew() *ast.Node {
	n := ast.NewNode(ast.KindNew)
	p.take(n) // Новый
	if p.at(token.Ident) {
		p.take(n)
	}
	if p.at(token.LParen) {
		n.Append(p.parseCallArgs())
	}
	return n
}
