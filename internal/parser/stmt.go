package parser

import (
	"slices"

	"bslint/internal/ast"
	"bslint/internal/token"
)

// parseCodeBlock читает операторы до одного из stops, границы метода или EOF.
// Чужие завершающие слова (КонецЦикла внутри Если) заканчивают вложенный блок,
// а на уровне метода (consumeStray) превращаются в error-узлы.
func (p *Parser) parseCodeBlock(stops []token.Kind, consumeStray bool) *ast.Node {
	block := ast.NewNode(ast.KindCodeBlock)
	for {
		k := p.peek().Kind
		if k == token.EOF || slices.Contains(stops, k) || p.atSubStart() || p.atModuleVarsAtTop(stops) {
			return block
		}
		if isBlockEnd(k) {
			if !consumeStray {
				return block
			}
			block.Append(p.unexpected())
			continue
		}
		switch k {
		case token.Semicolon:
			p.take(block)
		case token.KwVar:
			block.Append(p.parseVars(ast.KindVarDecl))
		default:
			block.Append(p.parseStatement())
		}
	}
}

// atModuleVarsAtTop: на уровне модуля "Перем" между операторами отдаётся parseFile.
func (p *Parser) atModuleVarsAtTop(stops []token.Kind) bool {
	return stops == nil && p.atModuleVars()
}

// parseStatement всегда съедает хотя бы один токен.
func (p *Parser) parseStatement() *ast.Node {
	var n *ast.Node
	switch p.peek().Kind {
	case token.Tilde:
		n = p.parseLabel()
		// после метки ';' не нужен
		return n
	case token.KwIf:
		n = p.parseIf()
	case token.KwWhile:
		n = p.parseWhile()
	case token.KwFor:
		if p.peekAt(1).Kind == token.KwEach {
			n = p.parseForEach()
		} else {
			n = p.parseFor()
		}
	case token.KwTry:
		n = p.parseTry()
	case token.KwReturn:
		n = ast.NewNode(ast.KindReturn)
		p.take(n)
		if !p.atStatementEnd() {
			n.Append(p.parseExpression())
		}
	case token.KwRaise:
		n = ast.NewNode(ast.KindRaise)
		p.take(n)
		switch {
		case p.at(token.LParen):
			n.Append(p.parseCallArgs())
		case !p.atStatementEnd():
			n.Append(p.parseExpression())
		}
	case token.KwBreak:
		n = ast.NewNode(ast.KindBreak)
		p.take(n)
	case token.KwContinue:
		n = ast.NewNode(ast.KindContinue)
		p.take(n)
	case token.KwGoto:
		n = ast.NewNode(ast.KindGoto)
		p.take(n)
		p.expect(n, token.Tilde)
		p.expect(n, token.Ident)
	case token.KwAddHandler, token.KwRemoveHandler:
		n = ast.NewNode(ast.KindHandler)
		p.take(n)
		n.Append(p.parseExpression())
		p.expect(n, token.Comma)
		n.Append(p.parseExpression())
	case token.KwAwait:
		n = ast.NewNode(ast.KindAwait)
		n.Append(p.parseExpression())
	case token.Ident:
		n = p.parseAssignmentOrCall()
	default:
		return p.unexpected()
	}
	p.finishStatement(n)
	return n
}

// finishStatement: ';' обязателен, если дальше в блоке есть ещё оператор.
func (p *Parser) finishStatement(n *ast.Node) {
	if p.at(token.Semicolon) {
		p.take(n)
		return
	}
	if !p.atBoundary() {
		n.Append(missing(token.Semicolon, spelling(token.Semicolon)))
	}
}

func (p *Parser) atStatementEnd() bool {
	return p.at(token.Semicolon) || p.atBoundary()
}

func (p *Parser) parseLabel() *ast.Node {
	n := ast.NewNode(ast.KindLabel)
	p.take(n) // '~'
	p.expect(n, token.Ident)
	p.expect(n, token.Colon)
	return n
}

// parseAssignmentOrCall: Объект.Поле[0].Метод(А) = Выражение; либо вызов.
func (p *Parser) parseAssignmentOrCall() *ast.Node {
	n := ast.NewNode(ast.KindCallStatement)
	p.take(n) // идентификатор
	p.parseModifiers(n)
	if p.at(token.Assign) {
		n.Kind = ast.KindAssignment
		p.take(n)
		n.Append(p.parseExpression())
	}
	return n
}

func (p *Parser) parseIf() *ast.Node {
	n := ast.NewNode(ast.KindIf)
	p.take(n) // Если
	n.Append(p.parseExpression())
	p.expect(n, token.KwThen)
	n.Append(p.parseCodeBlock([]token.Kind{token.KwElsIf, token.KwElse, token.KwEndIf}, false))
	for p.at(token.KwElsIf) {
		p.take(n)
		n.Append(p.parseExpression())
		p.expect(n, token.KwThen)
		n.Append(p.parseCodeBlock([]token.Kind{token.KwElsIf, token.KwElse, token.KwEndIf}, false))
	}
	if p.at(token.KwElse) {
		p.take(n)
		n.Append(p.parseCodeBlock([]token.Kind{token.KwEndIf}, false))
	}
	p.expect(n, token.KwEndIf)
	return n
}

func (p *Parser) parseWhile() *ast.Node {
	n := ast.NewNode(ast.KindWhile)
	p.take(n) // Пока
	n.Append(p.parseExpression())
	p.parseLoopBody(n)
	return n
}

// parseFor: Для И = 1 По 10 Цикл ... КонецЦикла
func (p *Parser) parseFor() *ast.Node {
	n := ast.NewNode(ast.KindFor)
	p.take(n) // Для
	p.expect(n, token.Ident)
	p.expect(n, token.Assign)
	n.Append(p.parseExpression())
	p.expect(n, token.KwTo)
	n.Append(p.parseExpression())
	p.parseLoopBody(n)
	return n
}

// parseForEach: Для Каждого Элемент Из Коллекция Цикл ... КонецЦикла
func (p *Parser) parseForEach() *ast.Node {
	n := ast.NewNode(ast.KindForEach)
	p.take(n) // Для
	p.take(n) // Каждого
	p.expect(n, token.Ident)
	p.expect(n, token.KwIn)
	n.Append(p.parseExpression())
	p.parseLoopBody(n)
	return n
}

func (p *Parser) parseLoopBody(n *ast.Node) {
	p.expect(n, token.KwDo)
	n.Append(p.parseCodeBlock([]token.Kind{token.KwEndDo}, false))
	p.expect(n, token.KwEndDo)
}

func (p *Parser) parseTry() *ast.Node {
	n := ast.NewNode(ast.KindTry)
	p.take(n) // Попытка
	n.Append(p.parseCodeBlock([]token.Kind{token.KwExcept}, false))
	if p.expect(n, token.KwExcept) {
		n.Append(p.parseCodeBlock([]token.Kind{token.KwEndTry}, false))
	}
	p.expect(n, token.KwEndTry)
	return n
}
