package parser

import (
	"bslint/internal/ast"
	"bslint/internal/token"
)

// parseSub разбирает процедуру или функцию целиком:
//
//	&НаСервере
//	Функция Имя(Знач А, Б = 1) Экспорт ... КонецФункции
func (p *Parser) parseSub() *ast.Node {
	sub := ast.NewNode(ast.KindSub)
	decl := ast.NewNode(ast.KindSubDecl)

	for p.at(token.Annotation) {
		decl.Append(p.parseAnnotation())
	}
	if p.at(token.KwAsync) {
		p.take(decl)
	}
	kw := p.take(decl)
	decl.IsFunction = kw.Kind == token.KwFunction
	endKind := token.KwEndProcedure
	if decl.IsFunction {
		endKind = token.KwEndFunction
	}

	decl.NameIndex = ast.NoToken
	if p.at(token.Ident) {
		name := p.take(decl)
		decl.Name = name.Text
		decl.NameIndex = name.Index
	} else {
		decl.Append(missing(token.Ident, spelling(token.Ident)))
	}

	if p.at(token.LParen) {
		decl.Append(p.parseParamList())
	} else {
		decl.Append(missing(token.LParen, spelling(token.LParen)))
	}
	if p.at(token.KwExport) {
		p.take(decl)
		decl.Export = true
	}

	sub.IsFunction, sub.Name, sub.NameIndex, sub.Export = decl.IsFunction, decl.Name, decl.NameIndex, decl.Export
	sub.Append(decl)
	sub.Append(p.parseCodeBlock([]token.Kind{token.KwEndProcedure, token.KwEndFunction}, true))
	p.expect(sub, endKind)
	if p.at(token.Semicolon) {
		p.take(sub)
	}
	return sub
}

func (p *Parser) parseParamList() *ast.Node {
	list := ast.NewNode(ast.KindParamList)
	p.take(list) // '('
	for !p.at(token.RParen) {
		if p.atOr(token.EOF, token.KwExport) || p.atBoundary() {
			break
		}
		if p.at(token.Comma) {
			p.take(list)
			continue
		}
		if !p.atOr(token.Annotation, token.KwVal, token.Ident) {
			list.Append(p.unexpected())
			continue
		}
		list.Append(p.parseParam())
	}
	p.expect(list, token.RParen)
	return list
}

func (p *Parser) parseParam() *ast.Node {
	param := ast.NewNode(ast.KindParam)
	for p.at(token.Annotation) {
		param.Append(p.parseAnnotation())
	}
	if p.at(token.KwVal) {
		p.take(param)
	}
	if !p.at(token.Ident) {
		param.Append(missing(token.Ident, spelling(token.Ident)))
		return param
	}
	name := p.take(param)
	param.Name = name.Text
	param.NameIndex = name.Index
	if p.at(token.Assign) {
		p.take(param)
		// значение по умолчанию: константа, возможно со знаком
		if p.atOr(token.Minus, token.Plus) {
			p.take(param)
		}
		if p.peek().Kind.IsLiteral() {
			p.take(param)
		} else {
			param.Append(missing(token.Invalid, "default value"))
		}
	}
	return param
}

// parseVars: Перем А Экспорт, Б;
func (p *Parser) parseVars(kind ast.Kind) *ast.Node {
	n := ast.NewNode(kind)
	for p.at(token.Annotation) {
		n.Append(p.parseAnnotation())
	}
	p.take(n) // Перем
	for {
		if !p.expect(n, token.Ident) {
			break
		}
		if p.at(token.KwExport) {
			p.take(n)
			n.Export = true
		}
		if !p.at(token.Comma) {
			break
		}
		p.take(n)
	}
	p.expect(n, token.Semicolon)
	return n
}
