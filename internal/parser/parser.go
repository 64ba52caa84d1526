package parser

import (
	"slices"

	"bslint/internal/ast"
	"bslint/internal/token"
)

// Parser: состояние парсера на один модуль. Разбирает только значимые токены,
// но узлы адресуют полный поток по Token.Index.
type Parser struct {
	stream []token.Token
	sig    []token.Token
	pos    int
	eof    token.Token
}

// Parse builds the parse tree of a module from its full token stream.
// Parsing never fails: unexpected tokens become error nodes holding the real
// token, missing tokens become error nodes with ast.NoToken.
func Parse(stream []token.Token) *ast.Tree {
	sig := make([]token.Token, 0, len(stream)/2)
	for _, t := range stream {
		// препроцессор не участвует в синтаксисе
		if t.IsTrivia() || t.Kind == token.Preprocessor || t.Kind == token.EOF {
			continue
		}
		sig = append(sig, t)
	}
	p := &Parser{
		stream: stream,
		sig:    sig,
		eof:    token.Token{Kind: token.EOF, Index: len(stream)},
	}
	return &ast.Tree{Root: p.parseFile(), Tokens: stream}
}

func (p *Parser) peek() token.Token {
	return p.peekAt(0)
}

func (p *Parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.sig) {
		return p.eof
	}
	return p.sig[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.sig) {
		p.pos++
	}
	return tok
}

// take съедает токен и расширяет им узел.
func (p *Parser) take(n *ast.Node) token.Token {
	tok := p.advance()
	n.Cover(tok.Index)
	return tok
}

// expect ожидает конкретный токен. Если его нет, в узел добавляется
// синтетический error-узел, а поток не двигается.
func (p *Parser) expect(n *ast.Node, k token.Kind) bool {
	if p.at(k) {
		p.take(n)
		return true
	}
	n.Append(missing(k, spelling(k)))
	return false
}

func missing(k token.Kind, what string) *ast.Node {
	e := ast.NewNode(ast.KindError)
	e.Expected = k
	e.Text = "<missing " + what + ">"
	return e
}

// unexpected оборачивает текущий токен в error-узел и съедает его.
func (p *Parser) unexpected() *ast.Node {
	tok := p.advance()
	e := ast.NewNode(ast.KindError)
	e.TokenIndex = tok.Index
	e.Text = tok.Text
	e.Cover(tok.Index)
	return e
}

// parseFile: основной цикл верхнего уровня.
func (p *Parser) parseFile() *ast.Node {
	file := ast.NewNode(ast.KindFile)
	for !p.at(token.EOF) {
		switch {
		case p.atModuleVars():
			file.Append(p.parseVars(ast.KindModuleVars))
		case p.atSubStart():
			file.Append(p.parseSub())
		case isBlockEnd(p.peek().Kind):
			file.Append(p.unexpected())
		default:
			block := p.parseCodeBlock(nil, false)
			if block.Empty() && len(block.Children) == 0 {
				file.Append(p.unexpected())
				continue
			}
			file.Append(block)
		}
	}
	return file
}

// atSubStart: &Аннотации, Асинх, Процедура, Функция.
func (p *Parser) atSubStart() bool {
	i := 0
	for p.peekAt(i).Kind == token.Annotation {
		i = p.skipAnnotationAt(i)
	}
	k := p.peekAt(i).Kind
	if k == token.KwAsync {
		k = p.peekAt(i + 1).Kind
	}
	return k == token.KwProcedure || k == token.KwFunction
}

func (p *Parser) atModuleVars() bool {
	i := 0
	for p.peekAt(i).Kind == token.Annotation {
		i = p.skipAnnotationAt(i)
	}
	return p.peekAt(i).Kind == token.KwVar
}

// skipAnnotationAt возвращает смещение после аннотации с параметрами: &Вместо("Имя").
func (p *Parser) skipAnnotationAt(i int) int {
	i++
	if p.peekAt(i).Kind != token.LParen {
		return i
	}
	depth := 0
	for {
		switch p.peekAt(i).Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				return i + 1
			}
		case token.EOF:
			return i
		}
		i++
	}
}

func (p *Parser) parseAnnotation() *ast.Node {
	n := ast.NewNode(ast.KindAnnotation)
	end := p.skipAnnotationAt(0)
	for range end {
		p.take(n)
	}
	return n
}

// isBlockEnd: токены, на которых заканчивается любой блок кода.
func isBlockEnd(k token.Kind) bool {
	switch k {
	case token.KwEndProcedure, token.KwEndFunction, token.KwEndIf, token.KwElsIf, token.KwElse,
		token.KwEndDo, token.KwExcept, token.KwEndTry:
		return true
	default:
		return false
	}
}

func (p *Parser) atBoundary() bool {
	k := p.peek().Kind
	return k == token.EOF || isBlockEnd(k) || p.atSubStart()
}

var spellings = map[token.Kind]string{
	token.KwEndProcedure: "'КонецПроцедуры'",
	token.KwEndFunction:  "'КонецФункции'",
	token.KwEndIf:        "'КонецЕсли'",
	token.KwThen:         "'Тогда'",
	token.KwDo:           "'Цикл'",
	token.KwEndDo:        "'КонецЦикла'",
	token.KwExcept:       "'Исключение'",
	token.KwEndTry:       "'КонецПопытки'",
	token.KwIn:           "'Из'",
	token.KwTo:           "'По'",
	token.Assign:         "'='",
	token.LParen:         "'('",
	token.RParen:         "')'",
	token.RBracket:       "']'",
	token.Comma:          "','",
	token.Colon:          "':'",
	token.Semicolon:      "';'",
	token.Tilde:          "'~'",
	token.Ident:          "IDENTIFIER",
}

func spelling(k token.Kind) string {
	if s, ok := spellings[k]; ok {
		return s
	}
	return k.String()
}
