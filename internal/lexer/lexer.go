package lexer

import (
	"unicode/utf8"

	"bslint/internal/source"
	"bslint/internal/token"
)

// Lexer splits a BSL module into a full token stream: whitespace and
// comments are emitted as tokens too.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	index  int

	// позиция курсора в координатах редактора, двигается только вперёд
	posOff uint32
	pos    source.Position
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Tokenize returns the complete stream of the file, EOF excluded.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	out := make([]token.Token, 0, len(file.Content)/3+1)
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return out
		}
		out = append(out, tok)
	}
}

// TokenizeText tokenizes a detached piece of text, for example the body of a
// comment. Errors are ignored.
func TokenizeText(text string) []token.Token {
	return Tokenize(source.NewFile(0, "<text>", []byte(text), source.FileVirtual), Options{})
}

// Next возвращает следующий токен потока. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.cursor.EOF() {
		sp := source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
		return lx.finish(token.Token{Kind: token.EOF, Span: sp})
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isSpaceByte(ch) || lx.atNBSP():
		tok = lx.scanWhiteSpace()
	case ch == '/' && lx.cursor.PeekAt(1) == '/':
		tok = lx.scanComment()
	case ch == '"':
		tok = lx.scanString()
	case ch == '\'':
		tok = lx.scanDate()
	case ch == '&':
		tok = lx.scanAnnotation()
	case ch == '#':
		tok = lx.scanPreprocessor()
	case isDec(ch):
		tok = lx.scanNumber()
	case isIdentStartByte(ch), ch >= utf8.RuneSelf:
		tok = lx.scanIdentOrKeyword()
	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Index = lx.index
	lx.index++
	return lx.finish(tok)
}

// finish fills editor positions. Tokens are contiguous, so the tracker only
// walks each byte once.
func (lx *Lexer) finish(tok token.Token) token.Token {
	tok.Pos = lx.advanceTo(tok.Span.Start)
	tok.End = lx.advanceTo(tok.Span.End)
	return tok
}

func (lx *Lexer) advanceTo(off uint32) source.Position {
	content := lx.file.Content
	for lx.posOff < off {
		b := content[lx.posOff]
		switch {
		case b == '\n':
			lx.pos.Line++
			lx.pos.Character = 0
			lx.posOff++
		case b < utf8.RuneSelf:
			lx.pos.Character++
			lx.posOff++
		default:
			r, size := utf8.DecodeRune(content[lx.posOff:])
			if r >= 0x10000 {
				lx.pos.Character += 2
			} else {
				lx.pos.Character++
			}
			lx.posOff += uint32(size) // #nosec G115 -- size <= utf8.UTFMax
		}
	}
	return lx.pos
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
