package token

import (
	"bslint/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind  Kind
	Span  source.Span
	Text  string
	Pos   source.Position // start, zero-based
	End   source.Position // position right after the last character
	Index int             // position in the token stream
}

// Range returns the editor range covered by the token.
func (t Token) Range() source.Range {
	return source.Range{Start: t.Pos, End: t.End}
}

// IsWhiteSpace reports whether the token is a whitespace run.
func (t Token) IsWhiteSpace() bool { return t.Kind == WhiteSpace }

// IsComment reports whether the token is a line comment.
func (t Token) IsComment() bool { return t.Kind == LineComment }

// IsTrivia reports whether the token carries no code.
func (t Token) IsTrivia() bool {
	return t.Kind == WhiteSpace || t.Kind == LineComment
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsOperator reports whether the token is an operator or punctuation.
func (t Token) IsOperator() bool { return t.Kind.IsOperator() }

// IsLiteral reports whether the token is a literal value.
func (t Token) IsLiteral() bool { return t.Kind.IsLiteral() }

// Comments returns the line comments of a stream in order.
func Comments(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens)/8)
	for _, t := range tokens {
		if t.Kind == LineComment {
			out = append(out, t)
		}
	}
	return out
}

// Significant returns the stream without whitespace and comments.
func Significant(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens)/2)
	for _, t := range tokens {
		if !t.IsTrivia() && t.Kind != EOF {
			out = append(out, t)
		}
	}
	return out
}
