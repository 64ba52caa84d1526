package ast

import (
	"strings"

	"bslint/internal/source"
	"bslint/internal/token"
)

// Tree binds a parse tree to the token stream it indexes.
type Tree struct {
	Root   *Node
	Tokens []token.Token
}

// Token returns the stream token at idx and whether it exists.
func (t *Tree) Token(idx int) (token.Token, bool) {
	if idx < 0 || idx >= len(t.Tokens) {
		return token.Token{}, false
	}
	return t.Tokens[idx], true
}

// StartToken returns the first token of n. For empty nodes it falls back to
// the closest non-empty ancestor.
func (t *Tree) StartToken(n *Node) (token.Token, bool) {
	for ; n != nil; n = n.Parent {
		if !n.Empty() {
			return t.Token(n.Start)
		}
	}
	return token.Token{}, false
}

// Range returns the editor range spanned by the node's tokens.
func (t *Tree) Range(n *Node) source.Range {
	first, ok := t.StartToken(n)
	if !ok {
		return source.Range{}
	}
	if n.Empty() {
		return source.Range{Start: first.Pos, End: first.Pos}
	}
	last, _ := t.Token(n.End)
	return source.Range{Start: first.Pos, End: last.End}
}

// Text concatenates the node's significant tokens, skipping whitespace and
// comments: `Знач А = 1` reads as "ЗначА=1".
func (t *Tree) Text(n *Node) string {
	if n.Kind == KindError && n.TokenIndex == NoToken {
		return n.Text
	}
	if n.Empty() {
		return ""
	}
	var b strings.Builder
	for i := n.Start; i <= n.End && i < len(t.Tokens); i++ {
		if tok := t.Tokens[i]; !tok.IsTrivia() {
			b.WriteString(tok.Text)
		}
	}
	return b.String()
}

// OwnTokens returns the significant tokens of n that do not belong to a
// nested node of the same kind. For an expression this yields its own
// operands and operators, leaving argument expressions to themselves.
func (t *Tree) OwnTokens(n *Node) []token.Token {
	if n.Empty() {
		return nil
	}
	var nested [][2]int
	var collect func(*Node)
	collect = func(c *Node) {
		for _, ch := range c.Children {
			if ch.Kind == n.Kind {
				if !ch.Empty() {
					nested = append(nested, [2]int{ch.Start, ch.End})
				}
				continue
			}
			collect(ch)
		}
	}
	collect(n)

	out := make([]token.Token, 0, n.End-n.Start+1)
	for i := n.Start; i <= n.End && i < len(t.Tokens); i++ {
		skip := false
		for _, r := range nested {
			if i >= r[0] && i <= r[1] {
				skip = true
				i = r[1]
				break
			}
		}
		if skip {
			continue
		}
		if tok := t.Tokens[i]; !tok.IsTrivia() {
			out = append(out, tok)
		}
	}
	return out
}
