// Package testkit holds checks shared by parser tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"bslint/internal/ast"
	"bslint/internal/source"
	"bslint/internal/token"
)

// CheckTokenInvariants checks the stream produced by the lexer for file:
// 1) tokens are non-empty, numbered in order and contiguous from offset 0
// 2) the stream ends exactly at the end of the content
// 3) Text matches the bytes the span covers
func CheckTokenInvariants(tokens []token.Token, file *source.File) error {
	if file == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	var off uint32
	for i, tok := range tokens {
		if tok.Index != i {
			return fmt.Errorf("token %d has index %d", i, tok.Index)
		}
		if tok.Span.Empty() {
			return fmt.Errorf("empty token %d (%s) at %d", i, tok.Kind, tok.Span.Start)
		}
		if tok.Span.Start != off {
			return fmt.Errorf("gap before token %d: starts at %d, previous ends at %d", i, tok.Span.Start, off)
		}
		if tok.Span.End > lenContent {
			return fmt.Errorf("token %d ends beyond content: %d > %d", i, tok.Span.End, lenContent)
		}
		if got := string(file.Content[tok.Span.Start:tok.Span.End]); got != tok.Text {
			return fmt.Errorf("token %d text %q does not match source %q", i, tok.Text, got)
		}
		if tok.End.Less(tok.Pos) {
			return fmt.Errorf("token %d range is inverted: %v", i, tok.Range())
		}
		off = tok.Span.End
	}
	if off != lenContent {
		return fmt.Errorf("stream ends at %d, content is %d bytes", off, lenContent)
	}
	return nil
}

// CheckTreeInvariants checks the shape of a parse tree:
// 1) every child points back to its parent
// 2) token indices of non-empty nodes lie within the stream
// 3) a parent covers the token range of each non-empty child
func CheckTreeInvariants(tree *ast.Tree) error {
	if tree == nil || tree.Root == nil {
		return fmt.Errorf("nil tree")
	}
	if tree.Root.Parent != nil {
		return fmt.Errorf("root has a parent")
	}
	var check func(n *ast.Node) error
	check = func(n *ast.Node) error {
		if !n.Empty() && (n.Start < 0 || n.End >= len(tree.Tokens)) {
			return fmt.Errorf("%s [%d..%d] is outside the stream of %d tokens", n.Kind, n.Start, n.End, len(tree.Tokens))
		}
		for _, c := range n.Children {
			if c == nil {
				return fmt.Errorf("%s has a nil child", n.Kind)
			}
			if c.Parent != n {
				return fmt.Errorf("%s child %s has a foreign parent", n.Kind, c.Kind)
			}
			if !c.Empty() && (n.Empty() || c.Start < n.Start || c.End > n.End) {
				return fmt.Errorf("%s [%d..%d] is not covered by parent %s [%d..%d]", c.Kind, c.Start, c.End, n.Kind, n.Start, n.End)
			}
			if err := check(c); err != nil {
				return err
			}
		}
		return nil
	}
	return check(tree.Root)
}
