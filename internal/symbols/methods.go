package symbols

import (
	"strings"

	"bslint/internal/ast"
	"bslint/internal/source"
	"bslint/internal/token"
)

// Method is a procedure or function declared in a module.
type Method struct {
	Name        string
	IsFunction  bool
	Export      bool
	Directive   token.ContextDirective
	Node        *ast.Node
	Range       source.Range
	Description *Description
}

// Description is the block of line comments written right above a method.
type Description struct {
	Start int // stream index of the first comment
	End   int // stream index of the last comment
	Range source.Range
	Text  string
}

// Contains reports whether the token range first..last lies inside the description.
func (d *Description) Contains(first, last token.Token) bool {
	return first.Index >= d.Start && last.Index <= d.End
}

// Methods collects the methods of a module in declaration order.
func Methods(tree *ast.Tree) []Method {
	subs := ast.Collect(tree.Root, ast.KindSub)
	out := make([]Method, 0, len(subs))
	for _, sub := range subs {
		m := Method{
			Name:       sub.Name,
			IsFunction: sub.IsFunction,
			Export:     sub.Export,
			Node:       sub,
			Range:      tree.Range(sub),
		}
		if decl := sub.First(ast.KindSubDecl); decl != nil {
			for _, ann := range decl.All(ast.KindAnnotation) {
				if tok, ok := tree.StartToken(ann); ok {
					if d := token.LookupDirective(tok.Text); d != token.DirectiveNone {
						m.Directive = d
					}
				}
			}
		}
		if !sub.Empty() {
			m.Description = describe(tree.Tokens, sub.Start)
		}
		out = append(out, m)
	}
	return out
}

// describe walks back from the first token of a method and gathers the
// comment lines that directly precede it, one per line, nothing else on them.
func describe(tokens []token.Token, start int) *Description {
	first, last := -1, -1
	i := start - 1
	for i >= 0 {
		ws := tokens[i]
		if ws.Kind != token.WhiteSpace || strings.Count(ws.Text, "\n") != 1 {
			break
		}
		c := i - 1
		if c < 0 || tokens[c].Kind != token.LineComment || !startsLine(tokens, c) {
			break
		}
		if last < 0 {
			last = c
		}
		first = c
		i = c - 1
	}
	if first < 0 {
		return nil
	}
	parts := make([]string, 0, last-first+1)
	for j := first; j <= last; j++ {
		if tokens[j].Kind == token.LineComment {
			parts = append(parts, tokens[j].Text)
		}
	}
	return &Description{
		Start: first,
		End:   last,
		Range: source.Range{Start: tokens[first].Pos, End: tokens[last].End},
		Text:  strings.Join(parts, "\n"),
	}
}

// startsLine reports whether only indentation precedes the token on its line.
func startsLine(tokens []token.Token, idx int) bool {
	if idx == 0 {
		return true
	}
	prev := tokens[idx-1]
	return prev.Kind == token.WhiteSpace && (strings.Contains(prev.Text, "\n") || idx == 1)
}
