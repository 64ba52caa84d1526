package rules

import (
	"bslint/internal/ast"
	"bslint/internal/diag"
)

// ParseError reports tokens the parser expected but did not find.
type ParseError struct {
	nodePattern
}

func NewParseError(Params) (Rule, error) {
	return &ParseError{}, nil
}

func (r *ParseError) Info() Info {
	return Info{
		Code:     diag.CodeParseError,
		Kind:     r.Kind(),
		Type:     TypeError,
		Severity: SeverityCritical,
		Scope:    ScopeAll,
		Minutes:  5,
		Tags:     []Tag{TagError},
	}
}

func (r *ParseError) Check(ctx *Context) []diag.Diagnostic {
	info := r.Info()
	store := diag.NewStorage(info.Code, info.DiagSeverity(), "")
	tree := ctx.Snapshot.Tree
	ast.Walk(tree.Root, func(n *ast.Node) bool {
		if !n.IsMissing() || n.Parent == nil {
			return true
		}
		start, ok := tree.StartToken(n.Parent)
		if !ok {
			return true
		}
		store.AddToken(start, diag.WithMessage(ctx.Messages.Get(info.Code, "message", tree.Text(n))))
		return true
	})
	return store.Diagnostics()
}
