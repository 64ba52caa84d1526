package rules

import (
	"bslint/internal/ast"
	"bslint/internal/diag"
	"bslint/internal/fix"
	"bslint/internal/project"
	"bslint/internal/token"
)

const (
	thisObject   = "ЭтотОбъект"
	thisObjectEN = "ThisObject"
)

var (
	// префикс: ЭтаФормаОбъект тоже считается обращением к форме
	reThisForm   = mustCompile(`^(этаформа|thisform)`)
	reThisFormRU = mustCompile(`^этаформа$`)
)

// UsingThisForm reports the deprecated ЭтаФорма/ThisForm property in form modules.
type UsingThisForm struct {
	treeVisit
}

func NewUsingThisForm(Params) (Rule, error) {
	return &UsingThisForm{}, nil
}

func (r *UsingThisForm) Info() Info {
	return Info{
		Code:          diag.CodeUsingThisForm,
		Kind:          r.Kind(),
		Type:          TypeCodeSmell,
		Severity:      SeverityMinor,
		Scope:         ScopeBSL,
		Minutes:       1,
		Tags:          []Tag{TagStandard, TagDeprecated},
		Compatibility: project.CompatibilityMode{Major: 8, Minor: 3, Version: 3},
	}
}

func (r *UsingThisForm) Check(ctx *Context) []diag.Diagnostic {
	info := r.Info()
	store := diag.NewStorage(info.Code, info.DiagSeverity(), ctx.Messages.Get(info.Code, "message"))
	snap := ctx.Snapshot
	if !hasContextDirective(snap.Tokens) {
		return nil
	}
	tree := snap.Tree
	ast.Walk(tree.Root, func(n *ast.Node) bool {
		switch n.Kind {
		case ast.KindSub:
			return needCheck(tree, n)
		case ast.KindCallStatement:
			if find(reThisForm, tree.Text(n)) {
				if start, ok := tree.StartToken(n); ok {
					store.AddToken(start)
				}
			}
		case ast.KindExpression:
			for _, t := range tree.OwnTokens(n) {
				if t.Kind == token.Ident && find(reThisForm, t.Text) {
					store.AddToken(t)
				}
			}
		}
		return true
	})
	return store.Diagnostics()
}

// hasContextDirective: правило имеет смысл только в модулях с директивами
// компиляции, то есть в модулях форм.
func hasContextDirective(tokens []token.Token) bool {
	for _, t := range tokens {
		if t.Kind == token.Annotation && token.LookupDirective(t.Text) != token.DirectiveNone {
			return true
		}
	}
	return false
}

// needCheck: у метода нет параметров или ни один из них не называется ЭтаФорма.
func needCheck(tree *ast.Tree, sub *ast.Node) bool {
	decl := sub.First(ast.KindSubDecl)
	if decl == nil {
		return true
	}
	list := decl.First(ast.KindParamList)
	if list == nil {
		return true
	}
	for _, p := range list.All(ast.KindParam) {
		if find(reThisForm, tree.Text(p)) {
			return false
		}
	}
	return true
}

// QuickFixes replaces every flagged occurrence in one action.
func (r *UsingThisForm) QuickFixes(ctx *Context, diagnostics []diag.Diagnostic) []fix.CodeAction {
	file := ctx.Snapshot.File
	var edits []fix.TextEdit
	var fixed []diag.Diagnostic
	for _, d := range diagnostics {
		if d.Code != diag.CodeUsingThisForm {
			continue
		}
		current := string(file.Content[file.OffsetAt(d.Range.Start):file.OffsetAt(d.Range.End)])
		replacement := thisObjectEN
		if find(reThisFormRU, current) {
			replacement = thisObject
		}
		edits = append(edits, fix.ReplaceRange(d.Range, replacement))
		fixed = append(fixed, d)
	}
	if len(edits) == 0 {
		return nil
	}
	title := ctx.Messages.Get(diag.CodeUsingThisForm, "quickfix")
	return []fix.CodeAction{fix.NewQuickFix(title, ctx.Snapshot.URI, fixed, edits)}
}
