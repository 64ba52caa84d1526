package rules

import (
	"errors"
	"fmt"

	"github.com/dlclark/regexp2"

	"bslint/internal/diag"
	"bslint/internal/fix"
	"bslint/internal/token"
)

const (
	defaultListLeft         = ""
	defaultListRight        = ", ;"
	defaultListLeftAndRight = "+ - * / = % < > <> <= >="
	unaryPredecessors       = "+ - * / = % < > ( [ , Возврат Return <> <= >="
)

var unaryBefore = func() *regexp2.Regexp {
	re, err := lexemeSet(unaryPredecessors)
	if err != nil {
		panic(err)
	}
	return re
}()

// MissingSpace reports operators and separators without surrounding spaces.
type MissingSpace struct {
	tokenScan
	left, right, both *regexp2.Regexp
	checkUnaryRight   bool
	allowMultiCommas  bool
	listLeft          string
	listRight         string
	listLeftAndRight  string
}

func NewMissingSpace(params Params) (Rule, error) {
	r := &MissingSpace{}
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	var err error
	r.listLeft, err = params.String("listForCheckLeft", defaultListLeft)
	collect(err)
	r.listRight, err = params.String("listForCheckRight", defaultListRight)
	collect(err)
	r.listLeftAndRight, err = params.String("listForCheckLeftAndRight", defaultListLeftAndRight)
	collect(err)
	r.checkUnaryRight, err = params.Bool("checkSpaceToRightOfUnary", false)
	collect(err)
	r.allowMultiCommas, err = params.Bool("allowMultipleCommas", false)
	collect(err)

	// ошибочный список выключает свою ветку
	compileList := func(name, list string) *regexp2.Regexp {
		re, err := lexemeSet(list)
		if err != nil {
			collect(fmt.Errorf("parameter %s: %w", name, err))
			return nil
		}
		return re
	}
	r.left = compileList("listForCheckLeft", r.listLeft)
	r.right = compileList("listForCheckRight", r.listRight)
	r.both = compileList("listForCheckLeftAndRight", r.listLeftAndRight)
	return r, errors.Join(errs...)
}

func (r *MissingSpace) Info() Info {
	return Info{
		Code:     diag.CodeMissingSpace,
		Kind:     r.Kind(),
		Type:     TypeCodeSmell,
		Severity: SeverityInfo,
		Minutes:  1,
		Tags:     []Tag{TagBadPractice},
		Params: []ParamInfo{
			{Name: "listForCheckLeft", Default: defaultListLeft, Description: "Символы, требующие пробел слева (через пробел)"},
			{Name: "listForCheckRight", Default: defaultListRight, Description: "Символы, требующие пробел справа (через пробел)"},
			{Name: "listForCheckLeftAndRight", Default: defaultListLeftAndRight, Description: "Символы, требующие пробелы с обеих сторон (через пробел)"},
			{Name: "checkSpaceToRightOfUnary", Default: false, Description: "Проверять пробел справа от унарных + и -"},
			{Name: "allowMultipleCommas", Default: false, Description: "Разрешать несколько запятых подряд"},
		},
	}
}

func (r *MissingSpace) Check(ctx *Context) []diag.Diagnostic {
	info := r.Info()
	msgs := ctx.Messages
	store := diag.NewStorage(info.Code, info.DiagSeverity(), "")
	report := func(t token.Token, word string, hint diag.FixHint) {
		msg := msgs.Get(info.Code, "message", msgs.Get(info.Code, word), t.Text)
		store.AddToken(t, diag.WithMessage(msg), diag.WithHint(hint))
	}

	tokens := ctx.Snapshot.Tokens
	for _, t := range tokens {
		if t.IsTrivia() {
			continue
		}
		if find(r.left, t.Text) && noSpaceLeft(tokens, t) {
			report(t, "wordLeft", diag.HintMissingLeft)
		}
		if find(r.right, t.Text) && r.noSpaceRight(tokens, t) {
			report(t, "wordRight", diag.HintMissingRight)
		}
		if find(r.both, t.Text) {
			left, right := noSpaceLeft(tokens, t), r.noSpaceRight(tokens, t)
			switch {
			case left && right:
				report(t, "wordLeftAndRight", diag.HintMissingBoth)
			case left:
				report(t, "wordLeft", diag.HintMissingLeft)
			case right:
				report(t, "wordRight", diag.HintMissingRight)
			}
		}
	}
	return store.Diagnostics()
}

func noSpaceLeft(tokens []token.Token, t token.Token) bool {
	if t.Index <= 0 || t.Index > len(tokens) {
		return false
	}
	return tokens[t.Index-1].Kind != token.WhiteSpace
}

func (r *MissingSpace) noSpaceRight(tokens []token.Token, t token.Token) bool {
	if (t.Kind == token.Plus || t.Kind == token.Minus) && !r.checkUnaryRight && isUnary(tokens, t) {
		return false
	}
	if t.Index+1 >= len(tokens) {
		return false
	}
	next := tokens[t.Index+1]
	if r.allowMultiCommas && t.Kind == token.Comma && next.Kind == token.Comma {
		return false
	}
	return next.Kind != token.WhiteSpace
}

// isUnary: перед знаком (без учёта пробелов) стоит оператор, открывающая
// скобка, запятая, Возврат, либо начало модуля.
func isUnary(tokens []token.Token, t token.Token) bool {
	for i := t.Index - 1; i >= 0; i-- {
		if tokens[i].Kind == token.WhiteSpace {
			continue
		}
		return find(unaryBefore, tokens[i].Text)
	}
	return true
}

// QuickFixes inserts the missing spaces of all given diagnostics in one action.
func (r *MissingSpace) QuickFixes(ctx *Context, diagnostics []diag.Diagnostic) []fix.CodeAction {
	var edits []fix.TextEdit
	var fixed []diag.Diagnostic
	for _, d := range diagnostics {
		if d.Code != diag.CodeMissingSpace {
			continue
		}
		switch d.Hint {
		case diag.HintMissingLeft:
			edits = append(edits, fix.InsertText(d.Range.Start, " "))
		case diag.HintMissingRight:
			edits = append(edits, fix.InsertText(d.Range.End, " "))
		case diag.HintMissingBoth:
			edits = append(edits, fix.InsertText(d.Range.Start, " "), fix.InsertText(d.Range.End, " "))
		default:
			continue
		}
		fixed = append(fixed, d)
	}
	if len(edits) == 0 {
		return nil
	}
	title := ctx.Messages.Get(diag.CodeMissingSpace, "quickfix")
	return []fix.CodeAction{fix.NewQuickFix(title, ctx.Snapshot.URI, fixed, edits)}
}
