package rules

import (
	"fmt"
	"strings"

	"bslint/internal/diag"
	"bslint/internal/lexer"
	"bslint/internal/recognizer"
	"bslint/internal/symbols"
	"bslint/internal/token"
)

// CommentedCode reports groups of line comments that contain program code.
type CommentedCode struct {
	tokenScan
	threshold  float64
	recognizer *recognizer.CodeRecognizer
}

func NewCommentedCode(params Params) (Rule, error) {
	threshold, err := params.Float("threshold", recognizer.DefaultThreshold)
	if err == nil && (threshold < 0 || threshold > 1) {
		err = fmt.Errorf("parameter threshold: %v is out of range 0..1", threshold)
		threshold = recognizer.DefaultThreshold
	}
	return &CommentedCode{
		threshold:  threshold,
		recognizer: recognizer.New(threshold, recognizer.BSLFootprint{}),
	}, err
}

func (r *CommentedCode) Info() Info {
	return Info{
		Code:     diag.CodeCommentedCode,
		Kind:     r.Kind(),
		Type:     TypeCodeSmell,
		Severity: SeverityMinor,
		Minutes:  1,
		Tags:     []Tag{TagStandard, TagBadPractice},
		Params: []ParamInfo{
			{Name: "threshold", Default: recognizer.DefaultThreshold, Description: "Порог чувствительности"},
		},
	}
}

func (r *CommentedCode) Check(ctx *Context) []diag.Diagnostic {
	info := r.Info()
	store := diag.NewStorage(info.Code, info.DiagSeverity(), ctx.Messages.Get(info.Code, "message"))
	snap := ctx.Snapshot

	var descriptions []*symbols.Description
	for _, m := range snap.Methods() {
		if m.Description != nil {
			descriptions = append(descriptions, m.Description)
		}
	}

	for _, group := range groupComments(snap.Tokens, snap.Comments) {
		first, last := group[0], group[len(group)-1]
		if inDescription(descriptions, first, last) {
			continue
		}
		for _, c := range group {
			if r.isCode(c.Text) {
				store.AddTokenRange(first, last)
				break
			}
		}
	}
	return store.Diagnostics()
}

// groupComments splits comments into runs on consecutive lines with nothing
// but whitespace between them in the stream.
func groupComments(stream, comments []token.Token) [][]token.Token {
	var groups [][]token.Token
	var current []token.Token
	for _, c := range comments {
		if current != nil && adjacent(stream, current[len(current)-1], c) {
			current = append(current, c)
			continue
		}
		if current != nil {
			groups = append(groups, current)
		}
		current = []token.Token{c}
	}
	if current != nil {
		groups = append(groups, current)
	}
	return groups
}

func adjacent(stream []token.Token, last, next token.Token) bool {
	if last.Pos.Line+1 != next.Pos.Line || last.Index > next.Index {
		return false
	}
	for i := last.Index + 1; i < next.Index && i < len(stream); i++ {
		if stream[i].Kind != token.WhiteSpace {
			return false
		}
	}
	return true
}

func inDescription(descriptions []*symbols.Description, first, last token.Token) bool {
	for _, d := range descriptions {
		if d.Contains(first, last) {
			return true
		}
	}
	return false
}

func (r *CommentedCode) isCode(text string) bool {
	if !r.recognizer.MeetsCondition(text) {
		return false
	}
	var kinds []token.Kind
	for _, t := range lexer.TokenizeText(uncomment(text)) {
		if t.Kind != token.WhiteSpace {
			kinds = append(kinds, t.Kind)
		}
	}
	// два идентификатора подряд - это текст, а не код
	if len(kinds) >= 2 {
		for i := 0; i+1 < len(kinds); i++ {
			if kinds[i] == token.Ident && kinds[i+1] == token.Ident {
				return false
			}
		}
	}
	return true
}

// uncomment strips every leading "//" marker: "//// А = 1;" becomes " А = 1;".
func uncomment(text string) string {
	for strings.HasPrefix(text, "//") {
		text = text[2:]
	}
	return text
}
