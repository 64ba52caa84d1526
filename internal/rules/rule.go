package rules

import (
	"bslint/internal/diag"
	"bslint/internal/document"
	"bslint/internal/fix"
	"bslint/internal/project"
)

// Kind is the closed set of rule variants.
type Kind uint8

const (
	KindTokenScan Kind = iota
	KindTreeVisit
	KindNodePattern
)

func (k Kind) String() string {
	switch k {
	case KindTokenScan:
		return "token-scan"
	case KindTreeVisit:
		return "tree-visit"
	case KindNodePattern:
		return "node-pattern"
	}
	return "unknown"
}

// варианты встраиваются в правила; неэкспортируемый метод закрывает множество
type tokenScan struct{}

func (tokenScan) Kind() Kind { return KindTokenScan }
func (tokenScan) variant()   {}

type treeVisit struct{}

func (treeVisit) Kind() Kind { return KindTreeVisit }
func (treeVisit) variant()   {}

type nodePattern struct{}

func (nodePattern) Kind() Kind { return KindNodePattern }
func (nodePattern) variant()   {}

// Context is everything a rule may look at while checking one document.
type Context struct {
	Snapshot *document.Snapshot
	Metadata project.Metadata
	Messages diag.Messages
}

// Rule checks one document. Implementations live in this package only.
type Rule interface {
	Kind() Kind
	Info() Info
	Check(ctx *Context) []diag.Diagnostic
	variant()
}

// QuickFixer is implemented by rules that can propose edits for their own
// diagnostics.
type QuickFixer interface {
	QuickFixes(ctx *Context, diagnostics []diag.Diagnostic) []fix.CodeAction
}
