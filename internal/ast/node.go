package ast

import (
	"bslint/internal/token"
)

// Kind is the syntactic category of a Node.
type Kind uint8

const (
	KindFile Kind = iota
	KindModuleVars
	KindVarDecl
	KindSub
	KindSubDecl
	KindAnnotation
	KindParamList
	KindParam
	KindCodeBlock

	KindAssignment
	KindCallStatement
	KindIf
	KindWhile
	KindFor
	KindForEach
	KindTry
	KindReturn
	KindRaise
	KindBreak
	KindContinue
	KindGoto
	KindLabel
	KindHandler
	KindAwait

	KindExpression
	KindCallArgs
	KindNew
	KindTernary
	KindString
	KindError
)

var kindNames = [...]string{
	KindFile:          "File",
	KindModuleVars:    "ModuleVars",
	KindVarDecl:       "VarDecl",
	KindSub:           "Sub",
	KindSubDecl:       "SubDecl",
	KindAnnotation:    "Annotation",
	KindParamList:     "ParamList",
	KindParam:         "Param",
	KindCodeBlock:     "CodeBlock",
	KindAssignment:    "Assignment",
	KindCallStatement: "CallStatement",
	KindIf:            "If",
	KindWhile:         "While",
	KindFor:           "For",
	KindForEach:       "ForEach",
	KindTry:           "Try",
	KindReturn:        "Return",
	KindRaise:         "Raise",
	KindBreak:         "Break",
	KindContinue:      "Continue",
	KindGoto:          "Goto",
	KindLabel:         "Label",
	KindHandler:       "Handler",
	KindAwait:         "Await",
	KindExpression:    "Expression",
	KindCallArgs:      "CallArgs",
	KindNew:           "New",
	KindTernary:       "Ternary",
	KindString:        "String",
	KindError:         "Error",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsStatement reports whether nodes of this kind are statements of a code block.
func (k Kind) IsStatement() bool {
	return k >= KindAssignment && k <= KindAwait || k == KindVarDecl
}

// NoToken marks an error node synthesized for a missing token.
const NoToken = -1

// Node is a parse tree node. Nodes address the token stream by index:
// Start..End are inclusive stream indices of the first and last significant
// token. A node without tokens has End < Start.
type Node struct {
	Kind     Kind
	Start    int
	End      int
	Parent   *Node
	Children []*Node

	// Sub and SubDecl
	IsFunction bool
	Export     bool
	Name       string
	NameIndex  int

	// Error nodes: TokenIndex is NoToken when the token was synthesized by
	// recovery, Text describes it.
	TokenIndex int
	Text       string
	Expected   token.Kind
}

// Empty reports whether the node covers no tokens.
func (n *Node) Empty() bool {
	return n.End < n.Start
}

// IsMissing reports whether n is an error node for a token the parser expected
// but did not find.
func (n *Node) IsMissing() bool {
	return n.Kind == KindError && n.TokenIndex == NoToken
}

// Append attaches child to n and widens n to cover it.
func (n *Node) Append(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
	if child.Empty() {
		return
	}
	if n.Empty() {
		n.Start, n.End = child.Start, child.End
		return
	}
	n.Start = min(n.Start, child.Start)
	n.End = max(n.End, child.End)
}

// Cover widens n to include the token at idx.
func (n *Node) Cover(idx int) {
	if n.Empty() {
		n.Start, n.End = idx, idx
		return
	}
	n.Start = min(n.Start, idx)
	n.End = max(n.End, idx)
}

// First returns the first child of the given kind, or nil.
func (n *Node) First(kind Kind) *Node {
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// All returns the direct children of the given kind.
func (n *Node) All(kind Kind) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Ancestor returns the nearest ancestor accepted by pred, or nil.
func (n *Node) Ancestor(pred func(*Node) bool) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if pred(p) {
			return p
		}
	}
	return nil
}

// NewNode creates an empty node of the given kind.
func NewNode(kind Kind) *Node {
	return &Node{Kind: kind, Start: 0, End: -1, TokenIndex: NoToken}
}
