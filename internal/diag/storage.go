package diag

import (
	"bslint/internal/ast"
	"bslint/internal/source"
	"bslint/internal/token"
)

// Storage accumulates the diagnostics of one rule run. It is bound to the
// rule's code, severity and default message; a rule creates a fresh Storage
// per Check call and returns Diagnostics().
type Storage struct {
	code  Code
	sev   Severity
	msg   string
	items []Diagnostic
}

func NewStorage(code Code, sev Severity, msg string) *Storage {
	return &Storage{code: code, sev: sev, msg: msg}
}

// AddOption adjusts a diagnostic before it is stored.
type AddOption func(*Diagnostic)

// WithMessage replaces the default message.
func WithMessage(msg string) AddOption {
	return func(d *Diagnostic) { d.Message = msg }
}

// WithRelated attaches related information.
func WithRelated(rng source.Range, msg string) AddOption {
	return func(d *Diagnostic) {
		d.Related = append(d.Related, Note{Range: rng, Msg: msg})
	}
}

// WithHint sets the structured fix hint.
func WithHint(h FixHint) AddOption {
	return func(d *Diagnostic) { d.Hint = h }
}

// AddRange stores a diagnostic with an explicit location.
func (s *Storage) AddRange(rng source.Range, span source.Span, opts ...AddOption) {
	d := Diagnostic{
		Severity: s.sev,
		Code:     s.code,
		Message:  s.msg,
		Range:    rng,
		Span:     span,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&d)
		}
	}
	s.items = append(s.items, d)
}

// AddToken flags a single token.
func (s *Storage) AddToken(t token.Token, opts ...AddOption) {
	s.AddRange(t.Range(), t.Span, opts...)
}

// AddTokenRange flags first.start .. last.end.
func (s *Storage) AddTokenRange(first, last token.Token, opts ...AddOption) {
	rng := source.Range{Start: first.Pos, End: last.End}
	s.AddRange(rng, first.Span.Cover(last.Span), opts...)
}

// AddNode flags the tokens covered by n. An empty node is reported as a
// zero-width range at the start token of its closest non-empty ancestor.
func (s *Storage) AddNode(tree *ast.Tree, n *ast.Node, opts ...AddOption) {
	rng := tree.Range(n)
	var span source.Span
	if first, ok := tree.StartToken(n); ok {
		span = first.Span
		if n.Empty() {
			span.End = span.Start
		} else if last, ok := tree.Token(n.End); ok {
			span = first.Span.Cover(last.Span)
		}
	}
	s.AddRange(rng, span, opts...)
}

func (s *Storage) Len() int {
	return len(s.items)
}

// Diagnostics returns a copy of the accumulated diagnostics in emission order.
func (s *Storage) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(s.items))
	copy(out, s.items)
	return out
}

// Clear drops everything accumulated so far. Calling it twice is harmless.
func (s *Storage) Clear() {
	s.items = s.items[:0]
}
