package engine

import (
	"bslint/internal/diag"
	"bslint/internal/document"
	"bslint/internal/fix"
	"bslint/internal/rules"
	"bslint/internal/source"
)

// QuickFixes collects the actions of fixable rules for the diagnostics that
// intersect rng.
func (e *Engine) QuickFixes(snap *document.Snapshot, rng source.Range, diagnostics []diag.Diagnostic) []fix.CodeAction {
	set := e.current()
	rctx := &rules.Context{Snapshot: snap, Metadata: e.registry.Configuration(), Messages: set.msgs}

	byCode := make(map[diag.Code][]diag.Diagnostic)
	for _, d := range diagnostics {
		if d.Range.Intersects(rng) {
			byCode[d.Code] = append(byCode[d.Code], d)
		}
	}
	var actions []fix.CodeAction
	for _, r := range set.rules {
		fixer, ok := r.(rules.QuickFixer)
		if !ok {
			continue
		}
		ds := byCode[r.Info().Code]
		if len(ds) == 0 {
			continue
		}
		actions = append(actions, fixer.QuickFixes(rctx, ds)...)
	}
	return actions
}

// WholeDocument is a range covering any position of a document.
var WholeDocument = source.Range{
	End: source.Position{Line: ^uint32(0), Character: ^uint32(0)},
}
