package lsp

import (
	"encoding/json"
	"slices"

	"bslint/internal/diag"
	"bslint/internal/fix"
)

func (s *Server) handleCodeAction(msg *rpcMessage) error {
	var params codeActionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	if len(params.Context.Only) > 0 && !slices.Contains(params.Context.Only, fix.KindQuickFix) {
		return s.sendResponse(msg.ID, []codeAction{})
	}
	uri := params.TextDocument.URI
	snap, ok := snapshotOf(s.registry, uri)
	if !ok {
		return s.sendResponse(msg.ID, []codeAction{})
	}
	// свои диагностики, а не клиентские: исправлениям нужны подсказки (Hint)
	diags, err := s.engine.Analyze(s.baseCtx, snap)
	if err != nil {
		return s.sendResponse(msg.ID, []codeAction{})
	}
	diags = restrictTo(diags, params.Context.Diagnostics)

	actions := s.engine.QuickFixes(snap, fromRange(params.Range), diags)
	out := make([]codeAction, 0, len(actions))
	for _, a := range actions {
		out = append(out, toCodeAction(uri, a))
	}
	return s.sendResponse(msg.ID, out)
}

// restrictTo keeps the diagnostics the client asked about. An empty request
// list keeps everything.
func restrictTo(diags []diag.Diagnostic, requested []lspDiagnostic) []diag.Diagnostic {
	if len(requested) == 0 {
		return diags
	}
	wanted := make([]diag.Diagnostic, 0, len(requested))
	for _, ld := range requested {
		if d, ok := fromLSPDiagnostic(ld); ok {
			wanted = append(wanted, d)
		}
	}
	return slices.DeleteFunc(slices.Clone(diags), func(d diag.Diagnostic) bool {
		return !slices.ContainsFunc(wanted, func(w diag.Diagnostic) bool {
			return w.Code == d.Code && w.Range == d.Range
		})
	})
}

func toCodeAction(uri string, a fix.CodeAction) codeAction {
	ca := codeAction{
		Title:       a.Title,
		Kind:        a.Kind,
		IsPreferred: a.IsPreferred,
		Edit:        &workspaceEdit{Changes: make(map[string][]textEdit, len(a.Edits))},
	}
	for _, d := range a.Diagnostics {
		ca.Diagnostics = append(ca.Diagnostics, toLSPDiagnostic(uri, d))
	}
	for target, edits := range a.Edits {
		converted := make([]textEdit, 0, len(edits))
		for _, e := range edits {
			converted = append(converted, textEdit{Range: toRange(e.Range), NewText: e.NewText})
		}
		ca.Edit.Changes[target] = converted
	}
	return ca
}
