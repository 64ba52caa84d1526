package lsp

import (
	"context"
	"errors"
	"time"

	"bslint/internal/diag"
	"bslint/internal/document"
)

// scheduleDiagnostics публикует диагностики документа сразу или после паузы
// debounce; новая правка того же документа переносит таймер.
func (s *Server) scheduleDiagnostics(uri string) error {
	if s.debounce <= 0 {
		return s.publish(uri)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[uri]; ok {
		t.Stop()
	}
	s.timers[uri] = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		delete(s.timers, uri)
		s.mu.Unlock()
		if err := s.publish(uri); err != nil {
			s.log.WithError(err).WithField("uri", uri).Warn("publish failed")
		}
	})
	return nil
}

// publish analyzes the current snapshot of uri and sends the result. A
// document closed in the meantime is skipped.
func (s *Server) publish(uri string) error {
	doc, ok := s.registry.Get(uri)
	if !ok {
		return nil
	}
	snap := doc.Snapshot()
	diags, err := s.engine.Analyze(s.baseCtx, snap)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	if _, isOpen := s.open[uri]; !isOpen {
		s.mu.Unlock()
		return nil
	}
	s.published[uri] = struct{}{}
	s.mu.Unlock()

	version := snap.Version
	return s.sendPublish(uri, &version, convertDiagnostics(uri, diags))
}

// republishAll reanalyzes every open document, e.g. after a settings change.
func (s *Server) republishAll() {
	for _, uri := range s.openURIs() {
		if err := s.publish(uri); err != nil {
			s.log.WithError(err).WithField("uri", uri).Warn("republish failed")
		}
	}
}

func (s *Server) sendPublish(uri string, version *int, list []lspDiagnostic) error {
	return s.sendNotification("textDocument/publishDiagnostics", publishDiagnosticsParams{
		URI:         uri,
		Version:     version,
		Diagnostics: list,
	})
}

func convertDiagnostics(uri string, diags []diag.Diagnostic) []lspDiagnostic {
	out := make([]lspDiagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, toLSPDiagnostic(uri, d))
	}
	return out
}

func toLSPDiagnostic(uri string, d diag.Diagnostic) lspDiagnostic {
	ld := lspDiagnostic{
		Range:    toRange(d.Range),
		Severity: d.Severity.LSP(),
		Code:     d.Code.ID(),
		Source:   "bslint",
		Message:  d.Message,
	}
	for _, n := range d.Related {
		ld.RelatedInformation = append(ld.RelatedInformation, relatedInformation{
			Location: location{URI: uri, Range: toRange(n.Range)},
			Message:  n.Msg,
		})
	}
	return ld
}

// fromLSPDiagnostic restores enough of a client diagnostic to match it
// against the engine's own results.
func fromLSPDiagnostic(ld lspDiagnostic) (diag.Diagnostic, bool) {
	if ld.Source != "" && ld.Source != "bslint" {
		return diag.Diagnostic{}, false
	}
	code, ok := diag.LookupCode(ld.Code)
	if !ok {
		return diag.Diagnostic{}, false
	}
	return diag.Diagnostic{Code: code, Range: fromRange(ld.Range), Message: ld.Message}, true
}

func snapshotOf(reg *document.Registry, uri string) (*document.Snapshot, bool) {
	doc, ok := reg.Get(uri)
	if !ok {
		return nil, false
	}
	return doc.Snapshot(), true
}
