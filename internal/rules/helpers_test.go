package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"bslint/internal/diag"
	"bslint/internal/document"
	"bslint/internal/fix"
	"bslint/internal/project"
	"bslint/internal/source"
)

const testURI = "file:///module.bsl"

func newContext(src string) *Context {
	return &Context{
		Snapshot: document.Build(0, testURI, 1, src),
		Metadata: project.EmptyMetadata(),
		Messages: diag.Messages{Lang: diag.LangRU},
	}
}

func mustRule(t *testing.T, code diag.Code, params map[string]any) Rule {
	t.Helper()
	r, err := New(code, params)
	require.NoError(t, err)
	return r
}

func run(t *testing.T, code diag.Code, params map[string]any, src string) (*Context, []diag.Diagnostic) {
	t.Helper()
	ctx := newContext(src)
	return ctx, mustRule(t, code, params).Check(ctx)
}

func rng(l1, c1, l2, c2 uint32) source.Range {
	return source.Range{
		Start: source.Position{Line: l1, Character: c1},
		End:   source.Position{Line: l2, Character: c2},
	}
}

func ranges(ds []diag.Diagnostic) []source.Range {
	out := make([]source.Range, len(ds))
	for i, d := range ds {
		out[i] = d.Range
	}
	return out
}

func applyFixes(t *testing.T, ctx *Context, actions []fix.CodeAction) string {
	t.Helper()
	res, err := fix.Apply(ctx.Snapshot.File, ctx.Snapshot.URI, actions)
	require.NoError(t, err)
	return string(res.Content)
}
