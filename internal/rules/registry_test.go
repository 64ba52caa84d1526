package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bslint/internal/diag"
)

func TestRegistryCoversEveryCode(t *testing.T) {
	assert.Equal(t, diag.Codes(), Codes())
	for _, code := range Codes() {
		info, err := Describe(code)
		require.NoError(t, err)
		assert.Equal(t, code, info.Code)

		r, err := New(code, nil)
		require.NoError(t, err, code.ID())
		assert.Equal(t, info.Kind, r.Kind())
	}

	_, err := New(diag.UnknownCode, nil)
	assert.Error(t, err)
	_, err = Describe(diag.UnknownCode)
	assert.Error(t, err)
}

func TestRuleKinds(t *testing.T) {
	kinds := map[diag.Code]Kind{}
	for _, r := range Defaults() {
		kinds[r.Info().Code] = r.Kind()
	}
	assert.Equal(t, map[diag.Code]Kind{
		diag.CodeParseError:        KindNodePattern,
		diag.CodeCommentedCode:     KindTokenScan,
		diag.CodeMissingSpace:      KindTokenScan,
		diag.CodeUsingHardcodePath: KindTreeVisit,
		diag.CodeUsingThisForm:     KindTreeVisit,
		diag.CodeUsingServiceTag:   KindTokenScan,
	}, kinds)
}

func TestDiagSeverityMapping(t *testing.T) {
	cases := []struct {
		info Info
		want diag.Severity
	}{
		{Info{Type: TypeError, Severity: SeverityInfo}, diag.SevError},
		{Info{Type: TypeVulnerability}, diag.SevWarning},
		{Info{Type: TypeSecurityHotspot}, diag.SevWarning},
		{Info{Type: TypeCodeSmell, Severity: SeverityInfo}, diag.SevHint},
		{Info{Type: TypeCodeSmell, Severity: SeverityMinor}, diag.SevInfo},
		{Info{Type: TypeCodeSmell, Severity: SeverityMajor}, diag.SevInfo},
		{Info{Type: TypeCodeSmell, Severity: SeverityCritical}, diag.SevWarning},
		{Info{Type: TypeCodeSmell, Severity: SeverityBlocker}, diag.SevWarning},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.info.DiagSeverity(), "%s/%s", tc.info.Type, tc.info.Severity)
	}
}

func TestParams(t *testing.T) {
	p := Params{"a": 1}.Merge(map[string]any{"b": "x"})
	assert.Equal(t, Params{"a": 1, "b": "x"}, p)

	for _, v := range []any{int64(2), 2, 2.0, float32(2), uint64(2), "2"} {
		f, err := Params{"n": v}.Float("n", 0)
		require.NoError(t, err, "%T", v)
		assert.InDelta(t, 2.0, f, 1e-9)
	}
	f, err := Params{"n": []int{1}}.Float("n", 0.5)
	assert.Error(t, err)
	assert.InDelta(t, 0.5, f, 1e-9)

	b, err := Params{"b": "true"}.Bool("b", false)
	require.NoError(t, err)
	assert.True(t, b)
	b, err = Params{}.Bool("b", true)
	require.NoError(t, err)
	assert.True(t, b)

	s, err := Params{"s": 3}.String("s", "def")
	assert.Error(t, err)
	assert.Equal(t, "def", s)
}
