package rules

import (
	"fmt"
	"slices"

	"bslint/internal/diag"
)

// Factory builds a rule from fully merged parameters. A non-nil error
// describes parameters that were rejected; the returned rule is still usable
// and falls back to defaults for them.
type Factory func(params Params) (Rule, error)

var factories = map[diag.Code]Factory{
	diag.CodeParseError:        NewParseError,
	diag.CodeCommentedCode:     NewCommentedCode,
	diag.CodeMissingSpace:      NewMissingSpace,
	diag.CodeUsingHardcodePath: NewUsingHardcodePath,
	diag.CodeUsingThisForm:     NewUsingThisForm,
	diag.CodeUsingServiceTag:   NewUsingServiceTag,
}

// Codes lists every registered rule in code order.
func Codes() []diag.Code {
	out := make([]diag.Code, 0, len(factories))
	for c := range factories {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// New constructs a rule with params merged over its defaults.
func New(code diag.Code, overrides map[string]any) (Rule, error) {
	factory, ok := factories[code]
	if !ok {
		return nil, fmt.Errorf("unknown rule %s", code.ID())
	}
	info, err := Describe(code)
	if err != nil {
		return nil, err
	}
	return factory(info.Defaults().Merge(overrides))
}

// Describe returns the static description of a rule.
func Describe(code diag.Code) (Info, error) {
	factory, ok := factories[code]
	if !ok {
		return Info{}, fmt.Errorf("unknown rule %s", code.ID())
	}
	r, _ := factory(nil)
	return r.Info(), nil
}

// Defaults constructs every registered rule with default parameters.
func Defaults() []Rule {
	codes := Codes()
	out := make([]Rule, 0, len(codes))
	for _, c := range codes {
		r, _ := factories[c](nil)
		out = append(out, r)
	}
	return out
}
