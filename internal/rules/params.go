package rules

import (
	"fmt"
	"maps"
	"strconv"
)

// Params is a rule configuration: parameter name to value. Values come from
// TOML, YAML or JSON, so numbers may arrive as int64, float64 or strings.
type Params map[string]any

// Merge returns p overlaid with overrides. Neither map is modified.
func (p Params) Merge(overrides map[string]any) Params {
	out := make(Params, len(p)+len(overrides))
	maps.Copy(out, p)
	maps.Copy(out, overrides)
	return out
}

// String returns the named parameter or def when it is absent.
func (p Params) String(name, def string) (string, error) {
	v, ok := p[name]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return def, fmt.Errorf("parameter %s: expected string, got %T", name, v)
	}
	return s, nil
}

// Bool returns the named parameter or def when it is absent.
func (p Params) Bool(name string, def bool) (bool, error) {
	v, ok := p[name]
	if !ok || v == nil {
		return def, nil
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(b)
		if err != nil {
			return def, fmt.Errorf("parameter %s: %w", name, err)
		}
		return parsed, nil
	}
	return def, fmt.Errorf("parameter %s: expected bool, got %T", name, v)
}

// Float returns the named parameter or def when it is absent.
func (p Params) Float(name string, def float64) (float64, error) {
	v, ok := p[name]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return def, fmt.Errorf("parameter %s: %w", name, err)
		}
		return parsed, nil
	}
	return def, fmt.Errorf("parameter %s: expected number, got %T", name, v)
}
