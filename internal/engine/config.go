package engine

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"github.com/vmihailenco/msgpack/v5"

	"bslint/internal/diag"
	"bslint/internal/project"
)

// Config selects and parameterizes rules.
type Config struct {
	// Enabled, when not empty, restricts analysis to the listed rules.
	Enabled  []string
	Disabled []string
	// Params maps a rule id to overrides of its parameters.
	Params   map[string]map[string]any
	Language diag.Language
}

// DefaultConfig enables every rule with Russian messages.
func DefaultConfig() Config {
	return Config{Language: diag.LangRU}
}

// ConfigFrom extracts the rule settings of a project configuration.
func ConfigFrom(cfg project.Config) Config {
	lang := cfg.Diagnostics.Language
	if lang == "" {
		lang = cfg.Configuration.Language
	}
	return Config{
		Enabled:  slices.Clone(cfg.Diagnostics.Enabled),
		Disabled: slices.Clone(cfg.Diagnostics.Disabled),
		Params:   cfg.Diagnostics.Parameters,
		Language: diag.ParseLanguage(lang),
	}
}

func (c Config) enabled(id string) bool {
	if slices.Contains(c.Disabled, id) {
		return false
	}
	return len(c.Enabled) == 0 || slices.Contains(c.Enabled, id)
}

// validate reports rule ids that do not name a known rule.
func (c Config) validate() error {
	var errs []error
	check := func(where, id string) {
		if _, ok := diag.LookupCode(id); !ok {
			errs = append(errs, fmt.Errorf("%s: unknown rule %q", where, id))
		}
	}
	for _, id := range c.Enabled {
		check("enabled", id)
	}
	for _, id := range c.Disabled {
		check("disabled", id)
	}
	for id := range c.Params {
		check("parameters", id)
	}
	return errors.Join(errs...)
}

// Digest identifies the settings for persistent caches. Map keys are
// encoded in sorted order so equal configs hash equally.
func (c Config) Digest() (project.Digest, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(c); err != nil {
		return project.Digest{}, fmt.Errorf("config digest: %w", err)
	}
	return project.Sum(buf.Bytes()), nil
}
