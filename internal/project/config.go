package project

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config is the parsed content of bslint.toml or .bslint.yaml.
type Config struct {
	Path string `toml:"-" yaml:"-"`
	Root string `toml:"-" yaml:"-"`

	Configuration ConfigurationSection `toml:"configuration" yaml:"configuration"`
	Diagnostics   DiagnosticsSection   `toml:"diagnostics" yaml:"diagnostics"`
}

// ConfigurationSection describes the analysed 1C configuration.
type ConfigurationSection struct {
	Name              string   `toml:"name" yaml:"name"`
	Language          string   `toml:"language" yaml:"language"`
	CompatibilityMode string   `toml:"compatibility_mode" yaml:"compatibility_mode"`
	Sources           []string `toml:"sources" yaml:"sources"`
	Exclude           []string `toml:"exclude" yaml:"exclude"`
}

// DiagnosticsSection: язык сообщений, включение правил и их параметры.
type DiagnosticsSection struct {
	Language   string                    `toml:"language" yaml:"language"`
	Enabled    []string                  `toml:"enabled" yaml:"enabled"`
	Disabled   []string                  `toml:"disabled" yaml:"disabled"`
	Parameters map[string]map[string]any `toml:"parameters" yaml:"parameters"`
}

var defaultSources = []string{"**/*.bsl", "**/*.os"}

// DefaultConfig returns the configuration written by `bslint init`.
func DefaultConfig(name string) Config {
	return Config{
		Configuration: ConfigurationSection{
			Name:     name,
			Language: "ru",
			Sources:  slices.Clone(defaultSources),
			Exclude:  []string{"**/.git/**"},
		},
		Diagnostics: DiagnosticsSection{
			Language:   "ru",
			Parameters: map[string]map[string]any{},
		},
	}
}

// LoadConfig reads a configuration file, picking the decoder by extension.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read config: %w", path, err)
	}
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := decodeYAML(data, &cfg); err != nil {
			return nil, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
	default:
		meta, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
		if meta.IsDefined("configuration", "sources") && len(cfg.Configuration.Sources) == 0 {
			return nil, fmt.Errorf("%s: [configuration].sources must not be empty", path)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	cfg.Root = filepath.Dir(path)
	cfg.fillDefaults()
	return &cfg, nil
}

// LoadConfigFrom finds and loads the nearest configuration above startDir.
// ErrNoConfig is returned when none exists.
func LoadConfigFrom(startDir string) (*Config, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoConfig
	}
	return LoadConfig(path)
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		// пустой файл тоже валиден
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Diagnostics.Language) {
	case "", "ru", "en":
	default:
		return fmt.Errorf("[diagnostics].language: unsupported language %q", c.Diagnostics.Language)
	}
	if mode := c.Configuration.CompatibilityMode; mode != "" {
		if _, err := ParseCompatibilityMode(mode); err != nil {
			return fmt.Errorf("[configuration].compatibility_mode: %w", err)
		}
	}
	for _, id := range c.Diagnostics.Enabled {
		if slices.Contains(c.Diagnostics.Disabled, id) {
			return fmt.Errorf("[diagnostics]: rule %s is both enabled and disabled", id)
		}
	}
	return nil
}

func (c *Config) fillDefaults() {
	if len(c.Configuration.Sources) == 0 {
		c.Configuration.Sources = slices.Clone(defaultSources)
	}
	if c.Diagnostics.Language == "" {
		c.Diagnostics.Language = "ru"
	}
	c.Diagnostics.Language = strings.ToLower(c.Diagnostics.Language)
	if c.Diagnostics.Parameters == nil {
		c.Diagnostics.Parameters = map[string]map[string]any{}
	}
}

// WriteConfig encodes cfg as TOML into dir/bslint.toml. Existing files are
// left untouched.
func WriteConfig(dir string, cfg Config) (string, error) {
	path := filepath.Join(dir, ConfigNames[0])
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("%s already exists", path)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
