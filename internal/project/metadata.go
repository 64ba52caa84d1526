package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// CompatibilityMode: режим совместимости платформы, например 8.3.14.
type CompatibilityMode struct {
	Major   int
	Minor   int
	Version int
}

// ParseCompatibilityMode accepts "8.3.14" and the metadata spelling "Version8_3_14".
// "DontUse" yields the zero mode, which is compatible with everything.
func ParseCompatibilityMode(s string) (CompatibilityMode, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "DontUse") {
		return CompatibilityMode{}, nil
	}
	s = strings.TrimPrefix(s, "Version")
	s = strings.ReplaceAll(s, "_", ".")
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return CompatibilityMode{}, fmt.Errorf("malformed compatibility mode %q", s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return CompatibilityMode{}, fmt.Errorf("malformed compatibility mode %q", s)
		}
		nums[i] = n
	}
	return CompatibilityMode{Major: nums[0], Minor: nums[1], Version: nums[2]}, nil
}

func (m CompatibilityMode) IsZero() bool {
	return m == CompatibilityMode{}
}

// Compare orders modes by major, minor, version.
func (m CompatibilityMode) Compare(o CompatibilityMode) int {
	switch {
	case m.Major != o.Major:
		return cmpInt(m.Major, o.Major)
	case m.Minor != o.Minor:
		return cmpInt(m.Minor, o.Minor)
	default:
		return cmpInt(m.Version, o.Version)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (m CompatibilityMode) String() string {
	if m.IsZero() {
		return "DontUse"
	}
	return fmt.Sprintf("%d.%d.%d", m.Major, m.Minor, m.Version)
}

// Metadata is what the analyser knows about the configuration a document
// belongs to. The zero root means "no configuration".
type Metadata struct {
	Root              string
	ConfigPath        string
	Name              string
	Language          string
	CompatibilityMode CompatibilityMode
	Modules           []string
	Fingerprint       Digest
}

// EmptyMetadata describes a document outside any configuration.
func EmptyMetadata() Metadata {
	return Metadata{Language: "ru"}
}

func (m Metadata) IsEmpty() bool {
	return m.Root == ""
}

// Supports reports whether the configuration runs in a mode not older than required.
// Unknown modes support everything.
func (m Metadata) Supports(required CompatibilityMode) bool {
	if m.CompatibilityMode.IsZero() || required.IsZero() {
		return true
	}
	return m.CompatibilityMode.Compare(required) >= 0
}

// LoadMetadata reads the configuration rooted at root: the config file when
// present and the list of source modules.
func LoadMetadata(root string) (Metadata, error) {
	if root == "" {
		return EmptyMetadata(), nil
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return EmptyMetadata(), fmt.Errorf("failed to resolve configuration root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return EmptyMetadata(), fmt.Errorf("configuration root: %w", err)
	}
	if !info.IsDir() {
		return EmptyMetadata(), fmt.Errorf("configuration root %s is not a directory", abs)
	}

	md := EmptyMetadata()
	md.Root = abs
	md.Name = filepath.Base(abs)

	cfgPath, found, err := configIn(abs)
	if err != nil {
		return EmptyMetadata(), err
	}
	sources, exclude := defaultSources, []string(nil)
	var cfgDigest Digest
	if found {
		cfg, err := LoadConfig(cfgPath)
		if err != nil {
			return EmptyMetadata(), err
		}
		data, err := os.ReadFile(cfgPath)
		if err != nil {
			return EmptyMetadata(), fmt.Errorf("%s: %w", cfgPath, err)
		}
		cfgDigest = Sum(data)
		md.ConfigPath = cfgPath
		if cfg.Configuration.Name != "" {
			md.Name = cfg.Configuration.Name
		}
		if cfg.Configuration.Language != "" {
			md.Language = strings.ToLower(cfg.Configuration.Language)
		}
		// ошибка уже отсеяна в LoadConfig
		md.CompatibilityMode, _ = ParseCompatibilityMode(cfg.Configuration.CompatibilityMode)
		sources, exclude = cfg.Configuration.Sources, cfg.Configuration.Exclude
	}

	modules, err := Discover(abs, sources, exclude)
	if err != nil {
		return EmptyMetadata(), err
	}
	md.Modules = modules
	md.Fingerprint = Combine(cfgDigest, Sum([]byte(strings.Join(modules, "\n"))))
	return md, nil
}
