package rules

import (
	"bslint/internal/diag"
	"bslint/internal/project"
)

// Type classifies what a rule finds.
type Type uint8

const (
	TypeError Type = iota
	TypeCodeSmell
	TypeVulnerability
	TypeSecurityHotspot
)

func (t Type) String() string {
	switch t {
	case TypeError:
		return "ERROR"
	case TypeCodeSmell:
		return "CODE_SMELL"
	case TypeVulnerability:
		return "VULNERABILITY"
	case TypeSecurityHotspot:
		return "SECURITY_HOTSPOT"
	}
	return "UNKNOWN"
}

// Severity is the rule's own importance scale.
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeverityMinor
	SeverityMajor
	SeverityCritical
	SeverityBlocker
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityMinor:
		return "MINOR"
	case SeverityMajor:
		return "MAJOR"
	case SeverityCritical:
		return "CRITICAL"
	case SeverityBlocker:
		return "BLOCKER"
	}
	return "UNKNOWN"
}

// Scope limits the languages a rule applies to.
type Scope uint8

const (
	ScopeAll Scope = iota
	ScopeBSL
	ScopeOS
)

func (s Scope) String() string {
	switch s {
	case ScopeBSL:
		return "BSL"
	case ScopeOS:
		return "OS"
	}
	return "ALL"
}

// Tag groups rules by topic.
type Tag string

const (
	TagStandard    Tag = "STANDARD"
	TagBadPractice Tag = "BADPRACTICE"
	TagDeprecated  Tag = "DEPRECATED"
	TagError       Tag = "ERROR"
)

// ParamInfo describes one configuration parameter and its default.
type ParamInfo struct {
	Name        string
	Default     any
	Description string
}

// Info is the static description of a rule.
type Info struct {
	Code          diag.Code
	Kind          Kind
	Type          Type
	Severity      Severity
	Scope         Scope
	Minutes       int
	Tags          []Tag
	Compatibility project.CompatibilityMode
	Params        []ParamInfo
}

// DiagSeverity maps the rule's type and severity to the reported severity.
func (i Info) DiagSeverity() diag.Severity {
	switch i.Type {
	case TypeError:
		return diag.SevError
	case TypeVulnerability, TypeSecurityHotspot:
		return diag.SevWarning
	}
	switch i.Severity {
	case SeverityInfo:
		return diag.SevHint
	case SeverityBlocker, SeverityCritical:
		return diag.SevWarning
	}
	return diag.SevInfo
}

// Defaults returns the default parameter values.
func (i Info) Defaults() Params {
	p := make(Params, len(i.Params))
	for _, pi := range i.Params {
		p[pi.Name] = pi.Default
	}
	return p
}

// AppliesTo reports whether the rule runs on a file with the given extension
// (".bsl" or ".os").
func (i Info) AppliesTo(ext string) bool {
	switch i.Scope {
	case ScopeBSL:
		return ext != ".os"
	case ScopeOS:
		return ext == ".os"
	}
	return true
}
