package diag

import "strings"

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevHint is for suggestions rendered as faded hints.
	SevHint Severity = iota
	// SevInfo is for informational diagnostics.
	SevInfo
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevHint:
		return "HINT"
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// LSP returns the DiagnosticSeverity number of the language server protocol.
func (s Severity) LSP() int {
	switch s {
	case SevError:
		return 1
	case SevWarning:
		return 2
	case SevInfo:
		return 3
	default:
		return 4
	}
}

// ParseSeverity accepts the names printed by String, case-insensitively.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HINT":
		return SevHint, true
	case "INFO", "INFORMATION":
		return SevInfo, true
	case "WARNING", "WARN":
		return SevWarning, true
	case "ERROR":
		return SevError, true
	}
	return SevInfo, false
}
