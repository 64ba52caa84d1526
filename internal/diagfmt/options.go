package diagfmt

import (
	"bslint/internal/diag"
	"bslint/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode accepts auto, absolute, relative and basename.
func ParsePathMode(s string) (PathMode, bool) {
	switch s {
	case "", "auto":
		return PathModeAuto, true
	case "absolute":
		return PathModeAbsolute, true
	case "relative":
		return PathModeRelative, true
	case "basename":
		return PathModeBasename, true
	}
	return PathModeAuto, false
}

// FileDiagnostics is the rendered unit: one file and its findings.
type FileDiagnostics struct {
	Path        string
	File        *source.File // nil when the file could not be read
	Diagnostics []diag.Diagnostic
	Err         error
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Context   int // строк контекста перед строкой диагностики
	PathMode  PathMode
	BaseDir   string
	ShowNotes bool
}

// JSONOpts configures JSON and YAML output of diagnostics.
type JSONOpts struct {
	PathMode     PathMode
	BaseDir      string
	Max          int // обрезка вывода, 0 - без ограничений
	IncludeNotes bool
}

func formatPath(path string, mode PathMode, baseDir string) string {
	f := source.File{Path: path}
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", baseDir)
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		if baseDir != "" {
			return f.FormatPath("relative", baseDir)
		}
		return f.FormatPath("auto", "")
	}
}
