package diagfmt

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"bslint/internal/diag"
	"bslint/internal/source"
)

// LocationJSON представляет местоположение в файле: строки и колонки с 1,
// колонки в единицах UTF-16, как у редакторов.
type LocationJSON struct {
	File      string `json:"file" yaml:"file"`
	StartLine uint32 `json:"start_line" yaml:"start_line"`
	StartCol  uint32 `json:"start_col" yaml:"start_col"`
	EndLine   uint32 `json:"end_line" yaml:"end_line"`
	EndCol    uint32 `json:"end_col" yaml:"end_col"`
}

// NoteJSON представляет дополнительную заметку
type NoteJSON struct {
	Message  string       `json:"message" yaml:"message"`
	Location LocationJSON `json:"location" yaml:"location"`
}

// DiagnosticJSON представляет диагностику в JSON/YAML формате
type DiagnosticJSON struct {
	Severity string       `json:"severity" yaml:"severity"`
	Code     string       `json:"code" yaml:"code"`
	Message  string       `json:"message" yaml:"message"`
	Location LocationJSON `json:"location" yaml:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// FileErrorJSON describes a file that could not be analyzed.
type FileErrorJSON struct {
	File  string `json:"file" yaml:"file"`
	Error string `json:"error" yaml:"error"`
}

// DiagnosticsOutput представляет корневую структуру вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics" yaml:"diagnostics"`
	Errors      []FileErrorJSON  `json:"errors,omitempty" yaml:"errors,omitempty"`
	Count       int              `json:"count" yaml:"count"`
}

func makeLocation(path string, rng source.Range) LocationJSON {
	return LocationJSON{
		File:      path,
		StartLine: rng.Start.Line + 1,
		StartCol:  rng.Start.Character + 1,
		EndLine:   rng.End.Line + 1,
		EndCol:    rng.End.Character + 1,
	}
}

// BuildDiagnosticsOutput формирует структуру вывода без сериализации.
func BuildDiagnosticsOutput(files []FileDiagnostics, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Diagnostics: []DiagnosticJSON{}}
	for _, fd := range files {
		path := formatPath(fd.Path, opts.PathMode, opts.BaseDir)
		if fd.Err != nil {
			out.Errors = append(out.Errors, FileErrorJSON{File: path, Error: fd.Err.Error()})
			continue
		}
		for _, d := range fd.Diagnostics {
			out.Count++
			if opts.Max > 0 && len(out.Diagnostics) >= opts.Max {
				continue
			}
			out.Diagnostics = append(out.Diagnostics, toJSON(path, d, opts.IncludeNotes))
		}
	}
	return out
}

func toJSON(path string, d diag.Diagnostic, notes bool) DiagnosticJSON {
	dj := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		Location: makeLocation(path, d.Range),
	}
	if notes {
		for _, n := range d.Related {
			dj.Notes = append(dj.Notes, NoteJSON{Message: n.Msg, Location: makeLocation(path, n.Range)})
		}
	}
	return dj
}

// JSON writes the diagnostics as an indented JSON document.
func JSON(w io.Writer, files []FileDiagnostics, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(files, opts))
}

// YAML writes the same document as JSON in YAML form.
func YAML(w io.Writer, files []FileDiagnostics, opts JSONOpts) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(BuildDiagnosticsOutput(files, opts)); err != nil {
		return err
	}
	return enc.Close()
}
