package diagfmt

import (
	"fmt"
	"io"

	"bslint/internal/diag"
)

// Short prints one line per diagnostic, handy for grep and editors'
// quickfix lists.
func Short(w io.Writer, files []FileDiagnostics, mode PathMode, baseDir string) error {
	for _, fd := range files {
		path := formatPath(fd.Path, mode, baseDir)
		if fd.Err != nil {
			if _, err := fmt.Fprintf(w, "ERROR %s: %v\n", path, fd.Err); err != nil {
				return err
			}
			continue
		}
		text := diag.FormatShort(path, fd.Diagnostics)
		if text == "" {
			continue
		}
		if _, err := io.WriteString(w, text+"\n"); err != nil {
			return err
		}
	}
	return nil
}
