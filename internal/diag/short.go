package diag

import (
	"fmt"
	"strings"
)

// FormatShort renders diagnostics one per line as
// "SEVERITY Code path:line:col message" with 1-based line and column.
// Output is sorted the same way as Bag.Sort.
func FormatShort(path string, diags []Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}
	sorted := make([]Diagnostic, len(diags))
	copy(sorted, diags)
	Sort(sorted)

	var b strings.Builder
	for i, d := range sorted {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code.ID(), path,
			d.Range.Start.Line+1, d.Range.Start.Character+1, sanitizeMessage(d.Message))
		if i < len(sorted)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", " ")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
