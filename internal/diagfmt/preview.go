package diagfmt

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"bslint/internal/fix"
	"bslint/internal/source"
)

// fixEditPreview holds the affected lines before and after one edit.
type fixEditPreview struct {
	line   uint32 // первая затронутая строка, с 1
	before []string
	after  []string
}

func buildFixEditPreview(file *source.File, edit fix.TextEdit) (fixEditPreview, error) {
	if file == nil {
		return fixEditPreview{}, fmt.Errorf("nil file")
	}
	startLine, endLine := edit.Range.Start.Line, max(edit.Range.End.Line, edit.Range.Start.Line)

	blockStart := file.OffsetAt(source.Position{Line: startLine})
	blockEnd := file.OffsetAt(source.Position{Line: endLine + 1})
	if int(endLine)+1 < file.LineCount() {
		blockEnd-- // без перевода строки
	}
	start, end := file.OffsetAt(edit.Range.Start), file.OffsetAt(edit.Range.End)
	if start < blockStart || end < start || end > blockEnd {
		return fixEditPreview{}, fmt.Errorf("edit %v out of range for preview block", edit.Range)
	}

	original := file.Content[blockStart:blockEnd]
	after := make([]byte, 0, len(original)+len(edit.NewText))
	after = append(after, file.Content[blockStart:start]...)
	after = append(after, edit.NewText...)
	after = append(after, file.Content[end:blockEnd]...)

	return fixEditPreview{
		line:   startLine + 1,
		before: splitPreviewLines(original),
		after:  splitPreviewLines(after),
	}, nil
}

func splitPreviewLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimRight(string(content), "\n"), "\n")
}

// FixPreview prints every edit of actions as removed and added lines.
func FixPreview(w io.Writer, path string, file *source.File, actions []fix.CodeAction, uri string) error {
	for _, a := range actions {
		edits := slices.Clone(a.Edits[uri])
		slices.SortFunc(edits, func(x, y fix.TextEdit) int {
			if x.Range.Start.Less(y.Range.Start) {
				return -1
			}
			if y.Range.Start.Less(x.Range.Start) {
				return 1
			}
			return 0
		})
		if _, err := fmt.Fprintf(w, "%s: %s\n", path, a.Title); err != nil {
			return err
		}
		for _, e := range edits {
			p, err := buildFixEditPreview(file, e)
			if err != nil {
				return err
			}
			var b strings.Builder
			fmt.Fprintf(&b, "@@ line %d\n", p.line)
			for _, l := range p.before {
				b.WriteString("- " + l + "\n")
			}
			for _, l := range p.after {
				b.WriteString("+ " + l + "\n")
			}
			if _, err := io.WriteString(w, b.String()); err != nil {
				return err
			}
		}
	}
	return nil
}
