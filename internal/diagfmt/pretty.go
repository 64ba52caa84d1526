package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"bslint/internal/diag"
	"bslint/internal/source"
)

type palette struct {
	path, gutter, note *color.Color
	sev                map[diag.Severity]*color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path:   color.New(color.Bold),
		gutter: color.New(color.FgHiBlack),
		note:   color.New(color.FgCyan),
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevInfo:    color.New(color.FgBlue, color.Bold),
			diag.SevHint:    color.New(color.FgCyan),
		},
	}
	all := []*color.Color{p.path, p.gutter, p.note}
	for _, c := range p.sev {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty форматирует диагностики в человекочитаемый вид. Для каждой:
//
//	<path>:<line>:<col>: <SEV> <Code>: <Message>
//
// затем строка исходника с подчёркиванием ^~~~ под диапазоном и, по
// опции, связанные заметки. Диагностики ожидаются отсортированными.
func Pretty(w io.Writer, files []FileDiagnostics, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for _, fd := range files {
		path := formatPath(fd.Path, opts.PathMode, opts.BaseDir)
		if fd.Err != nil {
			if _, err := fmt.Fprintf(w, "%s: %s %v\n", pal.path.Sprint(path), pal.sev[diag.SevError].Sprint("ERROR"), fd.Err); err != nil {
				return err
			}
			continue
		}
		for _, d := range fd.Diagnostics {
			var b strings.Builder
			fmt.Fprintf(&b, "%s:%d:%d: %s %s: %s\n",
				pal.path.Sprint(path), d.Range.Start.Line+1, d.Range.Start.Character+1,
				pal.sev[d.Severity].Sprint(strings.ToUpper(d.Severity.String())), d.Code.ID(), d.Message)
			if fd.File != nil {
				writeSnippet(&b, fd.File, d.Range, opts.Context, pal.gutter, pal.sev[d.Severity])
			}
			if opts.ShowNotes {
				for _, n := range d.Related {
					fmt.Fprintf(&b, "  %s %d:%d: %s\n", pal.note.Sprint("note:"), n.Range.Start.Line+1, n.Range.Start.Character+1, n.Msg)
				}
			}
			if _, err := io.WriteString(w, b.String()); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeSnippet(b *strings.Builder, f *source.File, rng source.Range, context int, gutter, mark *color.Color) {
	line := rng.Start.Line + 1
	width := len(fmt.Sprint(line))
	first := line
	for i := 0; i < context && first > 1; i++ {
		first--
	}
	for n := first; n <= line; n++ {
		fmt.Fprintf(b, "%s %s\n", gutter.Sprintf("%*d |", width, n), f.GetLine(n))
	}

	text := f.GetLine(line)
	lineStart := f.OffsetAt(source.Position{Line: rng.Start.Line})
	start := int(f.OffsetAt(rng.Start) - lineStart)
	end := len(text)
	if rng.End.Line == rng.Start.Line {
		end = int(f.OffsetAt(rng.End) - lineStart)
	}
	start = min(max(start, 0), len(text))
	end = min(max(end, start), len(text))

	// табы повторяем, остальное заменяем пробелами по ширине символа
	var pad strings.Builder
	for _, r := range text[:start] {
		if r == '\t' {
			pad.WriteRune('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	marks := max(runewidth.StringWidth(text[start:end]), 1)
	underline := "^" + strings.Repeat("~", marks-1)
	fmt.Fprintf(b, "%s %s%s\n", gutter.Sprintf("%*s |", width, ""), pad.String(), mark.Sprint(underline))
}
