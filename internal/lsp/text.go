package lsp

import (
	"unicode/utf8"

	"fortio.org/safecast"

	"bslint/internal/source"
)

// applyChanges применяет изменения по порядку. Изменение без диапазона
// заменяет весь текст (полная синхронизация).
func applyChanges(text string, changes []textDocumentContentChangeEvent) string {
	for _, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}
		start := offsetForPosition(text, change.Range.Start)
		end := max(offsetForPosition(text, change.Range.End), start)
		text = text[:start] + change.Text + text[end:]
	}
	return text
}

// offsetForPosition переводит позицию LSP (колонка в UTF-16) в байтовое
// смещение. Позиции за концом строки прижимаются к её концу.
func offsetForPosition(text string, pos position) int {
	if pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	i := 0
	for line := 0; line < pos.Line; i++ {
		if i >= len(text) {
			return len(text)
		}
		if text[i] == '\n' {
			line++
		}
	}
	units := 0
	for i < len(text) && text[i] != '\n' {
		r, size := utf8.DecodeRuneInString(text[i:])
		need := 1
		if r > 0xFFFF {
			need = 2
		}
		if units+need > pos.Character {
			break
		}
		units += need
		i += size
	}
	return i
}

func toPosition(p source.Position) position {
	return position{Line: int(p.Line), Character: int(p.Character)}
}

func toRange(r source.Range) lspRange {
	return lspRange{Start: toPosition(r.Start), End: toPosition(r.End)}
}

func fromPosition(p position) source.Position {
	line, err := safecast.Conv[uint32](p.Line)
	if err != nil {
		line = 0
	}
	char, err := safecast.Conv[uint32](p.Character)
	if err != nil {
		char = 0
	}
	return source.Position{Line: line, Character: char}
}

func fromRange(r lspRange) source.Range {
	return source.Range{Start: fromPosition(r.Start), End: fromPosition(r.End)}
}
