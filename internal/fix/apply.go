package fix

import (
	"errors"
	"sort"

	"bslint/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// AppliedFix records a successfully applied code action.
type AppliedFix struct {
	Title     string
	EditCount int
}

// SkippedFix captures a skipped action with a reason.
type SkippedFix struct {
	Title  string
	Reason string
}

// ApplyResult is the outcome of Apply.
type ApplyResult struct {
	Content []byte
	Applied []AppliedFix
	Skipped []SkippedFix
}

type offsetEdit struct {
	start, end uint32
	text       string
}

// Apply applies the edits addressed to uri from every action to file's
// content. Actions are taken in order; an action whose edits overlap edits
// already accepted is skipped as a whole. The file itself is not modified.
func Apply(file *source.File, uri string, actions []CodeAction) (*ApplyResult, error) {
	res := &ApplyResult{}
	var accepted []offsetEdit

	for _, action := range actions {
		edits := action.Edits[uri]
		if len(edits) == 0 {
			continue
		}
		staged := make([]offsetEdit, 0, len(edits))
		reason := ""
		for _, e := range edits {
			oe := offsetEdit{
				start: file.OffsetAt(e.Range.Start),
				end:   file.OffsetAt(e.Range.End),
				text:  e.NewText,
			}
			if oe.end < oe.start {
				reason = "edit range is inverted"
				break
			}
			if containsEdit(accepted, oe) || containsEdit(staged, oe) {
				// тот же самый edit уже принят другим действием
				continue
			}
			if conflicts(accepted, oe) || conflicts(staged, oe) {
				reason = "conflicts with previously applied edits"
				break
			}
			staged = append(staged, oe)
		}
		if reason != "" {
			res.Skipped = append(res.Skipped, SkippedFix{Title: action.Title, Reason: reason})
			continue
		}
		accepted = append(accepted, staged...)
		res.Applied = append(res.Applied, AppliedFix{Title: action.Title, EditCount: len(staged)})
	}

	if len(res.Applied) == 0 {
		return res, ErrNoFixes
	}

	// с конца, чтобы смещения не съезжали
	sort.SliceStable(accepted, func(i, j int) bool {
		if accepted[i].start == accepted[j].start {
			return accepted[i].end > accepted[j].end
		}
		return accepted[i].start > accepted[j].start
	})
	working := append([]byte(nil), file.Content...)
	for _, e := range accepted {
		suffix := append([]byte(nil), working[e.end:]...)
		working = append(append(working[:e.start], e.text...), suffix...)
	}
	res.Content = working
	return res, nil
}

func containsEdit(edits []offsetEdit, e offsetEdit) bool {
	for _, prev := range edits {
		if prev == e {
			return true
		}
	}
	return false
}

func conflicts(existing []offsetEdit, e offsetEdit) bool {
	for _, prev := range existing {
		if spansConflict(prev, e) {
			return true
		}
	}
	return false
}

// spansConflict reports whether two edits overlap.
// Spans are treated as half-open intervals [Start, End). Two zero-length edits
// (Start == End) never conflict. A zero-length edit conflicts with a non-zero
// span if its position is within that span (Start <= pos < End). For two
// non-zero spans, any overlap yields a conflict.
func spansConflict(a, b offsetEdit) bool {
	if a.start == a.end && b.start == b.end {
		return false
	}
	if a.start == a.end {
		return b.start <= a.start && a.start < b.end
	}
	if b.start == b.end {
		return a.start <= b.start && b.start < a.end
	}
	return a.start < b.end && b.start < a.end
}
