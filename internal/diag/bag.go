package diag

import (
	"sort"
)

// Bag collects diagnostics of one document from several rules.
type Bag struct {
	items []Diagnostic
}

func NewBag(capacity int) *Bag {
	return &Bag{items: make([]Diagnostic, 0, capacity)}
}

func (b *Bag) Add(ds ...Diagnostic) {
	b.items = append(b.items, ds...)
}

// HasErrors возвращает true, если есть хотя бы одна диагностика с Severity >= Error
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// длина
func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice диагностик.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Bag)
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge объединяет диагностики из другого Bag.
func (b *Bag) Merge(other *Bag) {
	b.items = append(b.items, other.items...)
}

// Filter keeps diagnostics with severity not below min.
func (b *Bag) Filter(min Severity) {
	kept := b.items[:0]
	for _, d := range b.items {
		if d.Severity >= min {
			kept = append(kept, d)
		}
	}
	b.items = kept
}

// Sort сортирует диагностики по: start, end, severity (desc), code (asc)
// для стабильного и детерминированного порядка вывода.
func (b *Bag) Sort() {
	Sort(b.items)
}

// Sort orders a slice of diagnostics the same way Bag.Sort does.
func Sort(items []Diagnostic) {
	sort.SliceStable(items, func(i, j int) bool {
		di, dj := items[i], items[j]
		if di.Range.Start != dj.Range.Start {
			return di.Range.Start.Less(dj.Range.Start)
		}
		if di.Range.End != dj.Range.End {
			return di.Range.End.Less(dj.Range.End)
		}
		// затем по severity (по убыванию: Error > Warning > Info)
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}
