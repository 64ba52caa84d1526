package document

import (
	"sync"
	"sync/atomic"

	"bslint/internal/source"
)

// Document is a registry entry. Its artifacts are replaced as a whole on
// every rebuild: readers see either the old snapshot or the new one.
type Document struct {
	uri string
	id  source.FileID

	mu   sync.Mutex // сериализует писателей
	snap atomic.Pointer[Snapshot]
}

func newDocument(id source.FileID, uri string, first *Snapshot) *Document {
	d := &Document{uri: uri, id: id}
	d.snap.Store(first)
	return d
}

func (d *Document) URI() string {
	return d.uri
}

// Snapshot returns the current artifacts. It is never nil for a document
// obtained from a Registry.
func (d *Document) Snapshot() *Snapshot {
	return d.snap.Load()
}

// Version of the current snapshot.
func (d *Document) Version() int {
	if s := d.snap.Load(); s != nil {
		return s.Version
	}
	return 0
}

// Rebuild recomputes all artifacts from text and publishes them atomically.
// version <= 0 means "previous version + 1".
func (d *Document) Rebuild(text string, version int) *Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	if version <= 0 {
		version = d.Version() + 1
	}
	s := Build(d.id, d.uri, version, text)
	d.snap.Store(s)
	return s
}
