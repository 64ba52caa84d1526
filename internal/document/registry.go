package document

import (
	"io"
	"slices"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"bslint/internal/project"
	"bslint/internal/source"
)

// MetadataLoader computes configuration metadata for a root directory.
type MetadataLoader func(root string) (project.Metadata, error)

// Option configures a Registry.
type Option func(*Registry)

// WithMetadataLoader replaces project.LoadMetadata.
func WithMetadataLoader(load MetadataLoader) Option {
	return func(r *Registry) { r.load = load }
}

// WithLogger sets the logger used for metadata load failures.
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Registry) { r.log = log }
}

// Registry is the document cache: documents by URI plus the lazily computed
// configuration metadata shared by all of them.
type Registry struct {
	mu     sync.RWMutex
	docs   map[string]*Document
	nextID source.FileID

	load MetadataLoader
	log  logrus.FieldLogger

	// ячейка метаданных: значение действительно только для своего поколения
	metaMu  sync.Mutex
	root    string
	gen     uint64
	meta    *project.Metadata
	metaGen uint64
	group   singleflight.Group
}

// NewRegistry creates an empty registry without a configuration root.
func NewRegistry(opts ...Option) *Registry {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	r := &Registry{
		docs: make(map[string]*Document),
		load: project.LoadMetadata,
		log:  discard,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the document for uri.
func (r *Registry) Get(uri string) (*Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.docs[uri]
	return d, ok
}

// Upsert creates the document on first use, otherwise rebuilds it in place.
// The returned pointer is stable for the lifetime of the entry.
func (r *Registry) Upsert(uri, text string) *Document {
	return r.UpsertVersion(uri, 0, text)
}

// UpsertVersion is Upsert with an explicit editor version.
// A new document becomes visible to Get only together with its first snapshot.
func (r *Registry) UpsertVersion(uri string, version int, text string) *Document {
	if d, ok := r.Get(uri); ok {
		d.Rebuild(text, version)
		return d
	}

	r.mu.Lock()
	if d, ok := r.docs[uri]; ok {
		r.mu.Unlock()
		d.Rebuild(text, version)
		return d
	}
	id := r.nextID
	r.nextID++
	r.mu.Unlock()

	// сборка идёт без блокировки реестра; если кто-то успел вставить документ
	// раньше, обновляем его, а свой отбрасываем
	d := newDocument(id, uri, Build(id, uri, max(version, 1), text))

	r.mu.Lock()
	if existing, ok := r.docs[uri]; ok {
		r.mu.Unlock()
		existing.Rebuild(text, version)
		return existing
	}
	r.docs[uri] = d
	r.mu.Unlock()
	return d
}

// Remove drops the document for uri. Missing entries are ignored.
func (r *Registry) Remove(uri string) {
	r.mu.Lock()
	delete(r.docs, uri)
	r.mu.Unlock()
}

// Clear removes every document and invalidates the configuration metadata.
func (r *Registry) Clear() {
	r.mu.Lock()
	r.docs = make(map[string]*Document)
	r.mu.Unlock()
	r.InvalidateConfiguration()
}

// Len returns the number of cached documents.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs)
}

// URIs lists cached documents in lexical order.
func (r *Registry) URIs() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.docs))
	for uri := range r.docs {
		out = append(out, uri)
	}
	r.mu.RUnlock()
	slices.Sort(out)
	return out
}

// SetConfigurationRoot points the registry at a configuration directory.
// Changing the root invalidates the cached metadata.
func (r *Registry) SetConfigurationRoot(root string) {
	r.metaMu.Lock()
	defer r.metaMu.Unlock()
	if r.root == root {
		return
	}
	r.root = root
	r.gen++
}

// ConfigurationRoot returns the current root, "" when unset.
func (r *Registry) ConfigurationRoot() string {
	r.metaMu.Lock()
	defer r.metaMu.Unlock()
	return r.root
}

// InvalidateConfiguration forces the next Configuration call to reload.
func (r *Registry) InvalidateConfiguration() {
	r.metaMu.Lock()
	r.gen++
	r.meta = nil
	r.metaMu.Unlock()
}

// Generation changes every time cached metadata becomes invalid.
func (r *Registry) Generation() uint64 {
	r.metaMu.Lock()
	defer r.metaMu.Unlock()
	return r.gen
}

// Configuration returns the metadata of the configuration root. It is
// computed at most once per root and generation even under concurrent
// callers. Without a root, or when loading fails, the empty metadata is
// returned.
func (r *Registry) Configuration() project.Metadata {
	r.metaMu.Lock()
	if r.meta != nil && r.metaGen == r.gen {
		md := *r.meta
		r.metaMu.Unlock()
		return md
	}
	root, gen := r.root, r.gen
	r.metaMu.Unlock()

	if root == "" {
		return project.EmptyMetadata()
	}

	key := strconv.FormatUint(gen, 10) + "\x00" + root
	v, _, _ := r.group.Do(key, func() (any, error) {
		r.metaMu.Lock()
		if r.meta != nil && r.metaGen == gen {
			md := *r.meta
			r.metaMu.Unlock()
			return md, nil
		}
		r.metaMu.Unlock()

		md, err := r.load(root)
		if err != nil {
			r.log.WithError(err).WithField("root", root).Warn("failed to load configuration metadata")
			md = project.EmptyMetadata()
		}

		r.metaMu.Lock()
		if r.gen == gen {
			r.meta = &md
			r.metaGen = gen
		}
		r.metaMu.Unlock()
		return md, nil
	})
	return v.(project.Metadata)
}
