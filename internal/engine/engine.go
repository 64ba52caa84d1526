package engine

import (
	"context"
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"

	"bslint/internal/diag"
	"bslint/internal/document"
	"bslint/internal/observ"
	"bslint/internal/project"
	"bslint/internal/rules"
)

const defaultCacheSize = 512

type ruleSet struct {
	rules  []rules.Rule
	msgs   diag.Messages
	gen    uint64
	digest project.Digest
}

type cacheKey struct {
	uri     string
	hash    [32]byte
	metaGen uint64
	cfgGen  uint64
}

// Engine runs rules over snapshots of a document registry.
type Engine struct {
	registry *document.Registry
	log      logrus.FieldLogger
	metrics  *observ.Metrics
	cache    *lru.LRU[cacheKey, []diag.Diagnostic]

	mu  sync.RWMutex
	set *ruleSet
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	log       logrus.FieldLogger
	metrics   *observ.Metrics
	cacheSize int
	cacheTTL  time.Duration
}

// WithLogger sets the logger for configuration warnings and rule failures.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) { o.log = log }
}

// WithMetrics records rule statistics into m.
func WithMetrics(m *observ.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithCache sets the result cache size and entry lifetime; ttl 0 keeps
// entries until evicted.
func WithCache(size int, ttl time.Duration) Option {
	return func(o *options) {
		o.cacheSize = size
		o.cacheTTL = ttl
	}
}

// New creates an engine over registry configured with cfg. Configuration
// problems are logged; the engine is usable regardless.
func New(registry *document.Registry, cfg Config, opts ...Option) *Engine {
	o := options{cacheSize: defaultCacheSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = observ.Discard()
	}
	if o.metrics == nil {
		o.metrics = observ.NewMetrics()
	}
	if o.cacheSize <= 0 {
		o.cacheSize = defaultCacheSize
	}
	e := &Engine{
		registry: registry,
		log:      o.log,
		metrics:  o.metrics,
		cache:    lru.NewLRU[cacheKey, []diag.Diagnostic](o.cacheSize, nil, o.cacheTTL),
		set:      &ruleSet{},
	}
	_ = e.Configure(cfg)
	return e
}

// Registry returns the document registry the engine reads from.
func (e *Engine) Registry() *document.Registry { return e.registry }

// Metrics returns the engine's metrics.
func (e *Engine) Metrics() *observ.Metrics { return e.metrics }

// Configure rebuilds the rule set. Rejected parameters fall back to rule
// defaults; the returned error lists every problem, each already logged.
func (e *Engine) Configure(cfg Config) error {
	errs := []error{cfg.validate()}
	built := make([]rules.Rule, 0, len(rules.Codes()))
	for _, code := range rules.Codes() {
		id := code.ID()
		if !cfg.enabled(id) {
			continue
		}
		r, err := rules.New(code, cfg.Params[id])
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
		}
		if r != nil {
			built = append(built, r)
		}
	}
	digest, derr := cfg.Digest()
	errs = append(errs, derr)
	err := errors.Join(errs...)
	if err != nil {
		e.log.WithError(err).Warn("rule configuration")
	}
	e.install(diag.Messages{Lang: cfg.Language}, digest, built...)
	return err
}

func (e *Engine) install(msgs diag.Messages, digest project.Digest, rs ...rules.Rule) {
	e.mu.Lock()
	e.set = &ruleSet{rules: rs, msgs: msgs, gen: e.set.gen + 1, digest: digest}
	e.mu.Unlock()
	e.cache.Purge()
}

// Fingerprint identifies everything besides the text that affects results:
// the rule configuration and the configuration metadata. Zero when the
// rule configuration could not be hashed.
func (e *Engine) Fingerprint() project.Digest {
	set := e.current()
	if set.digest.IsZero() {
		return project.Digest{}
	}
	return project.Combine(set.digest, e.registry.Configuration().Fingerprint)
}

// Rules returns the active rules.
func (e *Engine) Rules() []rules.Rule {
	return slices.Clone(e.current().rules)
}

func (e *Engine) current() *ruleSet {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.set
}

// AnalyzeURI analyzes the current snapshot of a registered document.
func (e *Engine) AnalyzeURI(ctx context.Context, uri string) ([]diag.Diagnostic, error) {
	doc, ok := e.registry.Get(uri)
	if !ok {
		return nil, fmt.Errorf("document %s is not open", uri)
	}
	return e.Analyze(ctx, doc.Snapshot())
}

// Analyze runs every applicable rule over snap and returns the sorted
// diagnostics. A rule that panics contributes nothing.
func (e *Engine) Analyze(ctx context.Context, snap *document.Snapshot) ([]diag.Diagnostic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	set := e.current()
	key := cacheKey{uri: snap.URI, hash: snap.Hash(), metaGen: e.registry.Generation(), cfgGen: set.gen}
	if cached, ok := e.cache.Get(key); ok {
		e.metrics.CacheHits.Inc()
		return slices.Clone(cached), nil
	}

	meta := e.registry.Configuration()
	rctx := &rules.Context{Snapshot: snap, Metadata: meta, Messages: set.msgs}
	ext := strings.ToLower(path.Ext(snap.URI))

	bag := diag.NewBag(16)
	for _, r := range set.rules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info := r.Info()
		if !info.AppliesTo(ext) || !meta.Supports(info.Compatibility) {
			continue
		}
		bag.Add(e.run(r, info, rctx)...)
	}
	bag.Sort()
	items := bag.Items()
	e.cache.Add(key, items)
	return slices.Clone(items), nil
}

func (e *Engine) run(r rules.Rule, info rules.Info, rctx *rules.Context) (out []diag.Diagnostic) {
	id := info.Code.ID()
	start := time.Now()
	e.metrics.RuleRuns.WithLabelValues(id).Inc()
	defer func() {
		e.metrics.RuleDuration.WithLabelValues(id).Observe(time.Since(start).Seconds())
		if p := recover(); p != nil {
			e.metrics.RuleFailures.WithLabelValues(id).Inc()
			e.log.WithFields(logrus.Fields{
				"rule":  id,
				"uri":   rctx.Snapshot.URI,
				"panic": p,
			}).Error("rule failed")
			out = nil
		}
	}()
	out = r.Check(rctx)
	e.metrics.Diagnostics.WithLabelValues(id).Add(float64(len(out)))
	return out
}

// Invalidate drops cached results; the next analysis recomputes them.
func (e *Engine) Invalidate() {
	e.cache.Purge()
}
