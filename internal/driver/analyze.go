package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"bslint/internal/diag"
	"bslint/internal/document"
	"bslint/internal/engine"
	"bslint/internal/observ"
	"bslint/internal/project"
	"bslint/internal/source"
)

// Options tunes AnalyzeFiles.
type Options struct {
	// Jobs limits parallel files; <= 0 means GOMAXPROCS.
	Jobs  int
	Cache *DiskCache
	Log   logrus.FieldLogger
	// Progress is called after every finished file.
	Progress func(done, total int)
	// Timer, если задан, получает фазу "analyze".
	Timer *observ.Timer
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path        string
	URI         string
	File        *source.File
	Diagnostics []diag.Diagnostic
	Cached      bool
	// Err is set when the file could not be read; the run continues.
	Err error
}

// Result holds per-file results in input order.
type Result struct {
	Files []FileResult
}

// HasErrors reports unreadable files or error-severity diagnostics.
func (r *Result) HasErrors() bool {
	for _, f := range r.Files {
		if f.Err != nil {
			return true
		}
		for _, d := range f.Diagnostics {
			if d.Severity >= diag.SevError {
				return true
			}
		}
	}
	return false
}

// Count returns the total number of diagnostics.
func (r *Result) Count() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Diagnostics)
	}
	return n
}

// CollectFiles expands target into source files: a file names itself, a
// directory is searched with the configuration's source globs.
func CollectFiles(target string, cfg project.Config) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		abs, err := filepath.Abs(target)
		if err != nil {
			return nil, err
		}
		return []string{abs}, nil
	}
	return project.Discover(target, cfg.Configuration.Sources, cfg.Configuration.Exclude)
}

// AnalyzeFiles runs the engine over paths in parallel. Read failures are
// recorded per file; only cancellation aborts the run.
func AnalyzeFiles(ctx context.Context, eng *engine.Engine, paths []string, opts Options) (*Result, error) {
	log := opts.Log
	if log == nil {
		log = observ.Discard()
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	res := &Result{Files: make([]FileResult, len(paths))}
	if len(paths) == 0 {
		return res, nil
	}

	fingerprint := eng.Fingerprint()
	useCache := opts.Cache != nil && !fingerprint.IsZero()

	var progressMu sync.Mutex
	done := 0
	finish := func() {
		if opts.Progress == nil {
			return
		}
		progressMu.Lock()
		defer progressMu.Unlock()
		done++
		opts.Progress(done, len(paths))
	}

	phase := opts.Timer.Begin("analyze")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			defer finish()
			if err := gctx.Err(); err != nil {
				return err
			}
			fr, err := analyzeFile(gctx, eng, path, fingerprint, useCache, opts.Cache, log)
			if err != nil {
				return err
			}
			res.Files[i] = fr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		opts.Timer.End(phase, "cancelled")
		return nil, err
	}
	cached := 0
	for _, f := range res.Files {
		if f.Cached {
			cached++
		}
	}
	opts.Timer.End(phase, fmt.Sprintf("%d files, %d cached", len(paths), cached))
	return res, nil
}

func analyzeFile(ctx context.Context, eng *engine.Engine, path string, fingerprint project.Digest, useCache bool, cache *DiskCache, log logrus.FieldLogger) (FileResult, error) {
	uri := document.URIFromPath(path)
	fr := FileResult{Path: path, URI: uri}

	content, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).WithField("path", path).Warn("cannot read file")
		fr.Err = fmt.Errorf("read %s: %w", path, err)
		return fr, nil
	}

	var key project.Digest
	if useCache {
		key = CacheKey(content, fingerprint)
		var entry DiskEntry
		ok, err := cache.Get(key, &entry)
		if err != nil {
			log.WithError(err).WithField("path", path).Debug("disk cache entry ignored")
		}
		if ok {
			fr.File = source.NewFile(0, path, content, source.FileVirtual)
			fr.Diagnostics = entry.Diagnostics
			fr.Cached = true
			return fr, nil
		}
	}

	reg := eng.Registry()
	doc := reg.Upsert(uri, string(content))
	defer reg.Remove(uri)
	snap := doc.Snapshot()

	diags, err := eng.Analyze(ctx, snap)
	if err != nil {
		return fr, err
	}
	fr.File = snap.File
	fr.Diagnostics = diags

	if useCache {
		entry := &DiskEntry{Path: path, ContentHash: project.Sum(content), Diagnostics: diags}
		if err := cache.Put(key, entry); err != nil {
			log.WithError(err).WithField("path", path).Debug("disk cache write failed")
		}
	}
	return fr, nil
}
