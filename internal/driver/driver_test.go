package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bslint/internal/diag"
	"bslint/internal/document"
	"bslint/internal/engine"
	"bslint/internal/observ"
	"bslint/internal/project"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func newEngine() *engine.Engine {
	return engine.New(document.NewRegistry(), engine.DefaultConfig())
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src", "Модуль.bsl"), "")
	writeFile(t, filepath.Join(dir, "src", "script.os"), "")
	writeFile(t, filepath.Join(dir, "vendor", "lib.bsl"), "")
	writeFile(t, filepath.Join(dir, "notes.txt"), "")

	cfg := project.DefaultConfig("demo")
	cfg.Configuration.Exclude = []string{"vendor/**"}
	files, err := CollectFiles(dir, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "src", "script.os"),
		filepath.Join(dir, "src", "Модуль.bsl"),
	}, files)

	single, err := CollectFiles(filepath.Join(dir, "notes.txt"), cfg)
	require.NoError(t, err)
	assert.Len(t, single, 1)

	_, err = CollectFiles(filepath.Join(dir, "absent"), cfg)
	assert.Error(t, err)
}

func TestAnalyzeFilesInParallel(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.bsl", "b.bsl", "c.bsl", "d.bsl"} {
		p := filepath.Join(dir, name)
		writeFile(t, p, "А=Б;\n")
		paths = append(paths, p)
	}
	paths = append(paths, filepath.Join(dir, "missing.bsl"))

	var calls atomic.Int32
	eng := newEngine()
	timer := observ.NewTimer()
	res, err := AnalyzeFiles(context.Background(), eng, paths, Options{
		Jobs:     2,
		Timer:    timer,
		Progress: func(done, total int) { calls.Add(1); assert.LessOrEqual(t, done, total) },
	})
	require.NoError(t, err)
	require.Len(t, res.Files, 5)
	assert.Equal(t, int32(5), calls.Load())

	for i, f := range res.Files[:4] {
		assert.Equal(t, paths[i], f.Path)
		require.NoError(t, f.Err)
		require.Len(t, f.Diagnostics, 1)
		assert.Equal(t, diag.CodeMissingSpace, f.Diagnostics[0].Code)
	}
	assert.Error(t, res.Files[4].Err)
	assert.True(t, res.HasErrors())
	assert.Equal(t, 4, res.Count())
	assert.Zero(t, eng.Registry().Len(), "analyzed documents are released")

	report := timer.Report()
	require.Len(t, report.Phases, 1)
	assert.Equal(t, "analyze", report.Phases[0].Name)
	assert.Equal(t, "5 files, 0 cached", report.Phases[0].Note)
}

func TestAnalyzeFilesCancelled(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.bsl")
	writeFile(t, p, "А = 1;\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := AnalyzeFiles(ctx, newEngine(), []string{p}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDiskCacheServesRepeatedRuns(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.bsl")
	writeFile(t, p, "А=Б;\n")
	cache, err := NewDiskCache(filepath.Join(dir, "cache"))
	require.NoError(t, err)

	first, err := AnalyzeFiles(context.Background(), newEngine(), []string{p}, Options{Cache: cache})
	require.NoError(t, err)
	assert.False(t, first.Files[0].Cached)

	second, err := AnalyzeFiles(context.Background(), newEngine(), []string{p}, Options{Cache: cache})
	require.NoError(t, err)
	assert.True(t, second.Files[0].Cached)
	assert.Equal(t, first.Files[0].Diagnostics, second.Files[0].Diagnostics)
	assert.NotNil(t, second.Files[0].File)

	// другая конфигурация правил - другой ключ
	other := engine.New(document.NewRegistry(), engine.Config{Disabled: []string{"MissingSpace"}})
	third, err := AnalyzeFiles(context.Background(), other, []string{p}, Options{Cache: cache})
	require.NoError(t, err)
	assert.False(t, third.Files[0].Cached)
	assert.Empty(t, third.Files[0].Diagnostics)

	require.NoError(t, cache.DropAll())
	fourth, err := AnalyzeFiles(context.Background(), newEngine(), []string{p}, Options{Cache: cache})
	require.NoError(t, err)
	assert.False(t, fourth.Files[0].Cached)
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	require.NoError(t, err)
	key := CacheKey([]byte("А = 1;"), project.Sum([]byte("cfg")))

	var out DiskEntry
	ok, err := cache.Get(key, &out)
	require.NoError(t, err)
	assert.False(t, ok)

	in := &DiskEntry{Path: "a.bsl", Diagnostics: []diag.Diagnostic{{
		Severity: diag.SevWarning,
		Code:     diag.CodeUsingHardcodePath,
		Message:  "путь",
		Hint:     diag.HintNone,
	}}}
	require.NoError(t, cache.Put(key, in))
	ok, err = cache.Get(key, &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in.Diagnostics, out.Diagnostics)

	var nilCache *DiskCache
	ok, err = nilCache.Get(key, &out)
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestTokenize(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a.bsl")
	writeFile(t, p, "А = 1; // к\n")
	res, err := Tokenize(p, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Tokens)
	assert.Equal(t, 0, res.Bag.Len())

	_, err = Tokenize(p+".absent", 10)
	assert.Error(t, err)
}
