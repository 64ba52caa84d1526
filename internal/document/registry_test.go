package document

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bslint/internal/ast"
	"bslint/internal/project"
)

func TestUpsertKeepsDocumentIdentity(t *testing.T) {
	r := NewRegistry()
	d1 := r.Upsert("file:///a.bsl", "А = 1;")
	d2 := r.Upsert("file:///a.bsl", "Б = 2;")
	require.Same(t, d1, d2)

	snap := d2.Snapshot()
	assert.Equal(t, "Б = 2;", snap.Text())
	assert.Equal(t, 2, snap.Version)

	got, ok := r.Get("file:///a.bsl")
	require.True(t, ok)
	assert.Same(t, d1, got)

	d3 := r.UpsertVersion("file:///a.bsl", 10, "В = 3;")
	assert.Equal(t, 10, d3.Version())
}

func TestRemoveAndClear(t *testing.T) {
	r := NewRegistry()
	r.Upsert("b", "")
	r.Upsert("a", "")
	assert.Equal(t, []string{"a", "b"}, r.URIs())

	r.Remove("a")
	r.Remove("missing")
	_, ok := r.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())

	gen := r.Generation()
	r.Clear()
	assert.Equal(t, 0, r.Len())
	assert.Greater(t, r.Generation(), gen)
}

func TestSnapshotArtifacts(t *testing.T) {
	r := NewRegistry()
	snap := r.Upsert("m.bsl", "// Описание\nПроцедура А()\n\tБ = 1; // хвост\nКонецПроцедуры\n").Snapshot()
	assert.Len(t, snap.Comments, 2)
	assert.Len(t, ast.Collect(snap.Tree.Root, ast.KindSub), 1)

	methods := snap.Methods()
	require.Len(t, methods, 1)
	assert.Equal(t, "А", methods[0].Name)
	assert.NotNil(t, methods[0].Description)
	// повторный вызов отдаёт тот же результат
	assert.Same(t, &methods[0], &snap.Methods()[0])
}

func TestConfigurationIsComputedOncePerGeneration(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	r := NewRegistry(WithMetadataLoader(func(root string) (project.Metadata, error) {
		calls.Add(1)
		<-release
		md := project.EmptyMetadata()
		md.Root = root
		md.Name = "demo"
		return md, nil
	}))

	assert.True(t, r.Configuration().IsEmpty(), "no root means empty metadata")
	assert.Equal(t, int32(0), calls.Load())

	r.SetConfigurationRoot("/cfg")
	var wg sync.WaitGroup
	results := make([]project.Metadata, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.Configuration()
		}(i)
	}
	close(release)
	wg.Wait()

	for _, md := range results {
		assert.Equal(t, "demo", md.Name)
	}
	first := calls.Load()
	assert.Equal(t, int32(1), first)
	r.Configuration()
	assert.Equal(t, first, calls.Load(), "memoized value must be reused")

	r.Clear()
	r.Configuration()
	assert.Equal(t, first+1, calls.Load(), "Clear invalidates metadata")

	r.SetConfigurationRoot("/cfg")
	r.Configuration()
	assert.Equal(t, first+1, calls.Load(), "same root keeps the cell")
}

func TestConfigurationLoadFailureFallsBackToEmpty(t *testing.T) {
	var calls atomic.Int32
	r := NewRegistry(WithMetadataLoader(func(string) (project.Metadata, error) {
		calls.Add(1)
		return project.Metadata{}, errors.New("boom")
	}))
	r.SetConfigurationRoot("/broken")
	md := r.Configuration()
	assert.True(t, md.IsEmpty())
	r.Configuration()
	assert.Equal(t, int32(1), calls.Load())
}

// Читатели видят либо старый, либо новый снимок целиком.
func TestConcurrentRebuildPublishesWholeSnapshots(t *testing.T) {
	r := NewRegistry()
	texts := []string{
		"А = 1;",
		"Процедура П()\n\tБ = 2;\nКонецПроцедуры",
		"// только комментарий",
	}
	d := r.Upsert("doc", texts[0])

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; ; i++ {
				select {
				case <-stop:
					return
				default:
				}
				r.Upsert("doc", texts[(i+w)%len(texts)])
			}
		}(w)
	}

	for i := 0; i < 500; i++ {
		snap := d.Snapshot()
		var b strings.Builder
		for _, tok := range snap.Tokens {
			b.WriteString(tok.Text)
		}
		require.Equal(t, snap.Text(), b.String())
		require.Len(t, snap.Tree.Tokens, len(snap.Tokens))
	}
	close(stop)
	wg.Wait()
}

func TestFirstUpsertIsVisibleWithSnapshot(t *testing.T) {
	text := strings.Repeat("Процедура А()\n\tБ = 1;\nКонецПроцедуры\n", 700)
	for round := 0; round < 200; round++ {
		r := NewRegistry()
		const uri = "file:///m.bsl"

		var wg sync.WaitGroup
		wg.Add(2)
		var upserted *Document
		go func() {
			defer wg.Done()
			upserted = r.Upsert(uri, text)
		}()
		var seen *Document
		go func() {
			defer wg.Done()
			for {
				if d, ok := r.Get(uri); ok {
					seen = d
					return
				}
			}
		}()
		wg.Wait()

		require.NotNil(t, seen.Snapshot(), "round %d", round)
		assert.Same(t, upserted, seen)
		assert.Equal(t, 1, seen.Version())
	}
}

func TestConcurrentFirstUpsertsShareDocument(t *testing.T) {
	r := NewRegistry()
	const writers = 8
	docs := make([]*Document, writers)
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			docs[i] = r.Upsert("file:///shared.bsl", "А = 1;")
		}()
	}
	wg.Wait()

	for _, d := range docs[1:] {
		assert.Same(t, docs[0], d)
	}
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, writers, docs[0].Version())
}

func TestURIRoundTrip(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "Общий модуль.bsl")
	uri := URIFromPath(p)
	assert.True(t, strings.HasPrefix(uri, "file://"))
	assert.Equal(t, p, PathFromURI(uri))
	assert.Equal(t, "", PathFromURI("untitled:Untitled-1"))
	assert.Equal(t, "", URIFromPath(""))
}
