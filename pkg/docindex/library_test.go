package docindex

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLibraryLoadsTxtDocuments(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "breathing.txt", "Slow breathing calms the nervous system.")
	writeDoc(t, dir, "sleep.txt", "A wind-down routine improves sleep quality.")
	writeDoc(t, dir, "ignored.md", "Unsupported extension")

	lib := NewLibrary(dir, 0, testLogger())
	docs := lib.Documents()

	require.Len(t, docs, 2)
	assert.Equal(t, "breathing", docs[0].Title)
	assert.Equal(t, "sleep", docs[1].Title)
	assert.Contains(t, docs[0].Content, "nervous system")
}

func TestLibraryCachesFirstBuild(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "one.txt", "first corpus content here")

	lib := NewLibrary(dir, 0, testLogger())
	first := lib.Documents()
	require.Len(t, first, 1)

	// A corpus change after the first build is invisible: first-build-wins.
	writeDoc(t, dir, "two.txt", "late arrival")
	second := lib.Documents()

	require.Len(t, second, 1)
	assert.Same(t, &first[0], &second[0], "second call must return the cached slice, not a rescan")

	// Reset is the only invalidation path.
	lib.Reset()
	assert.Len(t, lib.Documents(), 2)
}

func TestLibraryMissingDirectory(t *testing.T) {
	lib := NewLibrary(filepath.Join(t.TempDir(), "does-not-exist"), 0, testLogger())
	assert.Empty(t, lib.Documents())

	vec, vectors := lib.Index()
	assert.Nil(t, vec)
	assert.Nil(t, vectors)
}

func TestLibrarySkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "good.txt", "usable content about stress")
	// Not a real PDF; extraction fails and the file is skipped.
	writeDoc(t, dir, "broken.pdf", "not actually a pdf")

	lib := NewLibrary(dir, 0, testLogger())
	docs := lib.Documents()

	require.Len(t, docs, 1)
	assert.Equal(t, "good", docs[0].Title)
}

func TestLibraryConcurrentFirstAccess(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "doc.txt", "concurrent build content")

	lib := NewLibrary(dir, 0, testLogger())

	var wg sync.WaitGroup
	results := make([][]Document, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = lib.Documents()
		}(i)
	}
	wg.Wait()

	for i := 1; i < 8; i++ {
		require.Len(t, results[i], 1)
		assert.Same(t, &results[0][0], &results[i][0], "all goroutines must observe the same build")
	}
}

func TestLibraryIndexBuiltAlongsideDocuments(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "panic.txt", "panic attacks and racing heart")
	writeDoc(t, dir, "sleep.txt", "sleep routine and rest")

	lib := NewLibrary(dir, 0, testLogger())
	vec, vectors := lib.Index()

	require.NotNil(t, vec)
	require.Len(t, vectors, 2)
	assert.Greater(t, vec.VocabularySize(), 0)
}

func TestExtractDocx(t *testing.T) {
	// Minimal docx fixture built on the fly.
	dir := t.TempDir()
	path := filepath.Join(dir, "note.docx")
	writeMinimalDocx(t, path, []string{"First paragraph.", "Second paragraph."})

	text, err := extractDocx(path)
	require.NoError(t, err)
	assert.Equal(t, "First paragraph.\nSecond paragraph.", text)
}
