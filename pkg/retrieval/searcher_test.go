package retrieval

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"teen-coach-be/pkg/cards"
	"teen-coach-be/pkg/docindex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func libraryWith(t *testing.T, docs map[string]string) *docindex.Library {
	t.Helper()
	dir := t.TempDir()
	for name, content := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return docindex.NewLibrary(dir, 0, testLogger())
}

func TestSearchDocumentsRanksExactContentFirst(t *testing.T) {
	query := "panic attacks cause a racing heart and fast breathing"
	lib := libraryWith(t, map[string]string{
		"panic.txt": query,
		"sleep.txt": "a consistent bedtime routine improves rest and recovery",
		"study.txt": "planning homework in small blocks reduces procrastination",
	})

	s := NewSearcher(lib, 0, testLogger())
	matches := s.SearchDocuments(query, "", 3)

	require.NotEmpty(t, matches)
	assert.Equal(t, "panic", matches[0].Document.Title)
	for i := 1; i < len(matches); i++ {
		assert.LessOrEqual(t, matches[i].Similarity, matches[0].Similarity)
	}
}

func TestSearchDocumentsThreshold(t *testing.T) {
	lib := libraryWith(t, map[string]string{
		"panic.txt":   "panic attack fear racing heart breathing exercise",
		"cooking.txt": "chopping onions and simmering tomato sauce for pasta",
	})

	s := NewSearcher(lib, 0, testLogger())
	matches := s.SearchDocuments("panic attack breathing", "", 5)

	for _, m := range matches {
		assert.Greater(t, m.Similarity, DefaultSimilarityThreshold)
	}
	for _, m := range matches {
		assert.NotEqual(t, "cooking", m.Document.Title, "unrelated doc must be discarded, not low-ranked")
	}
}

func TestSearchDocumentsEmptyCorpus(t *testing.T) {
	lib := docindex.NewLibrary(filepath.Join(t.TempDir(), "missing"), 0, testLogger())
	s := NewSearcher(lib, 0, testLogger())
	assert.Empty(t, s.SearchDocuments("anything at all", "panic", 3))
}

func TestSearchDocumentsRespectsK(t *testing.T) {
	lib := libraryWith(t, map[string]string{
		"a.txt": "breathing exercise for panic and fear",
		"b.txt": "breathing slowly helps panic symptoms",
		"c.txt": "fear and panic respond to slow breathing",
	})

	s := NewSearcher(lib, 0, testLogger())
	matches := s.SearchDocuments("panic breathing", "", 2)
	assert.LessOrEqual(t, len(matches), 2)

	assert.Empty(t, s.SearchDocuments("panic breathing", "", 0))
}

func TestSearchDocumentsIntentExpansion(t *testing.T) {
	// The document never mentions "scared"; only the expansion vocabulary
	// ("panic", "fear", "breathing") connects the query to it.
	lib := libraryWith(t, map[string]string{
		"panic.txt": "panic attack fear terror heart racing breathing techniques",
		"other.txt": "school lunch menus and cafeteria schedules this semester",
	})

	s := NewSearcher(lib, 0, testLogger())

	plain := s.SearchDocuments("i feel scared", "", 3)
	expanded := s.SearchDocuments("i feel scared", "panic", 3)

	require.NotEmpty(t, expanded)
	assert.Equal(t, "panic", expanded[0].Document.Title)
	if len(plain) > 0 {
		assert.GreaterOrEqual(t, expanded[0].Similarity, plain[0].Similarity)
	}
}

func TestExpandQuery(t *testing.T) {
	assert.Equal(t, "hello", ExpandQuery("hello", ""))
	assert.Equal(t, "hello", ExpandQuery("hello", "not_a_known_intent"))

	expanded := ExpandQuery("my heart is pounding", "panic")
	assert.True(t, strings.HasPrefix(expanded, "my heart is pounding "))
	assert.Contains(t, expanded, "breathing")
}

func TestBuildExcerptBounds(t *testing.T) {
	para := strings.Repeat("stress and pressure keep building at school every day. ", 10)
	content := strings.Join([]string{para, para, para, para}, "\n\n")

	excerpt := buildExcerpt(content, "stress school pressure")
	assert.LessOrEqual(t, len(excerpt), excerptLimit+len(ellipsis))
	assert.True(t, strings.HasSuffix(excerpt, ellipsis), "long content must carry a truncation marker")
}

func TestBuildExcerptShortContent(t *testing.T) {
	content := "One short paragraph about stress that easily fits the excerpt bound and stays intact."
	excerpt := buildExcerpt(content, "stress")
	assert.Equal(t, content, excerpt)
	assert.False(t, strings.HasSuffix(excerpt, ellipsis))
}

func TestBuildExcerptSelectsScoringParagraphWithNeighbors(t *testing.T) {
	p1 := "This opening paragraph talks about general school life and weekly schedules in detail."
	p2 := "Panic attacks bring a racing heart, fast breathing, and a strong urge to escape the room."
	p3 := "A closing paragraph about asking a trusted adult for help when things get too heavy."
	p4 := "Completely unrelated paragraph about the cafeteria menu rotation and lunch options."
	content := strings.Join([]string{p1, p2, p3, p4}, "\n\n")

	excerpt := buildExcerpt(content, "panic racing heart breathing")
	assert.Contains(t, excerpt, "racing heart")
	assert.Contains(t, excerpt, p1, "left neighbor should be included")
	assert.Contains(t, excerpt, p3, "right neighbor should be included")
	assert.NotContains(t, excerpt, p4)
}

func TestBuildExcerptFallbacks(t *testing.T) {
	t.Run("no scoring paragraph falls back to first two", func(t *testing.T) {
		p1 := "First paragraph with plenty of length but nothing matching the query terms at all."
		p2 := "Second paragraph, also long enough to count, also unrelated to the search query."
		p3 := "Third paragraph that should not appear in the fallback excerpt output."
		excerpt := buildExcerpt(strings.Join([]string{p1, p2, p3}, "\n\n"), "zzzz")
		assert.Contains(t, excerpt, p1)
		assert.Contains(t, excerpt, p2)
		assert.NotContains(t, excerpt, p3)
	})

	t.Run("no paragraphs falls back to raw prefix", func(t *testing.T) {
		content := "short line"
		assert.Equal(t, content, buildExcerpt(content, "anything"))
	})
}

func TestRetrieveCombinedContext(t *testing.T) {
	lib := libraryWith(t, map[string]string{
		"panic.txt": "panic attack fear racing heart breathing exercises for teens",
	})
	corpus := []cards.SkillCard{
		{Title: "Box Breathing", Tags: []string{"stress"}},
		{Title: "Grounding", Tags: []string{"panic"}},
	}

	r := NewRetriever(corpus, NewSearcher(lib, 0, testLogger()))
	result := r.RetrieveCombinedContext("I'm having a panic attack", "panic", 2, 2)

	require.NotEmpty(t, result.SkillCards)
	assert.Equal(t, "Grounding", result.SkillCards[0].Title)
	require.NotEmpty(t, result.Documents)
	assert.Equal(t, "panic", result.Documents[0].Document.Title)
}
