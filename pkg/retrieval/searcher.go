// Package retrieval selects the skill cards and document excerpts that feed
// the prompt assembler for one user turn.
package retrieval

import (
	"log"
	"sort"

	"teen-coach-be/pkg/cards"
	"teen-coach-be/pkg/docindex"
)

// DefaultSimilarityThreshold discards matches that are noise rather than
// signal. Tuned empirically for short supportive-document corpora; override
// via NewSearcher.
const DefaultSimilarityThreshold = 0.03

// DocumentMatch is one retrieved document with its score and a bounded
// excerpt ready for prompt assembly.
type DocumentMatch struct {
	Document   docindex.Document `json:"document"`
	Similarity float64           `json:"similarity"`
	Excerpt    string            `json:"excerpt"`
}

// Searcher runs TF-IDF similarity search over a document library.
type Searcher struct {
	library   *docindex.Library
	threshold float64
	logger    *log.Logger
}

// NewSearcher creates a searcher. threshold <= 0 falls back to the default.
func NewSearcher(library *docindex.Library, threshold float64, logger *log.Logger) *Searcher {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Searcher{
		library:   library,
		threshold: threshold,
		logger:    logger,
	}
}

// SearchDocuments scores every indexed document against the query (expanded
// by intent when known) and returns at most k matches above the similarity
// threshold, highest first. Fewer than k results, including zero, is normal:
// an empty corpus or a query unrelated to the corpus simply yields nothing.
func (s *Searcher) SearchDocuments(query, intent string, k int) []DocumentMatch {
	if k <= 0 {
		return nil
	}

	docs := s.library.Documents()
	vec, vectors := s.library.Index()
	if len(docs) == 0 || vec == nil {
		return nil
	}

	expanded := ExpandQuery(query, intent)
	queryVec := vec.Transform(expanded)

	matches := make([]DocumentMatch, 0, len(docs))
	for i, d := range docs {
		sim := docindex.CosineSimilarity(queryVec, vectors[i])
		if sim <= s.threshold {
			continue
		}
		matches = append(matches, DocumentMatch{
			Document:   d,
			Similarity: sim,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if len(matches) > k {
		matches = matches[:k]
	}

	for i := range matches {
		matches[i].Excerpt = buildExcerpt(matches[i].Document.Content, query)
	}

	s.logger.Printf("[DEBUG] Document search: query=%q intent=%q matches=%d", query, intent, len(matches))
	return matches
}

// Result is the combined context for one user turn: ranked skill cards plus
// ranked document excerpts. Transient, never persisted.
type Result struct {
	SkillCards []cards.SkillCard `json:"skill_cards"`
	Documents  []DocumentMatch   `json:"documents"`
}

// Retriever batches card and document lookup for the prompt assembler.
type Retriever struct {
	cards    []cards.SkillCard
	searcher *Searcher
}

// NewRetriever creates a retriever over an immutable card corpus and a
// document searcher.
func NewRetriever(skillCards []cards.SkillCard, searcher *Searcher) *Retriever {
	return &Retriever{
		cards:    skillCards,
		searcher: searcher,
	}
}

// RetrieveCombinedContext composes card filtering with document search.
// No additional logic lives here; it exists so callers make one call per
// turn.
func (r *Retriever) RetrieveCombinedContext(userMessage, intent string, kCards, kDocs int) Result {
	return Result{
		SkillCards: cards.RetrieveCards(r.cards, intent, kCards),
		Documents:  r.searcher.SearchDocuments(userMessage, intent, kDocs),
	}
}
