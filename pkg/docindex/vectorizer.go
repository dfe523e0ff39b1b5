package docindex

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Vectorizer is a TF-IDF bag-of-n-grams model: unigrams and bigrams over a
// bounded vocabulary with English stop words removed. The configuration is a
// precision/recall trade-off tuned for short supportive-document corpora.
type Vectorizer struct {
	maxFeatures int
	vocabulary  map[string]int
	idf         []float64
}

// DefaultMaxFeatures bounds the fitted vocabulary size.
const DefaultMaxFeatures = 1000

var tokenPattern = regexp.MustCompile(`[a-z0-9]{2,}`)

// NewVectorizer creates an unfitted vectorizer. maxFeatures <= 0 falls back
// to DefaultMaxFeatures.
func NewVectorizer(maxFeatures int) *Vectorizer {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}
	return &Vectorizer{maxFeatures: maxFeatures}
}

// Tokenize lowercases text, keeps alphanumeric tokens of two or more
// characters, and drops English stop words. Exported because the retriever
// reuses the exact same tokenization for excerpt scoring.
func Tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if stopWords[tok] {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// ngrams expands a token stream into unigrams plus adjacent bigrams.
func ngrams(tokens []string) []string {
	grams := make([]string, 0, len(tokens)*2)
	grams = append(grams, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		grams = append(grams, tokens[i]+" "+tokens[i+1])
	}
	return grams
}

// Fit builds the vocabulary and IDF weights from the corpus. When the corpus
// produces more distinct terms than maxFeatures, the most frequent terms
// across the corpus win; ties break alphabetically so fitting stays
// deterministic.
func (v *Vectorizer) Fit(corpus []string) {
	docFreq := make(map[string]int)
	corpusFreq := make(map[string]int)

	for _, text := range corpus {
		grams := ngrams(Tokenize(text))
		seen := make(map[string]bool, len(grams))
		for _, g := range grams {
			corpusFreq[g]++
			if !seen[g] {
				docFreq[g]++
				seen[g] = true
			}
		}
	}

	terms := make([]string, 0, len(corpusFreq))
	for term := range corpusFreq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if corpusFreq[terms[i]] != corpusFreq[terms[j]] {
			return corpusFreq[terms[i]] > corpusFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > v.maxFeatures {
		terms = terms[:v.maxFeatures]
	}

	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		v.vocabulary[term] = i
		// Smoothed IDF; keeps weights finite for terms present in every doc.
		v.idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
}

// VocabularySize returns the number of fitted terms.
func (v *Vectorizer) VocabularySize() int {
	return len(v.vocabulary)
}

// Transform maps text onto the fitted vocabulary as an L2-normalized TF-IDF
// vector. Text sharing no terms with the vocabulary yields a zero vector.
func (v *Vectorizer) Transform(text string) []float64 {
	vec := make([]float64, len(v.idf))
	for _, g := range ngrams(Tokenize(text)) {
		if idx, ok := v.vocabulary[g]; ok {
			vec[idx]++
		}
	}

	var norm float64
	for i := range vec {
		vec[i] *= v.idf[i]
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// CosineSimilarity over vectors produced by Transform. Both sides are
// already unit length, so this is a plain dot product guarded for zeros.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot
}
