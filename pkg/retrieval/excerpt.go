package retrieval

import (
	"strings"
	"unicode/utf8"

	"teen-coach-be/pkg/docindex"
)

const (
	// excerptLimit bounds excerpt length in characters; the marker is
	// appended on top when truncation happens.
	excerptLimit = 1200
	// minParagraphLength filters out fragments too short to count as a
	// paragraph.
	minParagraphLength = 50

	ellipsis = "..."
)

// buildExcerpt derives a bounded excerpt of content relevant to query:
// paragraphs are scored by how many query terms they contain, the best one
// plus one neighbor on each side is kept, and the result is hard-truncated
// when it still exceeds the bound. Content with no scoring paragraph falls
// back to the first two paragraphs, and content with no paragraphs at all
// falls back to a raw prefix.
func buildExcerpt(content, query string) string {
	paragraphs := splitParagraphs(content)
	if len(paragraphs) == 0 {
		return truncate(strings.TrimSpace(content), excerptLimit)
	}

	terms := docindex.Tokenize(query)
	best, bestScore := 0, 0
	for i, p := range paragraphs {
		score := countTerms(p, terms)
		if score > bestScore {
			best, bestScore = i, score
		}
	}

	var chosen []string
	if bestScore == 0 {
		end := 2
		if end > len(paragraphs) {
			end = len(paragraphs)
		}
		chosen = paragraphs[:end]
	} else {
		start := best - 1
		if start < 0 {
			start = 0
		}
		end := best + 2
		if end > len(paragraphs) {
			end = len(paragraphs)
		}
		chosen = paragraphs[start:end]
	}

	return truncate(strings.Join(chosen, "\n\n"), excerptLimit)
}

// splitParagraphs breaks content on blank lines, keeping only chunks long
// enough to count as a paragraph.
func splitParagraphs(content string) []string {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	var paragraphs []string
	for _, chunk := range strings.Split(normalized, "\n\n") {
		p := strings.TrimSpace(chunk)
		if len(p) >= minParagraphLength {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

func countTerms(paragraph string, terms []string) int {
	lower := strings.ToLower(paragraph)
	count := 0
	for _, term := range terms {
		if strings.Contains(lower, term) {
			count++
		}
	}
	return count
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	// Back off to a rune boundary so the cut never splits a character.
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit] + ellipsis
}
