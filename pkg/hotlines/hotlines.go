// Package hotlines loads and queries the crisis/resource directory. It
// shares the retrieval core's design philosophy: always return something
// usable, never hard-fail a user turn.
package hotlines

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"teen-coach-be/pkg/safety"

	"github.com/agnivade/levenshtein"
)

// Entry is one hotline or support resource.
type Entry struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Country string   `json:"country"`
	Phone   string   `json:"phone"`
	SMS     string   `json:"sms"`
	Website string   `json:"website"`
	Notes   string   `json:"notes"`
	Tags    []string `json:"tags"`
}

// ScoredEntry pairs an entry with its relevance to a query.
type ScoredEntry struct {
	Score float64 `json:"score"`
	Entry Entry   `json:"entry"`
}

// Load reads the resource file. Unlike the card store, a missing hotline
// file is reported but callers typically keep running with an empty
// directory; resources are a companion feature, not the pipeline.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load hotlines %s: %w", path, err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse hotlines %s: %w", path, err)
	}
	return entries, nil
}

// Directory is an in-memory, read-only view over the loaded entries.
type Directory struct {
	entries []Entry
}

func NewDirectory(entries []Entry) *Directory {
	return &Directory{entries: entries}
}

// Entries returns the full entry list.
func (d *Directory) Entries() []Entry {
	return d.entries
}

// FindByCountry filters entries by exact country name, case-insensitive.
func (d *Directory) FindByCountry(country string) []Entry {
	if country == "" {
		return nil
	}
	c := strings.ToLower(strings.TrimSpace(country))
	var matches []Entry
	for _, e := range d.entries {
		if strings.ToLower(strings.TrimSpace(e.Country)) == c {
			matches = append(matches, e)
		}
	}
	return matches
}

// Search ranks entries against a free-text query. Scoring is a fuzzy
// similarity over the entry's searchable text plus a bonus when the query
// mentions the entry's country. With country set, entries from other
// countries are skipped entirely.
func (d *Directory) Search(query, country string, topK int) []ScoredEntry {
	if topK <= 0 {
		return nil
	}
	q := strings.ToLower(strings.TrimSpace(query))

	var scored []ScoredEntry
	for _, e := range d.entries {
		if country != "" && e.Country != "" &&
			!strings.EqualFold(strings.TrimSpace(e.Country), strings.TrimSpace(country)) {
			continue
		}
		scored = append(scored, ScoredEntry{Score: scoreEntry(e, q), Entry: e})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored
}

// scoreEntry combines name, notes, tags, website and phone into one blob and
// measures normalized edit-distance similarity against the query.
func scoreEntry(e Entry, query string) float64 {
	parts := []string{e.Name, e.Notes, strings.Join(e.Tags, " "), e.Website, e.Phone}
	text := strings.ToLower(strings.Join(parts, " "))

	score := similarity(query, text)
	if e.Country != "" && strings.Contains(query, strings.ToLower(e.Country)) {
		score += 0.15
	}
	return score
}

// similarity is a coarse fuzzy ratio in [0,1]: 1 minus the normalized
// Levenshtein distance, with a token-overlap boost so short queries against
// long entry blobs still differentiate.
func similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	dist := levenshtein.ComputeDistance(a, b)
	base := 1 - float64(dist)/float64(maxLen)
	if base < 0 {
		base = 0
	}

	// Token overlap: fraction of query tokens present in the blob.
	tokens := strings.Fields(a)
	if len(tokens) == 0 {
		return base
	}
	hits := 0
	for _, tok := range tokens {
		if strings.Contains(b, tok) {
			hits++
		}
	}
	overlap := float64(hits) / float64(len(tokens))

	return 0.4*base + 0.6*overlap
}

var resourcePattern = regexp.MustCompile(`(?i)hotline|help line|helpline|suicide|crisis|self[- ]?harm|urgent help|mental health|therapy app|counsel(ing|or)|need help|app recommendation`)

// DetectResourceIntent reports whether text looks like a request for help
// resources. Crisis language always counts.
func DetectResourceIntent(text string) bool {
	if text == "" {
		return false
	}
	if safety.Detect(text) {
		return true
	}
	return resourcePattern.MatchString(text)
}

// Resources is the per-request lookup outcome.
type Resources struct {
	Triggered bool          `json:"triggered"`
	Crisis    bool          `json:"crisis"`
	Matches   []ScoredEntry `json:"matches"`
}

// ResourcesForUser runs intent detection and, when triggered, returns the
// best matches: country-scoped results first, broadened globally until topK
// is filled, deduplicated by entry id.
func (d *Directory) ResourcesForUser(text, country string, topK int) Resources {
	crisis := safety.Detect(text)
	triggered := crisis || DetectResourceIntent(text)
	res := Resources{Triggered: triggered, Crisis: crisis}
	if !triggered {
		return res
	}

	if country != "" {
		res.Matches = d.Search(text, country, topK)
	}
	if len(res.Matches) < topK {
		seen := make(map[string]bool, len(res.Matches))
		for _, m := range res.Matches {
			seen[m.Entry.ID] = true
		}
		for _, m := range d.Search(text, "", topK) {
			if seen[m.Entry.ID] {
				continue
			}
			res.Matches = append(res.Matches, m)
			if len(res.Matches) >= topK {
				break
			}
		}
	}
	return res
}

// AsHotlines maps scored entries into the minimal shape the safety package
// accepts for the crisis message.
func AsHotlines(matches []ScoredEntry) []safety.Hotline {
	out := make([]safety.Hotline, 0, len(matches))
	for _, m := range matches {
		out = append(out, safety.Hotline{
			Name:  m.Entry.Name,
			Phone: m.Entry.Phone,
			SMS:   m.Entry.SMS,
		})
	}
	return out
}
