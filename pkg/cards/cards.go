// Package cards loads and filters the coping skill card corpus. Cards are
// read once from a static JSON file at startup and treated as immutable for
// the process lifetime.
package cards

import (
	"encoding/json"
	"fmt"
	"os"
)

// SkillCard is one coping technique. Identity is Title.
type SkillCard struct {
	Title  string   `json:"title"`
	Tags   []string `json:"tags"`
	Steps  []string `json:"steps"`
	Notes  string   `json:"notes"`
	Source string   `json:"source"`
}

// HasTag reports whether the card carries the given tag. Matching is exact
// and case-sensitive.
func (c SkillCard) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// LoadError reports a fatal problem with the card source file. A missing or
// malformed card file is a configuration error, not a per-request condition.
type LoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load cards %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("load cards %s: %s", e.Path, e.Reason)
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadCards reads and validates the card file. Every invocation re-reads from
// disk; callers that want caching hold onto the returned slice.
func LoadCards(path string) ([]SkillCard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Reason: "read failed", Err: err}
	}

	var loaded []SkillCard
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, &LoadError{Path: path, Reason: "invalid JSON", Err: err}
	}

	for i, c := range loaded {
		if c.Title == "" {
			return nil, &LoadError{Path: path, Reason: fmt.Sprintf("card %d is missing required field \"title\"", i)}
		}
	}

	return loaded, nil
}

// RetrieveCards returns at most k cards whose tags contain intent, preserving
// load order among matches. When nothing matches it falls back to the first k
// cards of the whole corpus so the prompt always has something to work with.
func RetrieveCards(cards []SkillCard, intent string, k int) []SkillCard {
	if k <= 0 || len(cards) == 0 {
		return nil
	}

	var matches []SkillCard
	for _, c := range cards {
		if c.HasTag(intent) {
			matches = append(matches, c)
			if len(matches) == k {
				break
			}
		}
	}
	if len(matches) > 0 {
		return matches
	}

	if k > len(cards) {
		k = len(cards)
	}
	return cards[:k]
}
