package safety

import (
	"regexp"
	"strings"
)

// crisisPatterns is the fixed, ordered set of phrases that trips the safety
// gate. Patterns are word-boundary anchored so that incidental substrings
// ("end" inside "friend") never match. The set is deliberately conservative:
// only direct, explicit self-harm statements belong here. Ambiguous distress
// ("I'm so sad") is handled by the coach, not the gate.
var crisisPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bsuicide\b`),
	regexp.MustCompile(`\bsuicidal\b`),
	regexp.MustCompile(`\bkill(?:ing)? myself\b`),
	regexp.MustCompile(`\bend(?:ing)? my (?:own )?life\b`),
	regexp.MustCompile(`\bself[\s-]?harm\b`),
	regexp.MustCompile(`\bself[\s-]?harming\b`),
	regexp.MustCompile(`\bhurt(?:ing)? myself\b`),
	regexp.MustCompile(`\bcut(?:ting)? myself\b`),
	regexp.MustCompile(`\boverdose\b`),
	regexp.MustCompile(`\bwant to die\b`),
	regexp.MustCompile(`\bwanna die\b`),
	regexp.MustCompile(`\bbetter off dead\b`),
	regexp.MustCompile(`\bcan'?t go on\b`),
	regexp.MustCompile(`\bjump off (?:a|the) (?:bridge|roof|building)\b`),
	regexp.MustCompile(`\bdon'?t want to (?:be alive|live)(?: anymore)?\b`),
}

// Detect reports whether text contains direct self-harm or suicide language.
// It is a pure function: deterministic, side-effect free, and safe to call on
// every user turn. Empty input is not a crisis.
func Detect(text string) bool {
	if text == "" {
		return false
	}
	t := strings.ToLower(text)
	for _, p := range crisisPatterns {
		if p.MatchString(t) {
			return true
		}
	}
	return false
}
