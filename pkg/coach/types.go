// Package coach wraps the language model boundary: it asks the model for a
// structured classification + reply, validates the result against closed
// value sets, and runs the per-turn detect/retrieve/assemble/classify
// pipeline with the safety short-circuit.
package coach

import "strings"

// Intent is the closed set of conversation topics the model may emit.
type Intent string

const (
	IntentAnxiety  Intent = "anxiety"
	IntentStress   Intent = "stress"
	IntentSadness  Intent = "sadness"
	IntentConflict Intent = "conflict"
	IntentSleep    Intent = "sleep"
	IntentOther    Intent = "other"
)

var validIntents = map[Intent]bool{
	IntentAnxiety: true, IntentStress: true, IntentSadness: true,
	IntentConflict: true, IntentSleep: true, IntentOther: true,
}

// ParseIntent normalizes a free-form model string into the closed set.
// Anything unrecognized collapses to IntentOther so malformed model output
// is caught at the boundary instead of propagated.
func ParseIntent(s string) Intent {
	i := Intent(strings.ToLower(strings.TrimSpace(s)))
	if validIntents[i] {
		return i
	}
	return IntentOther
}

// Tone is the closed set of emotional tones.
type Tone string

const (
	ToneCalm        Tone = "calm"
	ToneOverwhelmed Tone = "overwhelmed"
	TonePanicky     Tone = "panicky"
	ToneAngry       Tone = "angry"
	ToneSad         Tone = "sad"
	ToneNumb        Tone = "numb"
	ToneConfused    Tone = "confused"
	ToneOther       Tone = "other"
)

var validTones = map[Tone]bool{
	ToneCalm: true, ToneOverwhelmed: true, TonePanicky: true, ToneAngry: true,
	ToneSad: true, ToneNumb: true, ToneConfused: true, ToneOther: true,
}

func ParseTone(s string) Tone {
	t := Tone(strings.ToLower(strings.TrimSpace(s)))
	if validTones[t] {
		return t
	}
	return ToneOther
}

// RiskLevel is the model's coarse risk assessment. The deterministic crisis
// detector, not this field, is what gates the pipeline; risk is recorded for
// the persisted turn.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

var validRisks = map[RiskLevel]bool{
	RiskLow: true, RiskMedium: true, RiskHigh: true,
}

// ParseRiskLevel collapses unknown values to RiskLow: an unparseable risk
// field must not invent severity.
func ParseRiskLevel(s string) RiskLevel {
	r := RiskLevel(strings.ToLower(strings.TrimSpace(s)))
	if validRisks[r] {
		return r
	}
	return RiskLow
}

// Classification is the validated, structured model output for one turn.
type Classification struct {
	Intent           Intent    `json:"intent"`
	Tone             Tone      `json:"tone"`
	RiskLevel        RiskLevel `json:"risk_level"`
	ShouldOfferSkill bool      `json:"should_offer_skill"`
	AssistantMessage string    `json:"assistant_message"`
	IntentConfidence float64   `json:"intent_confidence"`
	ToneConfidence   float64   `json:"tone_confidence"`
}
