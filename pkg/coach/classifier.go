package coach

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"teen-coach-be/pkg/llm"
)

const classifierInstruction = `After your reply, also classify this turn. Respond ONLY with a JSON object:
{
  "intent": "anxiety|stress|sadness|conflict|sleep|other",
  "tone": "calm|overwhelmed|panicky|angry|sad|numb|confused|other",
  "risk_level": "low|medium|high",
  "should_offer_skill": true,
  "assistant_message": "your full reply to the user",
  "intent_confidence": 0.0,
  "tone_confidence": 0.0
}
assistant_message carries the actual supportive reply, written per the system prompt. No text outside the JSON object.`

// fallbackReply is used whenever the model output cannot be parsed into a
// valid classification.
const fallbackReply = "I'm having a little trouble putting my thoughts together right now, but I'm still here with you. Could you tell me a bit more about what's going on?"

// placeholderReply is returned when no model is configured at all.
const placeholderReply = "Thanks for sharing that with me. I'm running without a language model right now, so I can't give you a full reply, but the coping cards and resources here are still yours to use."

// rawClassification mirrors the JSON the model emits before validation.
type rawClassification struct {
	Intent           string  `json:"intent"`
	Tone             string  `json:"tone"`
	RiskLevel        string  `json:"risk_level"`
	ShouldOfferSkill bool    `json:"should_offer_skill"`
	AssistantMessage string  `json:"assistant_message"`
	IntentConfidence float64 `json:"intent_confidence"`
	ToneConfidence   float64 `json:"tone_confidence"`
}

// Classifier drives one structured chat completion per turn.
type Classifier struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

// NewClassifier accepts a nil provider; in that mode every turn gets the
// placeholder reply instead of a model call.
func NewClassifier(provider llm.LLMProvider, logger *log.Logger) *Classifier {
	if logger == nil {
		logger = log.Default()
	}
	return &Classifier{provider: provider, logger: logger}
}

// Classify sends the assembled messages to the model and validates the
// structured result. Any failure, transport or parse, degrades to a neutral
// low-risk classification with the fallback reply rather than an error.
func (c *Classifier) Classify(ctx context.Context, messages []llm.Message) Classification {
	if c.provider == nil {
		return Classification{
			Intent:           IntentOther,
			Tone:             ToneOther,
			RiskLevel:        RiskLow,
			AssistantMessage: placeholderReply,
		}
	}

	augmented := make([]llm.Message, 0, len(messages)+1)
	augmented = append(augmented, messages...)
	augmented = append(augmented, llm.Message{Role: llm.RoleSystem, Content: classifierInstruction})

	raw, err := c.provider.Chat(ctx, augmented, llm.WithTemperature(0.4), llm.WithJSONOutput())
	if err != nil {
		c.logger.Printf("[WARN] Classifier: model call failed: %v", err)
		return neutralClassification()
	}

	parsed, ok := parseClassification(raw)
	if !ok {
		c.logger.Printf("[WARN] Classifier: unparseable model output (%d bytes)", len(raw))
		return neutralClassification()
	}
	return parsed
}

func neutralClassification() Classification {
	return Classification{
		Intent:           IntentOther,
		Tone:             ToneOther,
		RiskLevel:        RiskLow,
		AssistantMessage: fallbackReply,
	}
}

// parseClassification extracts the first JSON object from the model output
// and validates every field against the closed sets.
func parseClassification(raw string) (Classification, bool) {
	payload := extractJSON(raw)
	if payload == "" {
		return Classification{}, false
	}

	var rc rawClassification
	if err := json.Unmarshal([]byte(payload), &rc); err != nil {
		return Classification{}, false
	}
	if strings.TrimSpace(rc.AssistantMessage) == "" {
		return Classification{}, false
	}

	return Classification{
		Intent:           ParseIntent(rc.Intent),
		Tone:             ParseTone(rc.Tone),
		RiskLevel:        ParseRiskLevel(rc.RiskLevel),
		ShouldOfferSkill: rc.ShouldOfferSkill,
		AssistantMessage: strings.TrimSpace(rc.AssistantMessage),
		IntentConfidence: clampUnit(rc.IntentConfidence),
		ToneConfidence:   clampUnit(rc.ToneConfidence),
	}, true
}

// extractJSON pulls the outermost {...} span out of model output that may be
// wrapped in prose or markdown fences.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return s[start : end+1]
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
