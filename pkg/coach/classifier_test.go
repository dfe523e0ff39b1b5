package coach

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"teen-coach-be/pkg/llm"
)

type erroringProvider struct{}

func (erroringProvider) Chat(context.Context, []llm.Message, ...llm.Option) (string, error) {
	return "", errors.New("connection refused")
}

func (erroringProvider) Generate(context.Context, string, ...llm.Option) (string, error) {
	return "", errors.New("connection refused")
}

func TestClassifyValidOutput(t *testing.T) {
	provider := &fakeProvider{response: goodResponse}
	c := NewClassifier(provider, nil)

	got := c.Classify(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})

	assert.Equal(t, IntentAnxiety, got.Intent)
	assert.Equal(t, ToneOverwhelmed, got.Tone)
	assert.Equal(t, RiskLow, got.RiskLevel)
	assert.True(t, got.ShouldOfferSkill)
	assert.InDelta(t, 0.9, got.IntentConfidence, 1e-9)
}

func TestClassifyStripsMarkdownFence(t *testing.T) {
	provider := &fakeProvider{response: "Sure, here it is:\n```json\n" + goodResponse + "\n```"}
	c := NewClassifier(provider, nil)

	got := c.Classify(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})
	assert.Equal(t, IntentAnxiety, got.Intent)
	assert.Contains(t, got.AssistantMessage, "Test-Day Reset")
}

func TestClassifyFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"plain prose", "I think you should take a deep breath."},
		{"broken json", `{"intent": "anxiety", "tone":`},
		{"empty message", `{"intent":"anxiety","tone":"calm","risk_level":"low","assistant_message":"   "}`},
		{"empty output", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(&fakeProvider{response: tt.response}, nil)
			got := c.Classify(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})
			assert.Equal(t, IntentOther, got.Intent)
			assert.Equal(t, RiskLow, got.RiskLevel)
			assert.Equal(t, fallbackReply, got.AssistantMessage)
		})
	}
}

func TestClassifyProviderError(t *testing.T) {
	c := NewClassifier(erroringProvider{}, nil)
	got := c.Classify(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})
	assert.Equal(t, fallbackReply, got.AssistantMessage)
	assert.Equal(t, RiskLow, got.RiskLevel)
}

func TestClassifyNilProvider(t *testing.T) {
	c := NewClassifier(nil, nil)
	got := c.Classify(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})
	assert.Equal(t, placeholderReply, got.AssistantMessage)
	assert.Equal(t, IntentOther, got.Intent)
}

func TestClassifyNormalizesFields(t *testing.T) {
	resp := `{"intent":" ANXIETY ","tone":"spooked","risk_level":"catastrophic","assistant_message":"  ok, let's slow down.  ","intent_confidence":1.7,"tone_confidence":-0.2}`
	c := NewClassifier(&fakeProvider{response: resp}, nil)

	got := c.Classify(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})

	assert.Equal(t, IntentAnxiety, got.Intent)
	assert.Equal(t, ToneOther, got.Tone)
	assert.Equal(t, RiskLow, got.RiskLevel)
	assert.Equal(t, "ok, let's slow down.", got.AssistantMessage)
	assert.Equal(t, 1.0, got.IntentConfidence)
	assert.Equal(t, 0.0, got.ToneConfidence)
}

func TestParseEnums(t *testing.T) {
	assert.Equal(t, IntentSleep, ParseIntent("sleep"))
	assert.Equal(t, IntentOther, ParseIntent("existential dread"))
	assert.Equal(t, TonePanicky, ParseTone("Panicky"))
	assert.Equal(t, ToneOther, ParseTone(""))
	assert.Equal(t, RiskHigh, ParseRiskLevel("HIGH"))
	assert.Equal(t, RiskLow, ParseRiskLevel("unknown"))
}
