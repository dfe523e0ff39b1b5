package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teen-coach-be/pkg/cards"
	"teen-coach-be/pkg/docindex"
	"teen-coach-be/pkg/llm"
	"teen-coach-be/pkg/retrieval"
)

func TestFormatCombinedContextSections(t *testing.T) {
	result := retrieval.Result{
		SkillCards: []cards.SkillCard{
			{
				Title:  "Box Breathing",
				Tags:   []string{"anxiety", "panic"},
				Steps:  []string{"Inhale for 4", "Hold for 4", "Exhale for 4"},
				Notes:  "Works best sitting down.",
				Source: "coach handbook",
			},
		},
		Documents: []retrieval.DocumentMatch{
			{
				Document: docindex.Document{Title: "grounding", Content: "ignored here"},
				Excerpt:  "Name five things you can see around you.",
			},
		},
	}

	got := FormatCombinedContext(result)

	assert.Contains(t, got, "=== COPING SKILL CARDS (use only these techniques) ===")
	assert.Contains(t, got, "=== REFERENCE DOCUMENTS ===")
	assert.Contains(t, got, "Card: Box Breathing")
	assert.Contains(t, got, "When: anxiety, panic")
	assert.Contains(t, got, "- Inhale for 4")
	assert.Contains(t, got, "Notes: Works best sitting down.")
	assert.Contains(t, got, "Source: coach handbook")
	assert.Contains(t, got, "Document: grounding")
	assert.Contains(t, got, "Name five things you can see around you.")
	assert.NotContains(t, got, "ignored here", "documents render excerpts, not full content")
}

func TestFormatCombinedContextEmpty(t *testing.T) {
	got := FormatCombinedContext(retrieval.Result{})

	assert.Contains(t, got, "=== COPING SKILL CARDS (use only these techniques) ===")
	assert.Contains(t, got, "=== REFERENCE DOCUMENTS ===")
	assert.Equal(t, 2, strings.Count(got, "(none available)"))
}

func TestFormatCombinedContextMissingOptionalFields(t *testing.T) {
	result := retrieval.Result{
		SkillCards: []cards.SkillCard{{Title: "Bare Card"}},
	}

	got := FormatCombinedContext(result)

	assert.Contains(t, got, "Card: Bare Card")
	assert.Contains(t, got, "When: \n")
	assert.Contains(t, got, "Notes: \n")
}

func TestBuildMessagesOrder(t *testing.T) {
	history := []llm.Message{
		{Role: llm.RoleUser, Content: "first"},
		{Role: llm.RoleAssistant, Content: "second"},
	}

	got := BuildMessages("CONTEXT", history, "current question")

	require.Len(t, got, 5)
	assert.Equal(t, llm.RoleSystem, got[0].Role)
	assert.Equal(t, SystemPrompt, got[0].Content)
	assert.Equal(t, llm.RoleSystem, got[1].Role)
	assert.Equal(t, "Context for this turn:\n\nCONTEXT", got[1].Content)
	assert.Equal(t, "first", got[2].Content)
	assert.Equal(t, "second", got[3].Content)
	assert.Equal(t, llm.RoleUser, got[4].Role)
	assert.Equal(t, "current question", got[4].Content)
}

func TestBuildMessagesNoHistory(t *testing.T) {
	got := BuildMessages("CONTEXT", nil, "hello")

	require.Len(t, got, 3)
	assert.Equal(t, llm.RoleUser, got[2].Role)
}
