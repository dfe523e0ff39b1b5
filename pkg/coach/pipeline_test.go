package coach

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teen-coach-be/pkg/cards"
	"teen-coach-be/pkg/docindex"
	"teen-coach-be/pkg/hotlines"
	"teen-coach-be/pkg/llm"
	"teen-coach-be/pkg/retrieval"
)

// fakeProvider returns a canned response and counts calls.
type fakeProvider struct {
	response string
	err      error
	calls    int
	lastSent []llm.Message
}

func (f *fakeProvider) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	f.calls++
	f.lastSent = history
	return f.response, f.err
}

func (f *fakeProvider) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	f.calls++
	return f.response, f.err
}

var testCards = []cards.SkillCard{
	{Title: "Test-Day Reset", Tags: []string{"anxiety", "school"}, Steps: []string{"Write the worry down", "Breathe out longer than in"}},
	{Title: "5-4-3-2-1 Grounding", Tags: []string{"anxiety"}, Steps: []string{"Name 5 things you can see"}},
	{Title: "Wind-Down Routine", Tags: []string{"sleep"}, Steps: []string{"Screens off 30 minutes before bed"}},
}

var testHotlineEntries = []hotlines.Entry{
	{ID: "us-988", Name: "988 Suicide & Crisis Lifeline", Country: "US", Phone: "988", Tags: []string{"crisis"}},
	{ID: "us-ctl", Name: "Crisis Text Line", Country: "US", SMS: "Text HOME to 741741", Tags: []string{"crisis", "text"}},
}

func newTestPipeline(t *testing.T, provider llm.LLMProvider, docDir string) (*Pipeline, *fakeProvider) {
	t.Helper()
	fp, _ := provider.(*fakeProvider)
	if docDir == "" {
		docDir = t.TempDir()
	}
	library := docindex.NewLibrary(docDir, docindex.DefaultMaxFeatures, nil)
	searcher := retrieval.NewSearcher(library, 0, nil)
	retriever := retrieval.NewRetriever(testCards, searcher)
	classifier := NewClassifier(provider, nil)
	directory := hotlines.NewDirectory(testHotlineEntries)
	return NewPipeline(retriever, classifier, directory, nil), fp
}

const goodResponse = `{"intent":"anxiety","tone":"overwhelmed","risk_level":"low","should_offer_skill":true,"assistant_message":"That sounds really stressful. Want to try the Test-Day Reset together?","intent_confidence":0.9,"tone_confidence":0.8}`

func TestRunCrisisShortCircuit(t *testing.T) {
	provider := &fakeProvider{response: goodResponse}
	pipeline, fp := newTestPipeline(t, provider, "")

	out := pipeline.Run(context.Background(), TurnInput{Message: "I want to kill myself", Country: "US"})

	assert.True(t, out.Crisis)
	assert.Zero(t, fp.calls, "crisis turns must never reach the model")
	assert.Contains(t, out.Reply, "988")
	assert.Contains(t, out.Reply, "911")
	assert.True(t, out.Resources.Crisis)
	assert.NotEmpty(t, out.Resources.Matches)
	assert.Empty(t, out.Retrieval.SkillCards)
}

func TestRunOrdinaryTurn(t *testing.T) {
	provider := &fakeProvider{response: goodResponse}
	pipeline, fp := newTestPipeline(t, provider, "")

	out := pipeline.Run(context.Background(), TurnInput{Message: "I'm so anxious about my math test tomorrow"})

	assert.False(t, out.Crisis)
	assert.Equal(t, 1, fp.calls)
	assert.Equal(t, IntentAnxiety, out.Intent)
	require.NotEmpty(t, out.Retrieval.SkillCards)
	assert.Equal(t, "Test-Day Reset", out.Retrieval.SkillCards[0].Title)
	assert.Contains(t, out.Reply, "Test-Day Reset")
	assert.Equal(t, RiskLow, out.Classification.RiskLevel)
	assert.True(t, out.Classification.ShouldOfferSkill)
}

func TestRunAssemblesMessagesInOrder(t *testing.T) {
	provider := &fakeProvider{response: goodResponse}
	pipeline, fp := newTestPipeline(t, provider, "")

	history := []llm.Message{
		{Role: llm.RoleUser, Content: "hey"},
		{Role: llm.RoleAssistant, Content: "Hi! What's on your mind?"},
	}
	pipeline.Run(context.Background(), TurnInput{Message: "school is a lot right now", History: history})

	require.GreaterOrEqual(t, len(fp.lastSent), 5)
	assert.Equal(t, llm.RoleSystem, fp.lastSent[0].Role)
	assert.Contains(t, fp.lastSent[1].Content, "COPING SKILL CARDS")
	assert.Equal(t, "hey", fp.lastSent[2].Content)
	assert.Equal(t, "Hi! What's on your mind?", fp.lastSent[3].Content)
	assert.Equal(t, "school is a lot right now", fp.lastSent[4].Content)
	// the structured-output instruction rides last
	assert.Contains(t, fp.lastSent[len(fp.lastSent)-1].Content, "JSON object")
}

func TestRunFindsDocumentForLiteralQuery(t *testing.T) {
	dir := t.TempDir()
	content := "Box breathing is a calming exercise. Inhale for four counts, hold for four, exhale for four, hold for four. Repeat the cycle several times until your body settles."
	require.NoError(t, os.WriteFile(filepath.Join(dir, "breathing.txt"), []byte(content), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sleep.txt"), []byte("Keeping a steady bedtime and avoiding screens late at night improves sleep quality for most teenagers."), 0o644))

	provider := &fakeProvider{response: goodResponse}
	pipeline, _ := newTestPipeline(t, provider, dir)

	out := pipeline.Run(context.Background(), TurnInput{Message: "how does box breathing work when I feel scared"})

	require.NotEmpty(t, out.Retrieval.Documents)
	assert.Equal(t, "breathing", out.Retrieval.Documents[0].Document.Title)
	assert.Contains(t, out.ContextBlock, "REFERENCE DOCUMENTS")
	assert.Contains(t, out.ContextBlock, "Box breathing")
}

func TestRunEmptyDocumentDirectory(t *testing.T) {
	provider := &fakeProvider{response: goodResponse}
	pipeline, _ := newTestPipeline(t, provider, "")

	out := pipeline.Run(context.Background(), TurnInput{Message: "I can't fall asleep lately"})

	assert.False(t, out.Crisis)
	assert.Empty(t, out.Retrieval.Documents)
	assert.Equal(t, IntentSleep, out.Intent)
	require.NotEmpty(t, out.Retrieval.SkillCards)
	assert.Equal(t, "Wind-Down Routine", out.Retrieval.SkillCards[0].Title)
}

func TestRunIntentHintOverridesHeuristic(t *testing.T) {
	provider := &fakeProvider{response: goodResponse}
	pipeline, _ := newTestPipeline(t, provider, "")

	out := pipeline.Run(context.Background(), TurnInput{Message: "I can't fall asleep lately", IntentHint: IntentAnxiety})

	assert.Equal(t, IntentAnxiety, out.Intent)
}

func TestRunResourceRequestAttachesMatches(t *testing.T) {
	provider := &fakeProvider{response: goodResponse}
	pipeline, _ := newTestPipeline(t, provider, "")

	out := pipeline.Run(context.Background(), TurnInput{Message: "is there a hotline I could text?", Country: "US"})

	assert.False(t, out.Crisis)
	assert.True(t, out.Resources.Triggered)
	assert.False(t, out.Resources.Crisis)
	assert.NotEmpty(t, out.Resources.Matches)
}

func TestHeuristicIntent(t *testing.T) {
	tests := []struct {
		text string
		want Intent
	}{
		{"my heart racing won't stop", IntentAnxiety},
		{"I feel so hopeless and alone", IntentSadness},
		{"insomnia again, third night", IntentSleep},
		{"huge fight with my parents", IntentConflict},
		{"so much homework this week", IntentStress},
		{"", IntentStress},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, HeuristicIntent(tt.text))
		})
	}
}

func TestRunHistoryUnchangedByPipeline(t *testing.T) {
	provider := &fakeProvider{response: goodResponse}
	pipeline, _ := newTestPipeline(t, provider, "")

	history := []llm.Message{{Role: llm.RoleUser, Content: "earlier message"}}
	pipeline.Run(context.Background(), TurnInput{Message: "feeling anxious", History: history})

	require.Len(t, history, 1)
	assert.Equal(t, "earlier message", history[0].Content)
}

func TestSetRetrievalCounts(t *testing.T) {
	provider := &fakeProvider{response: goodResponse}
	pipeline, _ := newTestPipeline(t, provider, "")
	pipeline.SetRetrievalCounts(1, 1)

	out := pipeline.Run(context.Background(), TurnInput{Message: "anxiety is bad today"})
	assert.Len(t, out.Retrieval.SkillCards, 1)

	pipeline.SetRetrievalCounts(0, 0) // ignored
	out = pipeline.Run(context.Background(), TurnInput{Message: "anxiety is bad today"})
	assert.Len(t, out.Retrieval.SkillCards, 1)
}

func TestSetResourceCount(t *testing.T) {
	provider := &fakeProvider{response: goodResponse}
	pipeline, _ := newTestPipeline(t, provider, "")
	pipeline.SetResourceCount(1)

	out := pipeline.Run(context.Background(), TurnInput{Message: "is there a hotline I could text?", Country: "US"})
	assert.Len(t, out.Resources.Matches, 1)

	pipeline.SetResourceCount(0) // ignored
	out = pipeline.Run(context.Background(), TurnInput{Message: "is there a hotline I could text?", Country: "US"})
	assert.Len(t, out.Resources.Matches, 1)
}

func TestCrisisCheckRunsBeforeIntent(t *testing.T) {
	// a message that matches both a crisis pattern and intent keywords
	provider := &fakeProvider{response: goodResponse}
	pipeline, fp := newTestPipeline(t, provider, "")

	out := pipeline.Run(context.Background(), TurnInput{Message: "I'm so anxious I just want to die"})

	assert.True(t, out.Crisis)
	assert.Zero(t, fp.calls)
	assert.True(t, strings.Contains(out.Reply, "right now") || strings.Contains(out.Reply, "988"))
}
