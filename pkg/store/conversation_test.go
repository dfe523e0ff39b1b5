package store

import (
	"fmt"
	"testing"

	"teen-coach-be/pkg/llm"

	"github.com/stretchr/testify/assert"
)

func TestAppendTurnAddsUserThenAssistant(t *testing.T) {
	conv := NewConversation("session-1", "US")
	conv.AppendTurn("hi", "hello there")

	assert.Len(t, conv.History, 2)
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "hi"}, conv.History[0])
	assert.Equal(t, llm.Message{Role: llm.RoleAssistant, Content: "hello there"}, conv.History[1])
}

func TestAppendTurnTrimsOldestWhenOverCap(t *testing.T) {
	conv := NewConversation("session-1", "US")
	for i := 0; i < 15; i++ {
		conv.AppendTurn(fmt.Sprintf("user %d", i), fmt.Sprintf("assistant %d", i))
	}

	assert.Len(t, conv.History, maxHistoryMessages)

	// The oldest exchanges fall off; the most recent one survives intact.
	assert.Equal(t, "user 14", conv.History[len(conv.History)-2].Content)
	assert.Equal(t, "assistant 14", conv.History[len(conv.History)-1].Content)
	assert.Equal(t, llm.RoleUser, conv.History[0].Role)
	assert.NotEqual(t, "user 0", conv.History[0].Content)
}

func TestNewConversationStartsEmpty(t *testing.T) {
	conv := NewConversation("session-9", "UK")

	assert.Equal(t, "session-9", conv.ID)
	assert.Equal(t, "UK", conv.Country)
	assert.Empty(t, conv.History)
}
