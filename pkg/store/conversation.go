// Package store holds the per-session conversation state kept in memory
// between turns.
package store

import (
	"teen-coach-be/pkg/llm"
)

// maxHistoryMessages bounds how much history is replayed into the prompt.
const maxHistoryMessages = 20

// Conversation is the working state for one chat session.
type Conversation struct {
	ID      string
	Country string
	History []llm.Message
}

func NewConversation(id, country string) *Conversation {
	return &Conversation{
		ID:      id,
		Country: country,
	}
}

// AppendTurn records a completed exchange, trimming the oldest messages once
// the history cap is reached.
func (c *Conversation) AppendTurn(userMessage, assistantMessage string) {
	c.History = append(c.History,
		llm.Message{Role: llm.RoleUser, Content: userMessage},
		llm.Message{Role: llm.RoleAssistant, Content: assistantMessage},
	)
	if len(c.History) > maxHistoryMessages {
		c.History = c.History[len(c.History)-maxHistoryMessages:]
	}
}
