// Package prompt turns retrieved context into the request payload handed to
// the model client. Formatting is deterministic and side-effect free.
package prompt

import (
	"fmt"
	"strings"

	"teen-coach-be/pkg/cards"
	"teen-coach-be/pkg/llm"
	"teen-coach-be/pkg/retrieval"
)

// FormatCombinedContext renders retrieved skill cards and document excerpts
// under two labeled sections. Absent fields render as empty values; the
// formatter never fails.
func FormatCombinedContext(result retrieval.Result) string {
	var b strings.Builder

	b.WriteString("=== COPING SKILL CARDS (use only these techniques) ===\n\n")
	if len(result.SkillCards) == 0 {
		b.WriteString("(none available)\n")
	}
	for i, c := range result.SkillCards {
		if i > 0 {
			b.WriteString("\n")
		}
		writeCardBlock(&b, c)
	}

	b.WriteString("\n=== REFERENCE DOCUMENTS ===\n\n")
	if len(result.Documents) == 0 {
		b.WriteString("(none available)\n")
	}
	for i, d := range result.Documents {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("Document: %s\n", d.Document.Title))
		b.WriteString(fmt.Sprintf("Excerpt:\n%s\n", d.Excerpt))
	}

	return b.String()
}

func writeCardBlock(b *strings.Builder, c cards.SkillCard) {
	b.WriteString(fmt.Sprintf("Card: %s\n", c.Title))
	b.WriteString(fmt.Sprintf("When: %s\n", strings.Join(c.Tags, ", ")))
	b.WriteString("Steps:\n")
	for _, s := range c.Steps {
		b.WriteString(fmt.Sprintf("- %s\n", s))
	}
	b.WriteString(fmt.Sprintf("Notes: %s\n", c.Notes))
	b.WriteString(fmt.Sprintf("Source: %s\n", c.Source))
}

// BuildMessages assembles the full chat payload: system instruction, context
// block, prior turns, then the current user message.
func BuildMessages(contextBlock string, history []llm.Message, userMessage string) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+3)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: SystemPrompt})
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: "Context for this turn:\n\n" + contextBlock})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: userMessage})
	return messages
}
