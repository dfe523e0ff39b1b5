package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatTurn is one user message and the reply it received, together with the
// classification recorded for that turn.
type ChatTurn struct {
	Id               uuid.UUID
	ChatSessionId    uuid.UUID
	UserMessage      string
	AssistantMessage string
	Intent           string
	Tone             string
	RiskLevel        string
	Crisis           bool
	ShouldOfferSkill bool
	IntentConfidence float64
	ToneConfidence   float64
	CardTitles       []string
	DocumentTitles   []string
	CreatedAt        time.Time
	UpdatedAt        *time.Time
	DeletedAt        *time.Time
	IsDeleted        bool
}
