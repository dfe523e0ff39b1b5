package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Title   string `json:"title" validate:"max=120"`
	Country string `json:"country" validate:"omitempty,len=2"`
}

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type GetAllSessionsResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Country   string     `json:"country,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type GetChatHistoryResponse struct {
	Id               uuid.UUID `json:"id"`
	UserMessage      string    `json:"user_message"`
	AssistantMessage string    `json:"assistant_message"`
	Intent           string    `json:"intent"`
	Tone             string    `json:"tone"`
	RiskLevel        string    `json:"risk_level"`
	Crisis           bool      `json:"crisis"`
	CardTitles       []string  `json:"card_titles,omitempty"`
	DocumentTitles   []string  `json:"document_titles,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type SendChatRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
	Message       string    `json:"message" validate:"required,max=4000"`
}

type SkillCardDTO struct {
	Title string   `json:"title"`
	Tags  []string `json:"tags,omitempty"`
	Steps []string `json:"steps,omitempty"`
	Notes string   `json:"notes,omitempty"`
}

type DocumentMatchDTO struct {
	Title      string  `json:"title"`
	Similarity float64 `json:"similarity"`
	Excerpt    string  `json:"excerpt"`
}

type SendChatResponse struct {
	ChatSessionId    uuid.UUID          `json:"chat_session_id"`
	TurnId           uuid.UUID          `json:"turn_id"`
	Reply            string             `json:"reply"`
	Crisis           bool               `json:"crisis"`
	Intent           string             `json:"intent"`
	Tone             string             `json:"tone"`
	RiskLevel        string             `json:"risk_level"`
	ShouldOfferSkill bool               `json:"should_offer_skill"`
	SkillCards       []SkillCardDTO     `json:"skill_cards,omitempty"`
	Documents        []DocumentMatchDTO `json:"documents,omitempty"`
	Resources        []HotlineDTO       `json:"resources,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
}

type DeleteSessionRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
}
