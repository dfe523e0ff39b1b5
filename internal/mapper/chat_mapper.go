package mapper

import (
	"encoding/json"
	"time"

	"teen-coach-be/internal/entity"
	"teen-coach-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChatSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Title:     s.Title,
		Country:   s.Country,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: s.DeletedAt.Valid,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	} else if s.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.ChatSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Title:     s.Title,
		Country:   s.Country,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

// Turn Mappers

func (m *ChatMapper) ChatTurnToEntity(t *model.ChatTurn) *entity.ChatTurn {
	if t == nil {
		return nil
	}

	var deletedAt *time.Time
	if t.DeletedAt.Valid {
		d := t.DeletedAt.Time
		deletedAt = &d
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		u := t.UpdatedAt
		updatedAt = &u
	}

	return &entity.ChatTurn{
		Id:               t.Id,
		ChatSessionId:    t.ChatSessionId,
		UserMessage:      t.UserMessage,
		AssistantMessage: t.AssistantMessage,
		Intent:           t.Intent,
		Tone:             t.Tone,
		RiskLevel:        t.RiskLevel,
		Crisis:           t.Crisis,
		ShouldOfferSkill: t.ShouldOfferSkill,
		IntentConfidence: t.IntentConfidence,
		ToneConfidence:   t.ToneConfidence,
		CardTitles:       jsonToTitles(t.CardTitles),
		DocumentTitles:   jsonToTitles(t.DocumentTitles),
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        updatedAt,
		DeletedAt:        deletedAt,
		IsDeleted:        t.DeletedAt.Valid,
	}
}

func (m *ChatMapper) ChatTurnToModel(t *entity.ChatTurn) *model.ChatTurn {
	if t == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if t.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *t.DeletedAt, Valid: true}
	} else if t.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	return &model.ChatTurn{
		Id:               t.Id,
		ChatSessionId:    t.ChatSessionId,
		UserMessage:      t.UserMessage,
		AssistantMessage: t.AssistantMessage,
		Intent:           t.Intent,
		Tone:             t.Tone,
		RiskLevel:        t.RiskLevel,
		Crisis:           t.Crisis,
		ShouldOfferSkill: t.ShouldOfferSkill,
		IntentConfidence: t.IntentConfidence,
		ToneConfidence:   t.ToneConfidence,
		CardTitles:       titlesToJSON(t.CardTitles),
		DocumentTitles:   titlesToJSON(t.DocumentTitles),
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        updatedAt,
		DeletedAt:        deletedAt,
	}
}

func titlesToJSON(titles []string) datatypes.JSON {
	if titles == nil {
		titles = []string{}
	}
	raw, err := json.Marshal(titles)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(raw)
}

func jsonToTitles(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var titles []string
	if err := json.Unmarshal(raw, &titles); err != nil {
		return nil
	}
	return titles
}
