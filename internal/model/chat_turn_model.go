package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ChatTurn struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserMessage      string         `gorm:"type:text;not null"`
	AssistantMessage string         `gorm:"type:text;not null"`
	Intent           string         `gorm:"type:varchar(32);not null"`
	Tone             string         `gorm:"type:varchar(32);not null"`
	RiskLevel        string         `gorm:"type:varchar(16);not null"`
	Crisis           bool           `gorm:"not null;default:false"`
	ShouldOfferSkill bool           `gorm:"not null;default:false"`
	IntentConfidence float64        `gorm:"type:double precision"`
	ToneConfidence   float64        `gorm:"type:double precision"`
	CardTitles       datatypes.JSON `gorm:"type:jsonb"`
	DocumentTitles   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (ChatTurn) TableName() string {
	return "chat_turns"
}
