package contract

import (
	"context"

	"teen-coach-be/internal/entity"
	"teen-coach-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatTurnRepository interface {
	Create(ctx context.Context, turn *entity.ChatTurn) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllBySessionIdUnscoped(ctx context.Context, sessionId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatTurn, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatTurn, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
