package unitofwork

import (
	"context"

	"teen-coach-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatSessionRepository() contract.ChatSessionRepository
	ChatTurnRepository() contract.ChatTurnRepository
}
