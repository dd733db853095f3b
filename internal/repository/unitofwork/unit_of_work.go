package unitofwork

import (
	"context"

	"research-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ResearchSessionRepository() contract.ResearchSessionRepository
	ConversationTurnRepository() contract.ConversationTurnRepository
	DocumentRepository() contract.DocumentRepository
	DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository
}
