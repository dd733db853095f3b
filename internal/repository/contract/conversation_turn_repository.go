package contract

import (
	"context"

	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ConversationTurnRepository interface {
	Create(ctx context.Context, turn *entity.ConversationTurn) error
	CreateBulk(ctx context.Context, turns []*entity.ConversationTurn) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ConversationTurn, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationTurn, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
