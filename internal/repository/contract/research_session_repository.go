package contract

import (
	"context"

	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ResearchSessionRepository interface {
	Create(ctx context.Context, session *entity.ResearchSession) error
	Update(ctx context.Context, session *entity.ResearchSession) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ResearchSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ResearchSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// DeactivateAll clears the active flag on every session owned by the user.
	DeactivateAll(ctx context.Context, userId uuid.UUID) error
	// TouchActivity increments message_count and bumps last_active_at.
	TouchActivity(ctx context.Context, id uuid.UUID, messageDelta int) error
}
