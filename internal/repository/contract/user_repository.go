package contract

import (
	"context"

	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	IncrementSessionCount(ctx context.Context, id uuid.UUID) error
	IncrementDocumentCount(ctx context.Context, id uuid.UUID, delta int) error
}
