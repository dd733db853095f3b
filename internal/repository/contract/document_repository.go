package contract

import (
	"context"
	"time"

	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	Update(ctx context.Context, document *entity.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SetStatus transitions the processing state. processedAt and chunkCount
	// are only written for terminal states.
	SetStatus(ctx context.Context, id uuid.UUID, status string, chunkCount int, errorMessage string, processedAt *time.Time) error
}
