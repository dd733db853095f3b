package contract

import (
	"context"

	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredDocumentEmbedding wraps DocumentEmbedding with its similarity score
type ScoredDocumentEmbedding struct {
	Embedding  *entity.DocumentEmbedding
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type DocumentEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.DocumentEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore returns embeddings with their cosine similarity
	// scores, filtered by threshold. Only chunks of documents in "done" status
	// owned by the user are visible.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, userId uuid.UUID, threshold float64) ([]*ScoredDocumentEmbedding, error)
}
