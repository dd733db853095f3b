package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	FileName     string
	FileType     string
	FilePath     string
	SourceURL    string
	SizeBytes    int64
	Status       string
	ChunkCount   int
	ErrorMessage string
	UploadedAt   time.Time
	ProcessedAt  *time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
	IsDeleted    bool
}

type DocumentEmbedding struct {
	Id             uuid.UUID
	DocumentId     uuid.UUID
	ChunkIndex     int
	ChunkText      string
	EmbeddingValue []float32
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
