package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type IngestURLRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type UploadDocumentResponse struct {
	Id       uuid.UUID `json:"id"`
	FileName string    `json:"file_name"`
	Status   string    `json:"status"`
}

type DocumentResponse struct {
	Id           uuid.UUID  `json:"id"`
	FileName     string     `json:"file_name"`
	FileType     string     `json:"file_type"`
	SourceURL    string     `json:"source_url,omitempty"`
	SizeBytes    int64      `json:"size_bytes"`
	Status       string     `json:"status"`
	ChunkCount   int        `json:"chunk_count"`
	ErrorMessage string     `json:"error_message,omitempty"`
	UploadedAt   time.Time  `json:"uploaded_at"`
	ProcessedAt  *time.Time `json:"processed_at,omitempty"`
}

type DocumentChunkResponse struct {
	ChunkIndex int    `json:"chunk_index"`
	ChunkText  string `json:"chunk_text"`
}

type DocumentChunksResponse struct {
	DocumentId uuid.UUID               `json:"document_id"`
	FileName   string                  `json:"file_name"`
	Chunks     []DocumentChunkResponse `json:"chunks"`
}

// PublishProcessDocumentMessage is the async processing queue payload
type PublishProcessDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}

// --- Upload Limit Error Types ---

// LimitExceededError carries the size details of a rejected upload
type LimitExceededError struct {
	LimitBytes int64 `json:"limit_bytes"`
	SizeBytes  int64 `json:"size_bytes"`
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("file size %d exceeds the %d byte limit", e.SizeBytes, e.LimitBytes)
}

// UnsupportedFileTypeError is returned for extensions outside the allow list
type UnsupportedFileTypeError struct {
	Extension string `json:"extension"`
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.Extension)
}
