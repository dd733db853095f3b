package dto

import (
	"github.com/google/uuid"
)

type ResearchQueryRequest struct {
	SessionId    *uuid.UUID `json:"session_id,omitempty"`
	Query        string     `json:"query" validate:"required"`
	UseArxiv     *bool      `json:"use_arxiv,omitempty"`
	UseWeb       *bool      `json:"use_web,omitempty"`
	UseDocuments *bool      `json:"use_documents,omitempty"`
}

type SourceDTO struct {
	Type  string `json:"type"` // "arxiv" | "web" | "document"
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
	ID    string `json:"id,omitempty"`
}

type ResearchQueryResponse struct {
	Answer         string      `json:"answer"`
	Sources        []SourceDTO `json:"sources"`
	SourcesCount   int         `json:"sources_count"`
	ProcessingTime float64     `json:"processing_time"`
	Confidence     float64     `json:"confidence"`
	SessionId      uuid.UUID   `json:"session_id"`
	Mode           string      `json:"mode"` // "pipeline" | "memory"
}

type QuickAnswerRequest struct {
	Query string `json:"query" validate:"required"`
}

type QuickAnswerResponse struct {
	Answer         string  `json:"answer"`
	ProcessingTime float64 `json:"processing_time"`
}
