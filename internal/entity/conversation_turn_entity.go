package entity

import (
	"time"

	"github.com/google/uuid"
)

// Source identifies where a piece of research evidence came from.
type Source struct {
	Type  string `json:"type"` // "arxiv", "web" or "document"
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
	ID    string `json:"id,omitempty"`
}

type ConversationTurn struct {
	Id                uuid.UUID
	SessionId         uuid.UUID
	Role              string
	Content           string
	AgentType         string
	Sources           []Source
	ProcessingTimeSec float64
	CreatedAt         time.Time
	UpdatedAt         *time.Time
	DeletedAt         *time.Time
	IsDeleted         bool
}
