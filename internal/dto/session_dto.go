package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Title string `json:"title" validate:"max=255"`
}

type CreateSessionResponse struct {
	Id    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type SessionResponse struct {
	Id           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	IsActive     bool       `json:"is_active"`
	MessageCount int        `json:"message_count"`
	CreatedAt    time.Time  `json:"created_at"`
	LastActiveAt *time.Time `json:"last_active_at"`
}

type ConversationTurnResponse struct {
	Id                uuid.UUID   `json:"id"`
	Role              string      `json:"role"`
	Content           string      `json:"content"`
	AgentType         string      `json:"agent_type,omitempty"`
	Sources           []SourceDTO `json:"sources,omitempty"`
	ProcessingTimeSec float64     `json:"processing_time,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
}

type SessionHistoryResponse struct {
	SessionId uuid.UUID                  `json:"session_id"`
	Turns     []ConversationTurnResponse `json:"turns"`
}
