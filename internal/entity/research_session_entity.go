package entity

import (
	"time"

	"github.com/google/uuid"
)

type ResearchSession struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Title        string
	IsActive     bool
	MessageCount int
	LastActiveAt time.Time
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
	IsDeleted    bool
}
