package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id             uuid.UUID
	Username       string
	TotalSessions  int
	TotalDocuments int
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
