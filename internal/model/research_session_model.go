package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResearchSession struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title        string    `gorm:"type:varchar(255);not null"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;index"`
	IsActive     bool      `gorm:"default:false;index"`
	MessageCount int       `gorm:"default:0"`
	LastActiveAt time.Time
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (ResearchSession) TableName() string {
	return "research_sessions"
}
