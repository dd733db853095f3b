package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document lifecycle: pending -> processing -> done | failed.
type Document struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;index"`
	FileName     string    `gorm:"type:varchar(255);not null"`
	FileType     string    `gorm:"type:varchar(20);not null"`
	FilePath     string    `gorm:"type:text"`
	SourceURL    string    `gorm:"type:text"`
	SizeBytes    int64     `gorm:"default:0"`
	Status       string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	ChunkCount   int       `gorm:"default:0"`
	ErrorMessage string    `gorm:"type:text"`
	UploadedAt   time.Time `gorm:"autoCreateTime"`
	ProcessedAt  *time.Time
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
