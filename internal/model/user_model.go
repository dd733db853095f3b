package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the singleton local profile. Single-user deployment, created on first use.
type User struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username       string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	TotalSessions  int            `gorm:"default:0"`
	TotalDocuments int            `gorm:"default:0"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
