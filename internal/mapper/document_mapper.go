package mapper

import (
	"time"

	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/model"

	"gorm.io/gorm"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var deletedAt *time.Time
	if d.DeletedAt.Valid {
		t := d.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.Document{
		Id:           d.Id,
		UserId:       d.UserId,
		FileName:     d.FileName,
		FileType:     d.FileType,
		FilePath:     d.FilePath,
		SourceURL:    d.SourceURL,
		SizeBytes:    d.SizeBytes,
		Status:       d.Status,
		ChunkCount:   d.ChunkCount,
		ErrorMessage: d.ErrorMessage,
		UploadedAt:   d.UploadedAt,
		ProcessedAt:  d.ProcessedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
		IsDeleted:    d.DeletedAt.Valid,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if d.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *d.DeletedAt, Valid: true}
	} else if d.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	return &model.Document{
		Id:           d.Id,
		UserId:       d.UserId,
		FileName:     d.FileName,
		FileType:     d.FileType,
		FilePath:     d.FilePath,
		SourceURL:    d.SourceURL,
		SizeBytes:    d.SizeBytes,
		Status:       d.Status,
		ChunkCount:   d.ChunkCount,
		ErrorMessage: d.ErrorMessage,
		UploadedAt:   d.UploadedAt,
		ProcessedAt:  d.ProcessedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
	}
}

func (m *DocumentMapper) ToEntities(docs []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
