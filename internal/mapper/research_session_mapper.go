package mapper

import (
	"time"

	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/model"

	"gorm.io/gorm"
)

type ResearchSessionMapper struct{}

func NewResearchSessionMapper() *ResearchSessionMapper {
	return &ResearchSessionMapper{}
}

func (m *ResearchSessionMapper) ToEntity(s *model.ResearchSession) *entity.ResearchSession {
	if s == nil {
		return nil
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.ResearchSession{
		Id:           s.Id,
		UserId:       s.UserId,
		Title:        s.Title,
		IsActive:     s.IsActive,
		MessageCount: s.MessageCount,
		LastActiveAt: s.LastActiveAt,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
		IsDeleted:    s.DeletedAt.Valid,
	}
}

func (m *ResearchSessionMapper) ToModel(s *entity.ResearchSession) *model.ResearchSession {
	if s == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	} else if s.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.ResearchSession{
		Id:           s.Id,
		UserId:       s.UserId,
		Title:        s.Title,
		IsActive:     s.IsActive,
		MessageCount: s.MessageCount,
		LastActiveAt: s.LastActiveAt,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
	}
}

func (m *ResearchSessionMapper) ToEntities(sessions []*model.ResearchSession) []*entity.ResearchSession {
	entities := make([]*entity.ResearchSession, len(sessions))
	for i, s := range sessions {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
