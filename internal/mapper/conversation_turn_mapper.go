package mapper

import (
	"encoding/json"
	"time"

	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ConversationTurnMapper struct{}

func NewConversationTurnMapper() *ConversationTurnMapper {
	return &ConversationTurnMapper{}
}

func (m *ConversationTurnMapper) ToEntity(t *model.ConversationTurn) *entity.ConversationTurn {
	if t == nil {
		return nil
	}

	var deletedAt *time.Time
	if t.DeletedAt.Valid {
		dt := t.DeletedAt.Time
		deletedAt = &dt
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		ut := t.UpdatedAt
		updatedAt = &ut
	}

	var sources []entity.Source
	if len(t.Sources) > 0 {
		// Malformed rows degrade to no sources rather than failing the read
		_ = json.Unmarshal(t.Sources, &sources)
	}

	return &entity.ConversationTurn{
		Id:                t.Id,
		SessionId:         t.SessionId,
		Role:              t.Role,
		Content:           t.Content,
		AgentType:         t.AgentType,
		Sources:           sources,
		ProcessingTimeSec: t.ProcessingTimeSec,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         updatedAt,
		DeletedAt:         deletedAt,
		IsDeleted:         t.DeletedAt.Valid,
	}
}

func (m *ConversationTurnMapper) ToModel(t *entity.ConversationTurn) *model.ConversationTurn {
	if t == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if t.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *t.DeletedAt, Valid: true}
	} else if t.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	var sources datatypes.JSON
	if len(t.Sources) > 0 {
		raw, _ := json.Marshal(t.Sources)
		sources = datatypes.JSON(raw)
	}

	return &model.ConversationTurn{
		Id:                t.Id,
		SessionId:         t.SessionId,
		Role:              t.Role,
		Content:           t.Content,
		AgentType:         t.AgentType,
		Sources:           sources,
		ProcessingTimeSec: t.ProcessingTimeSec,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         updatedAt,
		DeletedAt:         deletedAt,
	}
}

func (m *ConversationTurnMapper) ToEntities(turns []*model.ConversationTurn) []*entity.ConversationTurn {
	entities := make([]*entity.ConversationTurn, len(turns))
	for i, t := range turns {
		entities[i] = m.ToEntity(t)
	}
	return entities
}

func (m *ConversationTurnMapper) ToModels(turns []*entity.ConversationTurn) []*model.ConversationTurn {
	models := make([]*model.ConversationTurn, len(turns))
	for i, t := range turns {
		models[i] = m.ToModel(t)
	}
	return models
}
