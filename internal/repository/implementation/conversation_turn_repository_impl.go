package implementation

import (
	"context"
	"errors"

	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/mapper"
	"research-assistant-be/internal/model"
	"research-assistant-be/internal/repository/contract"
	"research-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConversationTurnRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationTurnMapper
}

func NewConversationTurnRepository(db *gorm.DB) contract.ConversationTurnRepository {
	return &ConversationTurnRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationTurnMapper(),
	}
}

func (r *ConversationTurnRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ConversationTurnRepositoryImpl) Create(ctx context.Context, turn *entity.ConversationTurn) error {
	m := r.mapper.ToModel(turn)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*turn = *r.mapper.ToEntity(m)
	return nil
}

func (r *ConversationTurnRepositoryImpl) CreateBulk(ctx context.Context, turns []*entity.ConversationTurn) error {
	if len(turns) == 0 {
		return nil
	}
	models := r.mapper.ToModels(turns)
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*turns[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *ConversationTurnRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ConversationTurn{}, id).Error
}

func (r *ConversationTurnRepositoryImpl) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionId).Delete(&model.ConversationTurn{}).Error
}

func (r *ConversationTurnRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ConversationTurn, error) {
	var m model.ConversationTurn
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ConversationTurnRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationTurn, error) {
	var models []*model.ConversationTurn
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ConversationTurnRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ConversationTurn{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
