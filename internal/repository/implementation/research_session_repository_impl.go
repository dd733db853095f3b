package implementation

import (
	"context"
	"errors"
	"time"

	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/mapper"
	"research-assistant-be/internal/model"
	"research-assistant-be/internal/repository/contract"
	"research-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResearchSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ResearchSessionMapper
}

func NewResearchSessionRepository(db *gorm.DB) contract.ResearchSessionRepository {
	return &ResearchSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewResearchSessionMapper(),
	}
}

func (r *ResearchSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ResearchSessionRepositoryImpl) Create(ctx context.Context, session *entity.ResearchSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *ResearchSessionRepositoryImpl) Update(ctx context.Context, session *entity.ResearchSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *ResearchSessionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ResearchSession{}, id).Error
}

func (r *ResearchSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ResearchSession, error) {
	var m model.ResearchSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ResearchSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ResearchSession, error) {
	var models []*model.ResearchSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ResearchSessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ResearchSession{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ResearchSessionRepositoryImpl) DeactivateAll(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.ResearchSession{}).
		Where("user_id = ? AND is_active = ?", userId, true).
		UpdateColumn("is_active", false).Error
}

func (r *ResearchSessionRepositoryImpl) TouchActivity(ctx context.Context, id uuid.UUID, messageDelta int) error {
	return r.db.WithContext(ctx).
		Model(&model.ResearchSession{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"message_count":  gorm.Expr("message_count + ?", messageDelta),
			"last_active_at": time.Now(),
		}).Error
}
