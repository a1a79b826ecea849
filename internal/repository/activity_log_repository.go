package repository

import (
	"campus_voice_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type ActivityLogRepository struct {
	DB *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{DB: db}
}

func (r *ActivityLogRepository) WithTx(tx *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{DB: tx}
}

func (r *ActivityLogRepository) Create(ctx context.Context, entry *model.ActivityLog) error {
	return r.DB.WithContext(ctx).Create(entry).Error
}

func (r *ActivityLogRepository) ListForEntity(ctx context.Context, entityType string, entityID uint) ([]model.ActivityLog, error) {
	var logs []model.ActivityLog
	err := r.DB.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at ASC, id ASC").
		Find(&logs).Error
	return logs, err
}

func (r *ActivityLogRepository) ListForUser(ctx context.Context, userID uint, limit int) ([]model.ActivityLog, error) {
	var logs []model.ActivityLog
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
