package repository

import (
	"campus_voice_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) WithTx(tx *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: tx}
}

func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.DB.WithContext(ctx).Create(n).Error
}

// ListForUser returns a page of the user's notifications, newest first.
func (r *NotificationRepository) ListForUser(ctx context.Context, userID uint, unreadOnly bool, offset, limit int) ([]model.Notification, int64, error) {
	var (
		items []model.Notification
		total int64
	)

	base := r.DB.WithContext(ctx).Model(&model.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		base = base.Where("is_read = ?", false)
	}
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.Session(&gorm.Session{}).
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&total).Error
	return total, err
}

// MarkRead flags one notification owned by userID; it reports whether a row matched.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id uint) (bool, error) {
	var n model.Notification
	err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&n).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if n.IsRead {
		return true, nil
	}
	err = r.DB.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
	return err == nil, err
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}
