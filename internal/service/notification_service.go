package service

import (
	"campus_voice_backend/internal/config"
	"campus_voice_backend/internal/model"
	"campus_voice_backend/internal/permission"
	"campus_voice_backend/internal/repository"
	"campus_voice_backend/internal/util"
	"context"
)

type NotificationService struct {
	NotificationRepo *repository.NotificationRepository
	Cfg              *config.Config
}

func NewNotificationService(notificationRepo *repository.NotificationRepository, cfg *config.Config) *NotificationService {
	return &NotificationService{
		NotificationRepo: notificationRepo,
		Cfg:              cfg,
	}
}

func (s *NotificationService) List(ctx context.Context, actor Actor, unreadOnly bool, page, limit int) ([]model.Notification, util.Pagination, error) {
	if err := actor.authorize(permission.ManageInbox); err != nil {
		return nil, util.Pagination{}, err
	}

	page, limit = util.NormalizePage(page, limit, s.Cfg.Feedback.DefaultPageSize, s.Cfg.Feedback.MaxPageSize)
	items, total, err := s.NotificationRepo.ListForUser(ctx, actor.UserID, unreadOnly, util.Offset(page, limit), limit)
	if err != nil {
		return nil, util.Pagination{}, err
	}
	return items, util.NewPagination(page, limit, total), nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, actor Actor) (int64, error) {
	if err := actor.authorize(permission.ManageInbox); err != nil {
		return 0, err
	}
	return s.NotificationRepo.CountUnread(ctx, actor.UserID)
}

// MarkRead flags one of the caller's notifications; other users' notifications are not found.
func (s *NotificationService) MarkRead(ctx context.Context, actor Actor, id uint) error {
	if err := actor.authorize(permission.ManageInbox); err != nil {
		return err
	}
	ok, err := s.NotificationRepo.MarkRead(ctx, actor.UserID, id)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrNotifNotFound
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, actor Actor) (int64, error) {
	if err := actor.authorize(permission.ManageInbox); err != nil {
		return 0, err
	}
	return s.NotificationRepo.MarkAllRead(ctx, actor.UserID)
}
