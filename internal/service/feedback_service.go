package service

import (
	"campus_voice_backend/internal/config"
	"campus_voice_backend/internal/model"
	"campus_voice_backend/internal/permission"
	"campus_voice_backend/internal/repository"
	"campus_voice_backend/internal/util"
	"campus_voice_backend/pkg/logger"
	"campus_voice_backend/pkg/mail"
	"campus_voice_backend/pkg/monitoring"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Attachment is one uploaded file as received from the client.
type Attachment struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

type SubmitInput struct {
	Title       string                 `json:"title" validate:"required,max=255"`
	Description string                 `json:"description" validate:"required"`
	CategoryID  uint                   `json:"categoryId" validate:"required"`
	Location    *string                `json:"location"`
	Priority    model.FeedbackPriority `json:"priority"`
	IsAnonymous bool                   `json:"isAnonymous"`
}

// FeedbackQuery describes one listing request. It is passed by value and never mutated in place.
type FeedbackQuery struct {
	All        bool
	Owner      *uint
	Status     *model.FeedbackStatus
	Priority   *model.FeedbackPriority
	CategoryID *uint
	Page       int
	Limit      int
}

type TransitionInput struct {
	Status        model.FeedbackStatus `json:"status"`
	AdminResponse *string              `json:"adminResponse"`
}

type Stats struct {
	Total               int64 `json:"total"`
	Pending             int64 `json:"pending"`
	UnderReview         int64 `json:"underReview"`
	InProgress          int64 `json:"inProgress"`
	Resolved            int64 `json:"resolved"`
	Rejected            int64 `json:"rejected"`
	UnreadNotifications int64 `json:"unreadNotifications"`
}

type FeedbackService struct {
	DB               *gorm.DB
	FeedbackRepo     *repository.FeedbackRepository
	CategoryRepo     *repository.CategoryRepository
	CommentRepo      *repository.CommentRepository
	VoteRepo         *repository.VoteRepository
	NotificationRepo *repository.NotificationRepository
	ActivityRepo     *repository.ActivityLogRepository
	Storage          StorageProvider
	Mailer           mail.Mailer
	Cfg              *config.Config
}

func NewFeedbackService(
	db *gorm.DB,
	categoryRepo *repository.CategoryRepository,
	storage StorageProvider,
	mailer mail.Mailer,
	cfg *config.Config,
) *FeedbackService {
	return &FeedbackService{
		DB:               db,
		FeedbackRepo:     repository.NewFeedbackRepository(db),
		CategoryRepo:     categoryRepo,
		CommentRepo:      repository.NewCommentRepository(db),
		VoteRepo:         repository.NewVoteRepository(db),
		NotificationRepo: repository.NewNotificationRepository(db),
		ActivityRepo:     repository.NewActivityLogRepository(db),
		Storage:          storage,
		Mailer:           mailer,
		Cfg:              cfg,
	}
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrFeedbackNotFound
	}
	return err
}

func activityDetails(v interface{}) datatypes.JSON {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

func (s *FeedbackService) checkAttachments(files []Attachment) error {
	if len(files) > s.Cfg.Upload.MaxFiles {
		return fmt.Errorf("%w: at most %d attachments", util.ErrTooManyFiles, s.Cfg.Upload.MaxFiles)
	}
	for _, f := range files {
		if f.Size > s.Cfg.Upload.MaxFileSize {
			return util.ErrFileTooLarge
		}
		if !util.MimeAllowed(f.ContentType, s.Cfg.Upload.AllowedTypes) {
			return fmt.Errorf("%w: %s", util.ErrInvalidFileType, f.Filename)
		}
	}
	return nil
}

func (s *FeedbackService) storeAttachments(ctx context.Context, files []Attachment) ([]string, error) {
	names := make([]string, 0, len(files))
	for _, f := range files {
		name := util.AttachmentName(f.Filename)
		rc, err := f.Open()
		if err != nil {
			s.discardAttachments(ctx, names)
			return nil, err
		}
		_, err = s.Storage.Upload(ctx, name, rc, f.Size, util.BaseMimeType(f.ContentType))
		rc.Close()
		if err != nil {
			s.discardAttachments(ctx, names)
			return nil, fmt.Errorf("store attachment %s: %w", f.Filename, err)
		}
		names = append(names, name)
	}
	return names, nil
}

func (s *FeedbackService) discardAttachments(ctx context.Context, names []string) {
	for _, name := range names {
		if err := s.Storage.Delete(ctx, name); err != nil {
			logger.Log.Warn("Failed to remove orphaned attachment", zap.String("file", name), zap.Error(err))
		}
	}
}

// Submit creates a PENDING feedback record owned by the actor.
func (s *FeedbackService) Submit(ctx context.Context, actor Actor, in SubmitInput, files []Attachment) (*model.Feedback, error) {
	if err := actor.authorize(permission.SubmitFeedback); err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}
	if !in.Priority.Valid() {
		return nil, validationError("invalid priority")
	}
	if in.Location != nil {
		loc := strings.TrimSpace(*in.Location)
		if loc == "" {
			in.Location = nil
		} else {
			in.Location = &loc
		}
	}

	if _, err := s.CategoryRepo.FindActiveByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, validationError("invalid category")
		}
		return nil, err
	}

	if err := s.checkAttachments(files); err != nil {
		return nil, err
	}
	names, err := s.storeAttachments(ctx, files)
	if err != nil {
		return nil, err
	}

	feedback := &model.Feedback{
		UserID:      actor.UserID,
		CategoryID:  in.CategoryID,
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Priority:    in.Priority,
		Status:      model.StatusPending,
		IsAnonymous: in.IsAnonymous,
	}
	if err := feedback.SetAttachments(names); err != nil {
		s.discardAttachments(ctx, names)
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.FeedbackRepo.WithTx(tx).Create(ctx, feedback); err != nil {
			return err
		}
		return s.ActivityRepo.WithTx(tx).Create(ctx, &model.ActivityLog{
			UserID:     &actor.UserID,
			Action:     model.ActionSubmitFeedback,
			EntityType: model.EntityFeedback,
			EntityID:   &feedback.ID,
			IPAddress:  actor.Meta.IPAddress,
			UserAgent:  actor.Meta.UserAgent,
		})
	})
	if err != nil {
		s.discardAttachments(ctx, names)
		return nil, err
	}

	monitoring.FeedbackSubmitted.WithLabelValues(string(feedback.Priority)).Inc()
	logger.Log.Info("Feedback submitted",
		zap.Uint("feedbackID", feedback.ID),
		zap.Uint("userID", actor.UserID),
		zap.Int("attachments", len(names)),
	)

	return s.FeedbackRepo.FindWithSummary(ctx, feedback.ID)
}

// List returns one page of feedback. Non-admin scope is always restricted to the caller.
func (s *FeedbackService) List(ctx context.Context, actor Actor, q FeedbackQuery) ([]model.Feedback, util.Pagination, error) {
	filter := repository.FeedbackFilter{
		Status:     q.Status,
		CategoryID: q.CategoryID,
	}
	if q.All {
		if err := actor.authorize(permission.ListAllFeedback); err != nil {
			return nil, util.Pagination{}, err
		}
		filter.UserID = q.Owner
		filter.Priority = q.Priority
	} else {
		if err := actor.authorize(permission.ListOwnFeedback); err != nil {
			return nil, util.Pagination{}, err
		}
		owner := actor.UserID
		filter.UserID = &owner
	}

	if filter.Status != nil && !filter.Status.Valid() {
		return nil, util.Pagination{}, validationError("invalid status")
	}
	if filter.Priority != nil && !filter.Priority.Valid() {
		return nil, util.Pagination{}, validationError("invalid priority")
	}

	page, limit := util.NormalizePage(q.Page, q.Limit, s.Cfg.Feedback.DefaultPageSize, s.Cfg.Feedback.MaxPageSize)
	items, total, err := s.FeedbackRepo.List(ctx, filter, util.Offset(page, limit), limit, q.All)
	if err != nil {
		return nil, util.Pagination{}, err
	}

	ids := make([]uint, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	counts, err := s.FeedbackRepo.CountRelations(ctx, ids)
	if err != nil {
		return nil, util.Pagination{}, err
	}
	for i := range items {
		c := counts[items[i].ID]
		items[i].Count = &c
		if q.All {
			items[i].HideOwner()
		}
	}

	return items, util.NewPagination(page, limit, total), nil
}

// GetByID returns the full record and counts one view.
func (s *FeedbackService) GetByID(ctx context.Context, actor Actor, id uint) (*model.Feedback, error) {
	if err := actor.authorize(permission.ViewFeedback); err != nil {
		return nil, err
	}

	feedback, err := s.FeedbackRepo.FindDetail(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if !actor.canSee(feedback) {
		return nil, util.ErrFeedbackNotFound
	}

	if err := s.FeedbackRepo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	feedback.Views++

	if feedback.UserID != actor.UserID {
		feedback.HideOwner()
	}
	return feedback, nil
}

// Transition moves a feedback record to a new status and notifies its owner.
func (s *FeedbackService) Transition(ctx context.Context, actor Actor, id uint, in TransitionInput) (*model.Feedback, error) {
	if err := actor.authorize(permission.TransitionFeedback); err != nil {
		return nil, err
	}
	if !in.Status.Valid() {
		return nil, validationError("invalid status")
	}

	var current *model.Feedback
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		feedbackRepo := s.FeedbackRepo.WithTx(tx)

		var err error
		current, err = feedbackRepo.FindByID(ctx, id)
		if err != nil {
			return notFoundOr(err)
		}

		fields := map[string]interface{}{
			"status":      in.Status,
			"resolved_at": nil,
		}
		if in.Status == model.StatusResolved {
			if current.Status == model.StatusResolved && current.ResolvedAt != nil {
				fields["resolved_at"] = *current.ResolvedAt
			} else {
				fields["resolved_at"] = time.Now()
			}
		}
		if in.AdminResponse != nil {
			fields["admin_response"] = *in.AdminResponse
		}
		if err := feedbackRepo.UpdateFields(ctx, id, fields); err != nil {
			return err
		}

		if err := s.NotificationRepo.WithTx(tx).Create(ctx, &model.Notification{
			UserID:    current.UserID,
			Title:     "Feedback Status Updated",
			Message:   fmt.Sprintf("Your feedback \"%s\" status has been updated to %s", current.Title, in.Status),
			Type:      model.NotificationFeedbackUpdate,
			RelatedID: &current.ID,
		}); err != nil {
			return err
		}

		return s.ActivityRepo.WithTx(tx).Create(ctx, &model.ActivityLog{
			UserID:     &actor.UserID,
			Action:     model.ActionTransitionFeedback,
			EntityType: model.EntityFeedback,
			EntityID:   &current.ID,
			IPAddress:  actor.Meta.IPAddress,
			UserAgent:  actor.Meta.UserAgent,
			Details: activityDetails(map[string]interface{}{
				"from":               current.Status,
				"to":                 in.Status,
				"previousResolvedAt": current.ResolvedAt,
			}),
		})
	})
	if err != nil {
		return nil, err
	}

	monitoring.FeedbackTransitions.WithLabelValues(string(in.Status)).Inc()
	logger.Log.Info("Feedback status updated",
		zap.Uint("feedbackID", id),
		zap.String("from", string(current.Status)),
		zap.String("to", string(in.Status)),
		zap.Uint("adminID", actor.UserID),
	)

	updated, err := s.FeedbackRepo.FindWithSummary(ctx, id)
	if err != nil {
		return nil, err
	}
	s.mailOwner(ctx, updated)
	updated.HideOwner()
	return updated, nil
}

func (s *FeedbackService) mailOwner(ctx context.Context, f *model.Feedback) {
	if s.Mailer == nil || !s.Mailer.Enabled() || f.User == nil || f.User.Email == "" {
		return
	}

	body := fmt.Sprintf("Hello %s,\n\nYour feedback \"%s\" status has been updated to %s.\n",
		f.User.FirstName, f.Title, f.Status)
	if f.AdminResponse != nil && *f.AdminResponse != "" {
		body += "\nResponse from the administration:\n" + *f.AdminResponse + "\n"
	}

	err := s.Mailer.Send(ctx, mail.Message{
		To:      f.User.Email,
		Subject: "Feedback Status Updated",
		Body:    body,
	})
	if err != nil {
		monitoring.NotificationMailFailures.Inc()
		logger.Log.Warn("Failed to send status e-mail",
			zap.Uint("feedbackID", f.ID),
			zap.Error(err),
		)
	}
}

// Stats summarizes the caller's own feedback by status.
func (s *FeedbackService) Stats(ctx context.Context, actor Actor) (*Stats, error) {
	if err := actor.authorize(permission.ViewStats); err != nil {
		return nil, err
	}

	byStatus, err := s.FeedbackRepo.CountByStatus(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	unread, err := s.NotificationRepo.CountUnread(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Pending:             byStatus[model.StatusPending],
		UnderReview:         byStatus[model.StatusUnderReview],
		InProgress:          byStatus[model.StatusInProgress],
		Resolved:            byStatus[model.StatusResolved],
		Rejected:            byStatus[model.StatusRejected],
		UnreadNotifications: unread,
	}
	for _, n := range byStatus {
		stats.Total += n
	}
	return stats, nil
}

func (s *FeedbackService) visible(ctx context.Context, actor Actor, id uint) (*model.Feedback, error) {
	feedback, err := s.FeedbackRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if !actor.canSee(feedback) {
		return nil, util.ErrFeedbackNotFound
	}
	return feedback, nil
}

// AddComment appends a comment; comments by admins are flagged as official responses.
func (s *FeedbackService) AddComment(ctx context.Context, actor Actor, id uint, content string) (*model.Comment, error) {
	if err := actor.authorize(permission.CommentFeedback); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, validationError("content is required")
	}
	if _, err := s.visible(ctx, actor, id); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		FeedbackID:      id,
		UserID:          actor.UserID,
		Content:         content,
		IsAdminResponse: actor.Role == model.Admin,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.CommentRepo.WithTx(tx).Create(ctx, comment); err != nil {
			return err
		}
		return s.ActivityRepo.WithTx(tx).Create(ctx, &model.ActivityLog{
			UserID:     &actor.UserID,
			Action:     model.ActionCommentFeedback,
			EntityType: model.EntityFeedback,
			EntityID:   &comment.FeedbackID,
			IPAddress:  actor.Meta.IPAddress,
			UserAgent:  actor.Meta.UserAgent,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.CommentRepo.FindByID(ctx, comment.ID)
}

// Vote records the caller's single vote on a feedback record and returns the new tally.
func (s *FeedbackService) Vote(ctx context.Context, actor Actor, id uint, voteType model.VoteType) (*repository.VoteTally, error) {
	if err := actor.authorize(permission.VoteFeedback); err != nil {
		return nil, err
	}
	if !voteType.Valid() {
		return nil, validationError("invalid vote type")
	}
	if _, err := s.visible(ctx, actor, id); err != nil {
		return nil, err
	}

	if err := s.VoteRepo.Upsert(ctx, &model.Vote{FeedbackID: id, UserID: actor.UserID, VoteType: voteType}); err != nil {
		return nil, err
	}
	tally, err := s.VoteRepo.Tally(ctx, id)
	if err != nil {
		return nil, err
	}
	return &tally, nil
}
