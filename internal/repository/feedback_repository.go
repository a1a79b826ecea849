package repository

import (
	"campus_voice_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

// FeedbackFilter narrows a feedback listing; nil fields impose no constraint.
type FeedbackFilter struct {
	UserID     *uint
	Status     *model.FeedbackStatus
	Priority   *model.FeedbackPriority
	CategoryID *uint
}

type FeedbackRepository struct {
	DB *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{DB: db}
}

func (r *FeedbackRepository) WithTx(tx *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{DB: tx}
}

func preloadOwner(db *gorm.DB) *gorm.DB {
	return db.Select("id", "first_name", "last_name", "email", "role")
}

func (r *FeedbackRepository) Create(ctx context.Context, feedback *model.Feedback) error {
	return r.DB.WithContext(ctx).Create(feedback).Error
}

// FindByID loads the bare record.
func (r *FeedbackRepository) FindByID(ctx context.Context, id uint) (*model.Feedback, error) {
	var feedback model.Feedback
	if err := r.DB.WithContext(ctx).First(&feedback, id).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

// FindWithSummary loads the record with its category and owner projection.
func (r *FeedbackRepository) FindWithSummary(ctx context.Context, id uint) (*model.Feedback, error) {
	var feedback model.Feedback
	err := r.DB.WithContext(ctx).
		Preload("Category").
		Preload("User", preloadOwner).
		First(&feedback, id).Error
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

// FindDetail loads everything shown on the detail page.
func (r *FeedbackRepository) FindDetail(ctx context.Context, id uint) (*model.Feedback, error) {
	var feedback model.Feedback
	err := r.DB.WithContext(ctx).
		Preload("Category").
		Preload("User", preloadOwner).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Comments.User", preloadOwner).
		Preload("Votes", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&feedback, id).Error
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

func applyFeedbackFilter(db *gorm.DB, f FeedbackFilter) *gorm.DB {
	if f.UserID != nil {
		db = db.Where("user_id = ?", *f.UserID)
	}
	if f.Status != nil {
		db = db.Where("status = ?", *f.Status)
	}
	if f.Priority != nil {
		db = db.Where("priority = ?", *f.Priority)
	}
	if f.CategoryID != nil {
		db = db.Where("category_id = ?", *f.CategoryID)
	}
	return db
}

// List returns one page ordered newest first, plus the total number of matches.
func (r *FeedbackRepository) List(ctx context.Context, f FeedbackFilter, offset, limit int, withOwner bool) ([]model.Feedback, int64, error) {
	var (
		items []model.Feedback
		total int64
	)

	base := applyFeedbackFilter(r.DB.WithContext(ctx).Model(&model.Feedback{}), f)
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base.Session(&gorm.Session{}).Preload("Category")
	if withOwner {
		query = query.Preload("User", preloadOwner)
	}
	err := query.
		Order("created_at DESC").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

type relationCount struct {
	FeedbackID uint
	Total      int64
}

// CountRelations returns comment and vote totals keyed by feedback id.
func (r *FeedbackRepository) CountRelations(ctx context.Context, ids []uint) (map[uint]model.Counts, error) {
	counts := make(map[uint]model.Counts, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var comments, votes []relationCount
	if err := r.DB.WithContext(ctx).Model(&model.Comment{}).
		Select("feedback_id, COUNT(*) AS total").
		Where("feedback_id IN ?", ids).
		Group("feedback_id").
		Scan(&comments).Error; err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Model(&model.Vote{}).
		Select("feedback_id, COUNT(*) AS total").
		Where("feedback_id IN ?", ids).
		Group("feedback_id").
		Scan(&votes).Error; err != nil {
		return nil, err
	}

	for _, id := range ids {
		counts[id] = model.Counts{}
	}
	for _, c := range comments {
		v := counts[c.FeedbackID]
		v.Comments = c.Total
		counts[c.FeedbackID] = v
	}
	for _, c := range votes {
		v := counts[c.FeedbackID]
		v.Votes = c.Total
		counts[c.FeedbackID] = v
	}
	return counts, nil
}

// IncrementViews bumps the counter with a single atomic UPDATE.
func (r *FeedbackRepository) IncrementViews(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Model(&model.Feedback{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).
		Error
}

// UpdateFields writes the given columns and bumps updated_at.
func (r *FeedbackRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.DB.WithContext(ctx).Model(&model.Feedback{BaseModel: model.BaseModel{ID: id}}).
		Updates(fields).Error
}

type statusCount struct {
	Status model.FeedbackStatus
	Total  int64
}

// CountByStatus groups one user's feedback by status.
func (r *FeedbackRepository) CountByStatus(ctx context.Context, userID uint) (map[model.FeedbackStatus]int64, error) {
	var rows []statusCount
	err := r.DB.WithContext(ctx).Model(&model.Feedback{}).
		Select("status, COUNT(*) AS total").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[model.FeedbackStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}
