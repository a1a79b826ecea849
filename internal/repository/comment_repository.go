package repository

import (
	"campus_voice_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) WithTx(tx *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: tx}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.DB.WithContext(ctx).Create(comment).Error
}

func (r *CommentRepository) FindByID(ctx context.Context, id uint) (*model.Comment, error) {
	var comment model.Comment
	err := r.DB.WithContext(ctx).
		Preload("User", preloadOwner).
		First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}
