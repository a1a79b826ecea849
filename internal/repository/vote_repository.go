package repository

import (
	"campus_voice_backend/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VoteRepository struct {
	DB *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{DB: db}
}

// Upsert records the caller's vote, replacing any earlier vote on the same feedback.
func (r *VoteRepository) Upsert(ctx context.Context, vote *model.Vote) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "feedback_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"vote_type", "updated_at"}),
	}).Create(vote).Error
}

func (r *VoteRepository) Find(ctx context.Context, feedbackID, userID uint) (*model.Vote, error) {
	var vote model.Vote
	err := r.DB.WithContext(ctx).
		Where("feedback_id = ? AND user_id = ?", feedbackID, userID).
		First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

type VoteTally struct {
	Upvotes   int64 `json:"upvotes"`
	Downvotes int64 `json:"downvotes"`
}

func (r *VoteRepository) Tally(ctx context.Context, feedbackID uint) (VoteTally, error) {
	var rows []struct {
		VoteType model.VoteType
		Total    int64
	}
	err := r.DB.WithContext(ctx).Model(&model.Vote{}).
		Select("vote_type, COUNT(*) AS total").
		Where("feedback_id = ?", feedbackID).
		Group("vote_type").
		Scan(&rows).Error
	if err != nil {
		return VoteTally{}, err
	}

	var tally VoteTally
	for _, row := range rows {
		switch row.VoteType {
		case model.Upvote:
			tally.Upvotes = row.Total
		case model.Downvote:
			tally.Downvotes = row.Total
		}
	}
	return tally, nil
}
