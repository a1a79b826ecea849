package model

import "time"

type VoteType string

const (
	Upvote   VoteType = "UPVOTE"
	Downvote VoteType = "DOWNVOTE"
)

func (v VoteType) Valid() bool {
	return v == Upvote || v == Downvote
}

// swagger:model Vote
type Vote struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FeedbackID uint      `gorm:"uniqueIndex:idx_vote_feedback_user;not null" json:"feedbackId"`
	UserID     uint      `gorm:"uniqueIndex:idx_vote_feedback_user;not null" json:"userId"`
	VoteType   VoteType  `gorm:"type:varchar(10);not null" json:"voteType"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Vote) TableName() string {
	return "votes"
}
