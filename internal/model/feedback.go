package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FeedbackPriority string

const (
	PriorityLow    FeedbackPriority = "LOW"
	PriorityMedium FeedbackPriority = "MEDIUM"
	PriorityHigh   FeedbackPriority = "HIGH"
	PriorityUrgent FeedbackPriority = "URGENT"
)

func (p FeedbackPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type FeedbackStatus string

const (
	StatusPending     FeedbackStatus = "PENDING"
	StatusUnderReview FeedbackStatus = "UNDER_REVIEW"
	StatusInProgress  FeedbackStatus = "IN_PROGRESS"
	StatusResolved    FeedbackStatus = "RESOLVED"
	StatusRejected    FeedbackStatus = "REJECTED"
)

// FeedbackStatuses lists every status in lifecycle order.
var FeedbackStatuses = []FeedbackStatus{
	StatusPending,
	StatusUnderReview,
	StatusInProgress,
	StatusResolved,
	StatusRejected,
}

func (s FeedbackStatus) Valid() bool {
	for _, v := range FeedbackStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// swagger:model Feedback
type Feedback struct {
	BaseModel
	UserID        uint             `gorm:"index;not null" json:"userId"`
	CategoryID    uint             `gorm:"index;not null" json:"categoryId"`
	Title         string           `gorm:"size:255;not null" json:"title"`
	Description   string           `gorm:"type:text;not null" json:"description"`
	Location      *string          `gorm:"size:255" json:"location"`
	Priority      FeedbackPriority `gorm:"type:varchar(20);default:'MEDIUM';not null;index" json:"priority"`
	Status        FeedbackStatus   `gorm:"type:varchar(20);default:'PENDING';not null;index" json:"status"`
	IsAnonymous   bool             `gorm:"default:false;not null" json:"isAnonymous"`
	Attachments   datatypes.JSON   `json:"attachments"`
	Views         int              `gorm:"default:0;not null" json:"views"`
	AdminResponse *string          `gorm:"type:text" json:"adminResponse"`
	ResolvedAt    *time.Time       `json:"resolvedAt"`

	Category *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	User     *User      `gorm:"foreignKey:UserID" json:"-"`
	Comments []Comment  `gorm:"foreignKey:FeedbackID" json:"comments,omitempty"`
	Votes    []Vote     `gorm:"foreignKey:FeedbackID" json:"votes,omitempty"`
	Owner    *UserBrief `gorm:"-" json:"user,omitempty"`
	Count    *Counts    `gorm:"-" json:"_count,omitempty"`
}

// Counts mirrors the per-item comment/vote totals shown in listings.
type Counts struct {
	Comments int64 `json:"comments"`
	Votes    int64 `json:"votes"`
}

func (Feedback) TableName() string {
	return "feedback"
}

func (f *Feedback) AfterFind(tx *gorm.DB) error {
	if f.User != nil {
		f.Owner = f.User.Brief()
	}
	return nil
}

// SetAttachments stores the ordered file names; an empty list is persisted as NULL.
func (f *Feedback) SetAttachments(names []string) error {
	if len(names) == 0 {
		f.Attachments = nil
		return nil
	}
	raw, err := json.Marshal(names)
	if err != nil {
		return err
	}
	f.Attachments = datatypes.JSON(raw)
	return nil
}

func (f *Feedback) AttachmentNames() []string {
	if len(f.Attachments) == 0 {
		return nil
	}
	var names []string
	if err := json.Unmarshal(f.Attachments, &names); err != nil {
		return nil
	}
	return names
}

// HideOwner strips the submitter identity from an anonymous record, including
// the submitter's own comments and votes.
func (f *Feedback) HideOwner() {
	if !f.IsAnonymous {
		return
	}
	owner := f.UserID
	f.UserID = 0
	f.User = nil
	f.Owner = nil

	for i := range f.Comments {
		if f.Comments[i].UserID == owner {
			f.Comments[i].UserID = 0
			f.Comments[i].User = nil
			f.Comments[i].Author = nil
		}
	}
	for i := range f.Votes {
		if f.Votes[i].UserID == owner {
			f.Votes[i].UserID = 0
		}
	}
}
