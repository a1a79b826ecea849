package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Activity log action tags.
const (
	ActionRegister           = "register"
	ActionLogin              = "login"
	ActionSubmitFeedback     = "submit_feedback"
	ActionTransitionFeedback = "transition_feedback"
	ActionCommentFeedback    = "comment_feedback"
)

const EntityFeedback = "feedback"

// Column widths of the client metadata recorded with each activity.
const (
	IPAddressMaxLen = 64
	UserAgentMaxLen = 255
)

// swagger:model ActivityLog
type ActivityLog struct {
	AppendOnly
	UserID     *uint          `gorm:"index" json:"userId"`
	Action     string         `gorm:"size:50;not null;index" json:"action"`
	EntityType string         `gorm:"size:50" json:"entityType,omitempty"`
	EntityID   *uint          `json:"entityId,omitempty"`
	IPAddress  string         `gorm:"size:64" json:"ipAddress,omitempty"`
	UserAgent  string         `gorm:"size:255" json:"userAgent,omitempty"`
	Details    datatypes.JSON `json:"details,omitempty"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

// BeforeCreate clips client supplied headers so an oversized value never
// fails the enclosing transaction.
func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	a.IPAddress = clip(a.IPAddress, IPAddressMaxLen)
	a.UserAgent = clip(a.UserAgent, UserAgentMaxLen)
	return nil
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// RequestMeta carries the client information recorded with each activity.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}
