package model

const (
	NotificationFeedbackUpdate = "FEEDBACK_UPDATE"
)

// swagger:model Notification
type Notification struct {
	AppendOnly
	UserID    uint   `gorm:"index;not null" json:"userId"`
	Title     string `gorm:"size:255;not null" json:"title"`
	Message   string `gorm:"type:text;not null" json:"message"`
	Type      string `gorm:"size:50;not null" json:"type"`
	RelatedID *uint  `gorm:"index" json:"relatedId"`
	IsRead    bool   `gorm:"default:false;not null;index" json:"isRead"`
}

func (Notification) TableName() string {
	return "notifications"
}
