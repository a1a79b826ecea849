package model

import "gorm.io/gorm"

// swagger:model Comment
type Comment struct {
	AppendOnly
	FeedbackID      uint   `gorm:"index;not null" json:"feedbackId"`
	UserID          uint   `gorm:"index;not null" json:"userId"`
	Content         string `gorm:"type:text;not null" json:"content"`
	IsAdminResponse bool   `gorm:"default:false;not null" json:"isAdminResponse"`

	User   *User      `gorm:"foreignKey:UserID" json:"-"`
	Author *UserBrief `gorm:"-" json:"user,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) AfterFind(tx *gorm.DB) error {
	if c.User != nil {
		c.Author = c.User.Brief()
		c.Author.Email = ""
	}
	return nil
}
