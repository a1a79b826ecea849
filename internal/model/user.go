package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "STUDENT"
	Admin   UserRole = "ADMIN"
)

func (r UserRole) Valid() bool {
	return r == Student || r == Admin
}

// swagger:model User
type User struct {
	BaseModel
	FirstName     string     `gorm:"size:100;not null" json:"firstName"`
	LastName      string     `gorm:"size:100;not null" json:"lastName"`
	Email         string     `gorm:"size:191;uniqueIndex;not null" json:"email"`
	Password      string     `gorm:"size:100;not null" json:"-"`
	Phone         string     `gorm:"size:30" json:"phone,omitempty"`
	Role          UserRole   `gorm:"type:varchar(20);default:'STUDENT';not null" json:"role"`
	Department    string     `gorm:"size:100" json:"department,omitempty"`
	YearOfStudy   *int       `json:"yearOfStudy,omitempty"`
	ProfileImage  string     `gorm:"size:255" json:"profileImage,omitempty"`
	IsActive      bool       `gorm:"default:true;not null" json:"isActive"`
	EmailVerified bool       `gorm:"default:false;not null" json:"emailVerified"`
	LastLogin     *time.Time `json:"lastLogin,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// UserBrief is the abbreviated projection embedded in feedback, comment and auth payloads.
type UserBrief struct {
	ID        uint     `json:"id"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email,omitempty"`
	Role      UserRole `json:"role,omitempty"`
}

func (u *User) Brief() *UserBrief {
	if u == nil {
		return nil
	}
	return &UserBrief{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
	}
}
