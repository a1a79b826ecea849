package database

import (
	"campus_voice_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultCategories are inserted on first start.
var DefaultCategories = []model.Category{
	{Name: "Academic Issues", Description: "Concerns related to courses, exams, and academic programs", Icon: "fa-graduation-cap", Color: "#4361ee"},
	{Name: "Infrastructure", Description: "Issues with buildings, classrooms, and campus facilities", Icon: "fa-building", Color: "#3f37c9"},
	{Name: "Hostel & Accommodation", Description: "Concerns about hostel facilities and accommodation", Icon: "fa-bed", Color: "#4cc9f0"},
	{Name: "Library Services", Description: "Feedback about library resources and services", Icon: "fa-book", Color: "#7209b7"},
	{Name: "IT & Technology", Description: "Issues with internet, computers, and technical services", Icon: "fa-laptop", Color: "#f72585"},
	{Name: "Food & Dining", Description: "Feedback about cafeteria and food services", Icon: "fa-utensils", Color: "#4caf50"},
	{Name: "Sports & Recreation", Description: "Concerns about sports facilities and recreational activities", Icon: "fa-futbol", Color: "#ff9800"},
	{Name: "Health Services", Description: "Issues related to campus health center and medical services", Icon: "fa-heartbeat", Color: "#f44336"},
	{Name: "Transportation", Description: "Feedback about campus transportation and parking", Icon: "fa-bus", Color: "#9c27b0"},
	{Name: "Safety & Security", Description: "Concerns about campus safety and security measures", Icon: "fa-shield-alt", Color: "#e91e63"},
	{Name: "Administration", Description: "Issues with administrative processes and services", Icon: "fa-user-tie", Color: "#607d8b"},
	{Name: "Other", Description: "Other concerns not covered by above categories", Icon: "fa-ellipsis-h", Color: "#795548"},
}

// Seed inserts default categories and the bootstrap accounts when their tables are empty.
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Category{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			for _, c := range DefaultCategories {
				c := c
				c.IsActive = true
				if err := tx.Create(&c).Error; err != nil {
					return err
				}
			}
		}

		if err := tx.Model(&model.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		studentHash, err := bcrypt.GenerateFromPassword([]byte("student123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		year := 3
		users := []model.User{
			{
				FirstName:     "System",
				LastName:      "Administrator",
				Email:         "admin@campusvoice.edu",
				Password:      string(adminHash),
				Role:          model.Admin,
				IsActive:      true,
				EmailVerified: true,
			},
			{
				FirstName:     "John",
				LastName:      "Doe",
				Email:         "student@campusvoice.edu",
				Password:      string(studentHash),
				Role:          model.Student,
				IsActive:      true,
				EmailVerified: true,
				Department:    "Computer Science",
				YearOfStudy:   &year,
			},
		}
		return tx.Create(&users).Error
	})
}
