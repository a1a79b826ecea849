// Package testutil holds fixtures shared by repository, service and controller tests.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"campus_voice_backend/internal/config"
	"campus_voice_backend/internal/model"
	"campus_voice_backend/pkg/database"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// MustOpenTestDB opens a migrated in-memory sqlite database private to t.
func MustOpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=1", name, dbSeq.Add(1))

	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", Path: dsn}, logger.Silent)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// CreateUser inserts an active user whose password is "password123".
func CreateUser(t *testing.T, db *gorm.DB, email string, role model.UserRole) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		FirstName: "Test",
		LastName:  strings.Split(email, "@")[0],
		Email:     email,
		Password:  string(hash),
		Role:      role,
		IsActive:  true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateCategory(t *testing.T, db *gorm.DB, name string, active bool) *model.Category {
	t.Helper()

	category := &model.Category{Name: name, Description: name + " issues", IsActive: true}
	require.NoError(t, db.Create(category).Error)
	if !active {
		require.NoError(t, db.Model(category).Update("is_active", false).Error)
		category.IsActive = false
	}
	return category
}

// CreateFeedback inserts a PENDING, MEDIUM feedback owned by userID.
func CreateFeedback(t *testing.T, db *gorm.DB, userID, categoryID uint, title string) *model.Feedback {
	t.Helper()

	feedback := &model.Feedback{
		UserID:      userID,
		CategoryID:  categoryID,
		Title:       title,
		Description: title + " description",
		Priority:    model.PriorityMedium,
		Status:      model.StatusPending,
	}
	require.NoError(t, db.Create(feedback).Error)
	return feedback
}
