package repository

import (
	"context"
	"testing"
	"time"

	"campus_voice_backend/internal/model"
	"campus_voice_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	user := &model.User{FirstName: "Kim", LastName: "Lee", Email: "kim@campus.edu", Password: "x", Role: model.Student, IsActive: true}
	require.NoError(t, repo.Create(ctx, user))
	assert.Error(t, repo.Create(ctx, &model.User{FirstName: "K", LastName: "L", Email: "kim@campus.edu", Password: "y"}))

	found, err := repo.FindByEmail(ctx, "kim@campus.edu")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	at := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateLastLogin(ctx, user.ID, at))
	found, err = repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, found.LastLogin)
	assert.True(t, at.Equal(*found.LastLogin))
}
