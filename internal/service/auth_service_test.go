package service

import (
	"context"
	"testing"
	"time"

	"campus_voice_backend/internal/config"
	"campus_voice_backend/internal/model"
	"campus_voice_backend/internal/testutil"
	"campus_voice_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	cfg := config.Default()
	cfg.JWT.Secret = "test-secret-that-is-long-enough-for-hs256"
	return NewAuthService(testutil.MustOpenTestDB(t), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	s := newAuthService(t)
	ctx := context.Background()
	meta := model.RequestMeta{IPAddress: "127.0.0.1", UserAgent: "go-test"}

	res, err := s.Register(ctx, RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "  Ada@Campus.edu ",
		Password:  "secret1",
	}, meta)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "ada@campus.edu", res.User.Email)
	assert.Equal(t, model.Student, res.User.Role)

	claims, err := util.ParseJWT(res.Token, s.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, model.Student, claims.Role)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)

	_, err = s.Register(ctx, RegisterInput{FirstName: "A", LastName: "L", Email: "ada@campus.edu", Password: "secret2"}, meta)
	assert.ErrorIs(t, err, util.ErrEmailRegistered)

	_, err = s.Login(ctx, LoginInput{Email: "ada@campus.edu", Password: "wrong"}, meta)
	assert.ErrorIs(t, err, util.ErrInvalidCredential)
	_, err = s.Login(ctx, LoginInput{Email: "nobody@campus.edu", Password: "secret1"}, meta)
	assert.ErrorIs(t, err, util.ErrInvalidCredential)

	res, err = s.Login(ctx, LoginInput{Email: "ADA@campus.edu", Password: "secret1"}, meta)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	user, err := s.Profile(ctx, res.User.ID)
	require.NoError(t, err)
	assert.NotNil(t, user.LastLogin)

	logs, err := s.ActivityRepo.ListForUser(ctx, user.ID, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, model.ActionLogin, logs[0].Action)
	assert.Equal(t, model.ActionRegister, logs[1].Action)
}

func TestRegisterValidation(t *testing.T) {
	s := newAuthService(t)
	ctx := context.Background()

	tests := []RegisterInput{
		{FirstName: "A", LastName: "B", Email: "not-an-email", Password: "secret1"},
		{FirstName: "A", LastName: "B", Email: "a@b.edu", Password: "123"},
		{LastName: "B", Email: "a@b.edu", Password: "secret1"},
	}
	for _, in := range tests {
		_, err := s.Register(ctx, in, model.RequestMeta{})
		assert.ErrorIs(t, err, util.ErrValidation)
	}
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	s := newAuthService(t)
	ctx := context.Background()

	user := testutil.CreateUser(t, s.UserRepo.DB, "gone@campus.edu", model.Student)
	require.NoError(t, s.UserRepo.DB.Model(user).Update("is_active", false).Error)

	_, err := s.Login(ctx, LoginInput{Email: "gone@campus.edu", Password: "password123"}, model.RequestMeta{})
	assert.ErrorIs(t, err, util.ErrInvalidCredential)

	_, err = s.Profile(ctx, 999)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}
