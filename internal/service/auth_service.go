package service

import (
	"campus_voice_backend/internal/config"
	"campus_voice_backend/internal/model"
	"campus_voice_backend/internal/repository"
	"campus_voice_backend/internal/util"
	"campus_voice_backend/pkg/logger"
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	FirstName   string `json:"firstName" validate:"required,max=100"`
	LastName    string `json:"lastName" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Phone       string `json:"phone" validate:"max=30"`
	Department  string `json:"department" validate:"max=100"`
	YearOfStudy *int   `json:"yearOfStudy"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResult struct {
	Token string           `json:"token"`
	User  *model.UserBrief `json:"user"`
}

type AuthService struct {
	DB           *gorm.DB
	UserRepo     *repository.UserRepository
	ActivityRepo *repository.ActivityLogRepository
	Cfg          *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		DB:           db,
		UserRepo:     repository.NewUserRepository(db),
		ActivityRepo: repository.NewActivityLogRepository(db),
		Cfg:          cfg,
	}
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user.Brief()}, nil
}

func (s *AuthService) record(ctx context.Context, user *model.User, action string, meta model.RequestMeta) {
	err := s.ActivityRepo.Create(ctx, &model.ActivityLog{
		UserID:    &user.ID,
		Action:    action,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	})
	if err != nil {
		logger.Log.Warn("Failed to write activity log", zap.String("action", action), zap.Error(err))
	}
}

// Register creates a STUDENT account and signs the caller in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput, meta model.RequestMeta) (*AuthResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	_, err := s.UserRepo.FindByEmail(ctx, in.Email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Password:    string(hashedPassword),
		Phone:       in.Phone,
		Role:        model.Student,
		Department:  in.Department,
		YearOfStudy: in.YearOfStudy,
		IsActive:    true,
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.record(ctx, user, model.ActionRegister, meta)
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, in LoginInput, meta model.RequestMeta) (*AuthResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	user, err := s.UserRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidCredential
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, util.ErrInvalidCredential
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, util.ErrInvalidCredential
	}

	if err := s.UserRepo.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		return nil, err
	}
	s.record(ctx, user, model.ActionLogin, meta)
	return s.issue(user)
}

func (s *AuthService) Profile(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
