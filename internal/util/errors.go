package util

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailRegistered   = errors.New("User already exists")
	ErrInvalidCredential = errors.New("Invalid credentials")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrFeedbackNotFound  = errors.New("Feedback not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrNotifNotFound     = errors.New("notification not found")
	ErrInvalidFileType   = errors.New("Invalid file type")
	ErrFileTooLarge      = errors.New("File too large")
	ErrTooManyFiles      = errors.New("Too many files")
)
