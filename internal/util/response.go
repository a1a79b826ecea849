package util

import (
	"campus_voice_backend/pkg/logger"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: message,
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Access token required")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.Error(err),
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
	)
	InternalServerError(c)
}

// HandleError maps service errors onto the response envelope.
func HandleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidFileType),
		errors.Is(err, ErrFileTooLarge),
		errors.Is(err, ErrTooManyFiles):
		BadRequest(c, err.Error())
	case errors.Is(err, ErrFeedbackNotFound),
		errors.Is(err, ErrNotifNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrCategoryNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, ErrPermissionDenied):
		Forbidden(c)
	case errors.Is(err, ErrInvalidCredential):
		Error(c, http.StatusUnauthorized, ErrInvalidCredential.Error())
	case errors.Is(err, ErrEmailRegistered):
		Conflict(c, ErrEmailRegistered.Error())
	default:
		LogInternalError(c, err)
	}
}
