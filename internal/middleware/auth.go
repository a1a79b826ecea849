package middleware

import (
	"campus_voice_backend/internal/config"
	"campus_voice_backend/internal/permission"
	"campus_voice_backend/internal/util"
	"campus_voice_backend/pkg/logger"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware verifies the bearer token and stores its claims under util.ContextUserKey.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			logger.Log.Debug("Rejected access token", zap.Error(err))
			util.Error(c, http.StatusForbidden, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(util.ContextUserKey, claims)
		c.Next()
	}
}

// RequireOperation admits the request only when the caller's role may perform op.
func RequireOperation(op permission.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		if !permission.Allowed(user.Role, op) {
			logger.Log.Info("Operation denied",
				zap.Uint("userID", user.UserID),
				zap.String("role", string(user.Role)),
				zap.String("operation", string(op)),
			)
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
