package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"kanban-board-api/internal/response"
)

// Context keys set by the auth middleware
const (
	UserIDKey = "user_id"
	TokenKey  = "jwtToken"
)

// TokenValidator validates an access token and returns its user id
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenStr string) (uuid.UUID, error)
}

// AuthWithValidator rejects requests without a valid Bearer token.
// Revoked (logged out) tokens are rejected by the validator.
func AuthWithValidator(validator TokenValidator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}
		tokenString := strings.TrimSpace(parts[1])

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		userID, err := validator.ValidateToken(ctx, tokenString)
		if err != nil {
			logger.Debug("Token rejected", zap.Error(err), zap.String("path", c.Request.URL.Path))
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(TokenKey, tokenString)

		c.Next()
	}
}

// GetUserID returns the authenticated user id set by AuthWithValidator
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// GetToken returns the raw bearer token of the request
func GetToken(c *gin.Context) (string, bool) {
	v, ok := c.Get(TokenKey)
	if !ok {
		return "", false
	}
	token, ok := v.(string)
	return token, ok
}
