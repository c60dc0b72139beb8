package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"lendly/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SharerHeader carries the caller identity when requests arrive through
	// the gateway, which authenticates upstream.
	SharerHeader = "X-Sharer-User-Id"

	ctxUserIDKey = "user_id"
)

type IdentityMiddleware struct {
	tokens *jwt.Service
}

func NewIdentityMiddleware(tokens *jwt.Service) *IdentityMiddleware {
	return &IdentityMiddleware{tokens: tokens}
}

// RequireIdentity resolves the caller from the X-Sharer-User-Id header or,
// failing that, a Bearer token. Identity is required on every business route;
// existence of the user is checked by the use cases, not here.
func (m *IdentityMiddleware) RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader(SharerHeader); raw != "" {
			userID, err := uuid.Parse(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": gin.H{"message": "invalid " + SharerHeader + " header"},
				})
				c.Abort()
				return
			}
			c.Set(ctxUserIDKey, userID)
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token := strings.TrimSpace(authHeader[len("Bearer "):])
			userID, err := m.tokens.ValidateToken(token)
			if err != nil {
				slog.Warn("token validation failed", "error", err.Error())
				c.JSON(http.StatusUnauthorized, gin.H{
					"error": gin.H{"message": "invalid or expired token"},
				})
				c.Abort()
				return
			}
			c.Set(ctxUserIDKey, userID)
			c.Next()
			return
		}

		c.JSON(http.StatusUnauthorized, gin.H{
			"error": gin.H{"message": "caller identity required"},
		})
		c.Abort()
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
