package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stremini.backend/internal/domain/entities"
	"stremini.backend/internal/interfaces/http/response"
	"stremini.backend/pkg/logger"
)

const (
	// SessionHeader carries the admin session id
	SessionHeader = "X-Session-ID"
	// SessionCookie is the cookie fallback for browsers
	SessionCookie = "session_id"
	// SessionKey is the gin context key for the resolved session
	SessionKey = "session"
)

// SessionResolver resolves a session id to an active session
type SessionResolver interface {
	CurrentSession(ctx context.Context, sessionID string) (*entities.Session, error)
}

// SessionIDFromRequest reads the session id from the header, then the cookie.
func SessionIDFromRequest(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(SessionHeader)); id != "" {
		return id
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}

// SessionMiddleware rejects requests without an active admin session. The session is
// attached to the request context for row-level authorization.
func SessionMiddleware(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := SessionIDFromRequest(c)
		if sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Session is required",
			})
			return
		}

		session, err := resolver.CurrentSession(c.Request.Context(), sessionID)
		if err != nil {
			logger.Warn(c.Request.Context(), "Session rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.Abort()
			response.Error(c, err)
			return
		}

		c.Set(SessionKey, session)
		ctx := entities.ContextWithSession(c.Request.Context(), session)
		ctx = context.WithValue(ctx, logger.SessionIDKey, session.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetSession gets the resolved session from context
func GetSession(c *gin.Context) (*entities.Session, bool) {
	v, exists := c.Get(SessionKey)
	if !exists {
		return nil, false
	}
	session, ok := v.(*entities.Session)
	return session, ok && session != nil
}
