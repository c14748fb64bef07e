package entities

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is an authenticated admin principal
type Session struct {
	ID          string    `json:"sessionId"`
	UserID      uuid.UUID `json:"userId"`
	Email       string    `json:"email"`
	AccessToken string    `json:"accessToken,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SessionState is the gate state of the admin view
type SessionState int

const (
	SessionUnknown SessionState = iota
	SessionAuthenticated
	SessionUnauthenticated
)

func (s SessionState) String() string {
	switch s {
	case SessionAuthenticated:
		return "authenticated"
	case SessionUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// SessionEvent names a session change notification
type SessionEvent string

const (
	SessionEventSignedIn  SessionEvent = "SIGNED_IN"
	SessionEventSignedOut SessionEvent = "SIGNED_OUT"
)

// SessionChange is delivered to session subscribers
type SessionChange struct {
	Event   SessionEvent `json:"event"`
	Session *Session     `json:"session,omitempty"`
}

type sessionContextKey struct{}

// ContextWithSession attaches the caller's session for row-level authorization
func ContextWithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// SessionFromContext returns the caller's session, or nil for anonymous callers
func SessionFromContext(ctx context.Context) *Session {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(sessionContextKey{}).(*Session)
	return s
}
