package usecases

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"stremini.backend/internal/domain/entities"
	"stremini.backend/internal/domain/repositories"
	"stremini.backend/pkg/logger"
)

// SessionGuard gates the admin view on one session id and follows its sign-in/sign-out events.
type SessionGuard struct {
	auth      repositories.AuthService
	sessionID string

	mu          sync.Mutex
	state       entities.SessionState
	session     *entities.Session
	sub         repositories.Subscription
	onSignedOut func()
}

func NewSessionGuard(auth repositories.AuthService, sessionID string) *SessionGuard {
	return &SessionGuard{
		auth:      auth,
		sessionID: sessionID,
		state:     entities.SessionUnknown,
	}
}

// OnSignedOut registers fn to run once the session is signed out elsewhere.
func (g *SessionGuard) OnSignedOut(fn func()) {
	g.mu.Lock()
	g.onSignedOut = fn
	g.mu.Unlock()
}

// Start performs the first check and subscribes to session changes.
// The subscription is released by Close.
func (g *SessionGuard) Start(ctx context.Context) (entities.SessionState, error) {
	state, err := g.Check(ctx)
	if err != nil || state != entities.SessionAuthenticated {
		return state, err
	}

	g.mu.Lock()
	started := g.sub != nil
	g.mu.Unlock()
	if started {
		return state, nil
	}

	sub, err := g.auth.OnSessionChange(ctx, g.sessionID, g.handleChange)
	if err != nil {
		return state, err
	}

	g.mu.Lock()
	if g.sub != nil {
		g.mu.Unlock()
		_ = sub.Unsubscribe()
		return state, nil
	}
	g.sub = sub
	g.mu.Unlock()
	return state, nil
}

// Check resolves the session against the data service.
func (g *SessionGuard) Check(ctx context.Context) (entities.SessionState, error) {
	session, err := g.auth.GetSession(ctx, g.sessionID)

	g.mu.Lock()
	defer g.mu.Unlock()
	if err != nil {
		g.state = entities.SessionUnauthenticated
		g.session = nil
		return g.state, err
	}
	if session == nil {
		g.state = entities.SessionUnauthenticated
		g.session = nil
		return g.state, nil
	}
	g.state = entities.SessionAuthenticated
	g.session = session
	return g.state, nil
}

func (g *SessionGuard) State() entities.SessionState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Session returns the last resolved session or nil.
func (g *SessionGuard) Session() *entities.Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session
}

func (g *SessionGuard) handleChange(change entities.SessionChange) {
	g.mu.Lock()
	var notify func()
	switch change.Event {
	case entities.SessionEventSignedOut:
		if g.state != entities.SessionUnauthenticated {
			notify = g.onSignedOut
		}
		g.state = entities.SessionUnauthenticated
		g.session = nil
	case entities.SessionEventSignedIn:
		g.state = entities.SessionAuthenticated
		if change.Session != nil && g.session == nil {
			g.session = change.Session
		}
	}
	g.mu.Unlock()

	logger.Debug(context.Background(), "Session change",
		zap.String(string(logger.SessionIDKey), g.sessionID),
		zap.String("event", string(change.Event)),
	)
	if notify != nil {
		notify()
	}
}

// Close releases the session subscription. It is safe to call more than once.
func (g *SessionGuard) Close() error {
	g.mu.Lock()
	sub := g.sub
	g.sub = nil
	g.mu.Unlock()
	if sub == nil {
		return nil
	}
	return sub.Unsubscribe()
}
