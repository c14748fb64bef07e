package dataservice

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"stremini.backend/internal/domain/entities"
	domainerrors "stremini.backend/internal/domain/errors"
	"stremini.backend/internal/domain/repositories"
	"stremini.backend/internal/infrastructure/models"
	"stremini.backend/pkg/crypto"
	"stremini.backend/pkg/jwt"
	"stremini.backend/pkg/logger"
	"stremini.backend/pkg/redis"
)

const sessionChannelPrefix = "auth:session:"

type sessionStore interface {
	CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

var (
	publishSessionEvent    = redis.Publish
	subscribeSessionEvents = redis.Subscribe
	newSessionID           = crypto.GenerateSessionID
)

// AuthService issues password sessions. Sessions live in Redis, changes are fanned out over Pub/Sub.
type AuthService struct {
	db       *gorm.DB
	sessions sessionStore
	tokens   *jwt.JWTService
	ttl      time.Duration
	now      func() time.Time
}

var _ repositories.AuthService = (*AuthService)(nil)

func NewAuthService(db *gorm.DB, sessions sessionStore, tokens *jwt.JWTService, ttl time.Duration) *AuthService {
	return &AuthService{
		db:       db,
		sessions: sessions,
		tokens:   tokens,
		ttl:      ttl,
		now:      time.Now,
	}
}

func sessionChannel(sessionID string) string {
	return sessionChannelPrefix + sessionID
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (*entities.Session, error) {
	var identity models.Identity
	err := s.db.WithContext(ctx).Where("email = ?", entities.NormalizeEmail(email)).First(&identity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.Unauthorized("Invalid login credentials")
		}
		return nil, err
	}
	if identity.PasswordHash == "" || !crypto.CheckPassword(password, identity.PasswordHash) {
		return nil, domainerrors.Unauthorized("Invalid login credentials")
	}
	if identity.EmailConfirmedAt == nil {
		return nil, domainerrors.Unauthorized("Email not confirmed")
	}

	sessionID, err := newSessionID()
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.GenerateToken(identity.ID.String(), identity.Email, sessionID)
	if err != nil {
		return nil, err
	}

	session := &entities.Session{
		ID:          sessionID,
		UserID:      identity.ID,
		Email:       identity.Email,
		AccessToken: token,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.sessions.CreateSession(ctx, sessionID, &redis.SessionData{
		UserID:      identity.ID.String(),
		Email:       identity.Email,
		AccessToken: token,
		CreatedAt:   session.CreatedAt,
	}, s.ttl); err != nil {
		return nil, err
	}

	s.notify(ctx, sessionID, entities.SessionChange{Event: entities.SessionEventSignedIn, Session: session})
	return session, nil
}

func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	if err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
		return err
	}
	s.notify(ctx, sessionID, entities.SessionChange{Event: entities.SessionEventSignedOut})
	return nil
}

// GetSession returns nil, nil for missing, expired or tampered sessions.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*entities.Session, error) {
	if sessionID == "" {
		return nil, nil
	}
	data, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if redis.IsNil(err) {
			return nil, nil
		}
		return nil, err
	}

	claims, err := s.tokens.ValidateToken(data.AccessToken)
	if err != nil || claims.SessionID != sessionID {
		_ = s.sessions.DeleteSession(ctx, sessionID)
		return nil, nil
	}
	userID, err := uuid.Parse(data.UserID)
	if err != nil {
		return nil, err
	}

	return &entities.Session{
		ID:          sessionID,
		UserID:      userID,
		Email:       data.Email,
		AccessToken: data.AccessToken,
		CreatedAt:   data.CreatedAt,
	}, nil
}

// OnSessionChange subscribes fn to changes of one session. fn runs on the subscription goroutine.
func (s *AuthService) OnSessionChange(ctx context.Context, sessionID string, fn func(entities.SessionChange)) (repositories.Subscription, error) {
	ps := subscribeSessionEvents(ctx, sessionChannel(sessionID))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, err
	}

	sub := &pubSubSubscription{ps: ps, done: make(chan struct{})}
	ch := ps.Channel()
	go func() {
		defer close(sub.done)
		for msg := range ch {
			var change entities.SessionChange
			if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
				logger.Warn(ctx, "Dropping malformed session event", zap.String("channel", msg.Channel), zap.Error(err))
				continue
			}
			fn(change)
		}
	}()
	return sub, nil
}

func (s *AuthService) notify(ctx context.Context, sessionID string, change entities.SessionChange) {
	if change.Session != nil {
		redacted := *change.Session
		redacted.AccessToken = ""
		change.Session = &redacted
	}
	payload, err := json.Marshal(change)
	if err != nil {
		return
	}
	if err := publishSessionEvent(ctx, sessionChannel(sessionID), string(payload)); err != nil {
		logger.Warn(ctx, "Failed to publish session event", zap.String("event", string(change.Event)), zap.Error(err))
	}
}

type pubSubSubscription struct {
	ps   *goredis.PubSub
	done chan struct{}
	once sync.Once
	err  error
}

func (p *pubSubSubscription) Unsubscribe() error {
	p.once.Do(func() {
		p.err = p.ps.Close()
		<-p.done
	})
	return p.err
}
