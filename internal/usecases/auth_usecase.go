package usecases

import (
	"context"

	"stremini.backend/internal/domain/entities"
	domainerrors "stremini.backend/internal/domain/errors"
	"stremini.backend/internal/domain/repositories"
)

// AuthUsecase handles admin sign-in and sign-out
type AuthUsecase struct {
	auth       repositories.AuthService
	dashboards *DashboardRegistry
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(auth repositories.AuthService, dashboards *DashboardRegistry) *AuthUsecase {
	return &AuthUsecase{auth: auth, dashboards: dashboards}
}

// Login signs in with email and password. The data service's failure message is returned as is.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.Session, error) {
	if input == nil || input.Email == "" || input.Password == "" {
		return nil, domainerrors.ErrBadRequest
	}
	return u.auth.SignIn(ctx, input.Email, input.Password)
}

// Logout signs the session out and discards its dashboard.
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return domainerrors.Unauthorized("no active session")
	}
	if err := u.auth.SignOut(ctx, sessionID); err != nil {
		return err
	}
	if u.dashboards != nil {
		u.dashboards.Release(sessionID)
	}
	return nil
}

// CurrentSession resolves sessionID, failing with Unauthorized when it does not exist.
func (u *AuthUsecase) CurrentSession(ctx context.Context, sessionID string) (*entities.Session, error) {
	session, err := u.auth.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domainerrors.Unauthorized("no active session")
	}
	return session, nil
}
