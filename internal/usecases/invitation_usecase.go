package usecases

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stremini.backend/internal/domain/entities"
	domainerrors "stremini.backend/internal/domain/errors"
	"stremini.backend/internal/domain/repositories"
	"stremini.backend/internal/infrastructure/metrics"
	"stremini.backend/pkg/logger"
)

const (
	msgNoActiveSession    = "Unauthorized: no active session"
	msgSuperadminRequired = "Unauthorized: superadmin role required"
)

// InvitationUsecase provisions admin identities. Role checks and identity writes go
// through the elevated client only.
type InvitationUsecase struct {
	auth     repositories.AuthService
	elevated repositories.ElevatedDataService
}

func NewInvitationUsecase(auth repositories.AuthService, elevated repositories.ElevatedDataService) *InvitationUsecase {
	return &InvitationUsecase{auth: auth, elevated: elevated}
}

// InviteUser grants roles to email, creating a pre-confirmed identity when none exists.
// Repeating the call with the same email and roles is safe.
func (u *InvitationUsecase) InviteUser(ctx context.Context, callerSessionID string, input entities.InviteUserInput) entities.InviteResult {
	result := u.invite(ctx, callerSessionID, input)
	metrics.RecordInvitation(result.Success)
	return result
}

func (u *InvitationUsecase) invite(ctx context.Context, callerSessionID string, input entities.InviteUserInput) entities.InviteResult {
	if u.elevated == nil {
		return failure(domainerrors.ConfigurationError())
	}

	caller, err := u.auth.GetSession(ctx, callerSessionID)
	if err != nil {
		return failure(err)
	}
	if caller == nil {
		return entities.InviteResult{Error: msgNoActiveSession}
	}

	callerRoles, err := u.elevated.GetRoles(ctx, caller.UserID)
	if err != nil {
		return failure(err)
	}
	if !entities.HasRole(callerRoles, entities.RoleSuperAdmin) {
		return entities.InviteResult{Error: msgSuperadminRequired}
	}

	email := entities.NormalizeEmail(input.Email)
	if email == "" {
		return failure(domainerrors.BadRequest("email is required"))
	}
	if len(input.Roles) == 0 {
		return failure(domainerrors.BadRequest("at least one role is required"))
	}
	for _, r := range input.Roles {
		if !r.Valid() {
			return failure(domainerrors.BadRequest("invalid role: " + string(r)))
		}
	}

	userID, err := u.resolveIdentity(ctx, email)
	if err != nil {
		return failure(err)
	}
	if err := u.elevated.UpsertRoles(ctx, userID, input.Roles); err != nil {
		return failure(err)
	}

	logger.Info(ctx, "User invited",
		zap.String("email", email),
		zap.String("user_id", userID.String()),
		zap.String("invited_by", caller.UserID.String()),
	)
	return entities.InviteResult{Success: true, Message: "Invitation sent to " + email}
}

func (u *InvitationUsecase) resolveIdentity(ctx context.Context, email string) (uuid.UUID, error) {
	identities, err := u.elevated.ListIdentities(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	for _, identity := range identities {
		if entities.NormalizeEmail(identity.Email) == email {
			return identity.ID, nil
		}
	}

	created, err := u.elevated.CreateIdentity(ctx, email, entities.CreateIdentityOptions{
		EmailConfirm: true,
		Metadata:     map[string]interface{}{entities.MetadataInvited: true},
	})
	if err != nil {
		return uuid.Nil, err
	}
	return created.ID, nil
}

func failure(err error) entities.InviteResult {
	return entities.InviteResult{Error: errorMessage(err)}
}
