package usecases

import (
	"context"

	"go.uber.org/zap"

	"stremini.backend/internal/domain/entities"
	domainerrors "stremini.backend/internal/domain/errors"
	"stremini.backend/internal/domain/repositories"
	"stremini.backend/pkg/logger"
)

// BootstrapUsecase seeds the first superadmin so invitations can be issued.
type BootstrapUsecase struct {
	elevated repositories.ElevatedDataService
	uow      repositories.UnitOfWork
}

func NewBootstrapUsecase(elevated repositories.ElevatedDataService, uow repositories.UnitOfWork) *BootstrapUsecase {
	return &BootstrapUsecase{elevated: elevated, uow: uow}
}

// EnsureSuperAdmin creates a confirmed identity for email with password if missing and
// makes sure it holds the superadmin role. Existing roles are kept.
func (u *BootstrapUsecase) EnsureSuperAdmin(ctx context.Context, email, password string) (*entities.Identity, error) {
	email = entities.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domainerrors.BadRequest("admin email and password are required")
	}

	var admin *entities.Identity
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		identities, err := u.elevated.ListIdentities(txCtx)
		if err != nil {
			return err
		}
		for i := range identities {
			if entities.NormalizeEmail(identities[i].Email) == email {
				admin = &identities[i]
				break
			}
		}
		if admin == nil {
			admin, err = u.elevated.CreateIdentity(txCtx, email, entities.CreateIdentityOptions{
				EmailConfirm: true,
				Password:     password,
			})
			if err != nil {
				return err
			}
			logger.Info(txCtx, "Bootstrap superadmin created", zap.String("email", email))
		}

		roles, err := u.elevated.GetRoles(txCtx, admin.ID)
		if err != nil {
			return err
		}
		if entities.HasRole(roles, entities.RoleSuperAdmin) {
			return nil
		}
		return u.elevated.UpsertRoles(txCtx, admin.ID, append(roles, entities.RoleSuperAdmin))
	})
	if err != nil {
		return nil, err
	}
	return admin, nil
}
