package dataservice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stremini.backend/internal/domain/entities"
	domainerrors "stremini.backend/internal/domain/errors"
	"stremini.backend/internal/domain/repositories"
	"stremini.backend/internal/infrastructure/models"
	"stremini.backend/pkg/crypto"
)

// ElevatedClient bypasses row-level rules and reaches the identity subsystem.
// It is a distinct type so it cannot be handed to code expecting the normal client by accident.
type ElevatedClient struct {
	base         *Client
	hashPassword func(string) (string, error)
	now          func() time.Time
}

var _ repositories.ElevatedDataService = (*ElevatedClient)(nil)

// NewElevatedClient creates the service-credentialed client
func NewElevatedClient(db *gorm.DB) *ElevatedClient {
	return &ElevatedClient{
		base:         &Client{db: db, elevated: true},
		hashPassword: crypto.HashPassword,
		now:          time.Now,
	}
}

func (c *ElevatedClient) Select(ctx context.Context, name string, q repositories.Query, dest interface{}) error {
	return c.base.Select(ctx, name, q, dest)
}

func (c *ElevatedClient) Count(ctx context.Context, name string, q repositories.Query) (int64, error) {
	return c.base.Count(ctx, name, q)
}

func (c *ElevatedClient) Insert(ctx context.Context, name string, record interface{}) error {
	return c.base.Insert(ctx, name, record)
}

func (c *ElevatedClient) Update(ctx context.Context, name string, id uuid.UUID, patch entities.Patch) error {
	return c.base.Update(ctx, name, id, patch)
}

func (c *ElevatedClient) Delete(ctx context.Context, name string, id uuid.UUID) error {
	return c.base.Delete(ctx, name, id)
}

func (c *ElevatedClient) ListIdentities(ctx context.Context) ([]entities.Identity, error) {
	var rows []models.Identity
	q := repositories.Query{Order: []repositories.Order{{Column: entities.FieldCreatedAt}}}
	if err := c.Select(ctx, repositories.CollectionIdentities, q, &rows); err != nil {
		return nil, err
	}
	out := make([]entities.Identity, 0, len(rows))
	for i := range rows {
		out = append(out, toIdentityEntity(&rows[i]))
	}
	return out, nil
}

func (c *ElevatedClient) CreateIdentity(ctx context.Context, email string, opts entities.CreateIdentityOptions) (*entities.Identity, error) {
	m := &models.Identity{
		Email:    entities.NormalizeEmail(email),
		Metadata: opts.Metadata,
	}
	if opts.EmailConfirm {
		now := c.now()
		m.EmailConfirmedAt = &now
	}
	if opts.Password != "" {
		hash, err := c.hashPassword(opts.Password)
		if err != nil {
			return nil, err
		}
		m.PasswordHash = hash
	}

	if err := c.Insert(ctx, repositories.CollectionIdentities, m); err != nil {
		var appErr *domainerrors.AppError
		if errors.As(err, &appErr) && appErr.Code == domainerrors.CodeConflict {
			return nil, domainerrors.Conflict("identity already exists")
		}
		return nil, err
	}
	identity := toIdentityEntity(m)
	return &identity, nil
}

func (c *ElevatedClient) GetRoles(ctx context.Context, userID uuid.UUID) ([]entities.Role, error) {
	var rows []models.UserRole
	q := repositories.Query{}.Eq("user_id", userID)
	if err := c.Select(ctx, repositories.CollectionUserRoles, q, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	roles := make([]entities.Role, 0, len(rows[0].Roles))
	for _, r := range rows[0].Roles {
		roles = append(roles, entities.Role(r))
	}
	return roles, nil
}

// UpsertRoles overwrites the role set keyed by user id
func (c *ElevatedClient) UpsertRoles(ctx context.Context, userID uuid.UUID, roles []entities.Role) error {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, string(r))
	}
	row := &models.UserRole{UserID: userID, Roles: names, UpdatedAt: c.now()}

	return c.base.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"roles", "updated_at"}),
	}).Create(row).Error
}

func toIdentityEntity(m *models.Identity) entities.Identity {
	return entities.Identity{
		ID:               m.ID,
		Email:            m.Email,
		EmailConfirmedAt: null.TimeFromPtr(m.EmailConfirmedAt),
		Metadata:         m.Metadata,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
