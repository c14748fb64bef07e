package repositories

import (
	"context"

	"github.com/google/uuid"
	"stremini.backend/internal/domain/entities"
	"stremini.backend/pkg/utils"
)

// EntityRepository wraps one collection. Update and Remove only touch the given id.
type EntityRepository[E any] interface {
	LoadAll(ctx context.Context) ([]E, error)
	Create(ctx context.Context, entity E) (E, error)
	Update(ctx context.Context, id uuid.UUID, patch entities.Patch) error
	Remove(ctx context.Context, id uuid.UUID) error
}

type WaitlistRepository interface {
	EntityRepository[entities.WaitlistEntry]
}

type TeamRepository interface {
	EntityRepository[entities.TeamMember]
	ListActive(ctx context.Context) ([]entities.TeamMember, error)
}

type BlogRepository interface {
	EntityRepository[entities.BlogPost]
	ListPublished(ctx context.Context, pagination utils.PaginationParams) ([]entities.BlogPost, int64, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*entities.BlogPost, error)
}
