package repositories

import (
	"context"

	"github.com/google/uuid"

	"stremini.backend/internal/domain/entities"
	domainRepos "stremini.backend/internal/domain/repositories"
)

// collectionRepository maps one data service collection of models M to entities E.
type collectionRepository[E any, M any] struct {
	ds         domainRepos.DataService
	collection string
	order      []domainRepos.Order
	toEntity   func(*M) E
	toModel    func(E) *M
}

func (r *collectionRepository[E, M]) LoadAll(ctx context.Context) ([]E, error) {
	return r.list(ctx, domainRepos.Query{Order: r.order})
}

func (r *collectionRepository[E, M]) list(ctx context.Context, q domainRepos.Query) ([]E, error) {
	var rows []M
	if err := r.ds.Select(ctx, r.collection, q, &rows); err != nil {
		return nil, err
	}
	items := make([]E, 0, len(rows))
	for i := range rows {
		items = append(items, r.toEntity(&rows[i]))
	}
	return items, nil
}

// Create inserts entity and returns the stored record with server-assigned fields.
func (r *collectionRepository[E, M]) Create(ctx context.Context, entity E) (E, error) {
	m := r.toModel(entity)
	if err := r.ds.Insert(ctx, r.collection, m); err != nil {
		var zero E
		return zero, err
	}
	return r.toEntity(m), nil
}

func (r *collectionRepository[E, M]) Update(ctx context.Context, id uuid.UUID, patch entities.Patch) error {
	return r.ds.Update(ctx, r.collection, id, patch)
}

func (r *collectionRepository[E, M]) Remove(ctx context.Context, id uuid.UUID) error {
	return r.ds.Delete(ctx, r.collection, id)
}
