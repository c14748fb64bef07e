package repositories

import (
	"context"

	"github.com/volatiletech/null/v8"

	"stremini.backend/internal/domain/entities"
	domainerrors "stremini.backend/internal/domain/errors"
	domainRepos "stremini.backend/internal/domain/repositories"
	"stremini.backend/internal/infrastructure/models"
	"stremini.backend/pkg/utils"
)

type BlogRepository struct {
	collectionRepository[entities.BlogPost, models.BlogPost]
}

var _ domainRepos.BlogRepository = (*BlogRepository)(nil)

// NewBlogRepository lists newest posts first
func NewBlogRepository(ds domainRepos.DataService) *BlogRepository {
	return &BlogRepository{collectionRepository[entities.BlogPost, models.BlogPost]{
		ds:         ds,
		collection: domainRepos.CollectionBlogPosts,
		order:      []domainRepos.Order{{Column: entities.FieldCreatedAt, Desc: true}},
		toEntity:   blogToEntity,
		toModel:    blogToModel,
	}}
}

// ListPublished returns one page of published posts and the total published count
func (r *BlogRepository) ListPublished(ctx context.Context, pagination utils.PaginationParams) ([]entities.BlogPost, int64, error) {
	q := domainRepos.Query{Order: r.order}.Eq(entities.FieldIsPublished, true)

	total, err := r.ds.Count(ctx, r.collection, q)
	if err != nil {
		return nil, 0, err
	}

	q.Limit = pagination.Limit
	q.Offset = pagination.CalculateOffset()
	items, err := r.list(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *BlogRepository) GetPublishedBySlug(ctx context.Context, slug string) (*entities.BlogPost, error) {
	q := domainRepos.Query{Limit: 1}.
		Eq(entities.FieldSlug, slug).
		Eq(entities.FieldIsPublished, true)
	items, err := r.list(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domainerrors.ErrNotFound
	}
	return &items[0], nil
}

func blogToEntity(m *models.BlogPost) entities.BlogPost {
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	return entities.BlogPost{
		ID:               m.ID,
		Title:            m.Title,
		Slug:             m.Slug,
		Excerpt:          m.Excerpt,
		Content:          m.Content,
		Author:           m.Author,
		FeaturedImageURL: m.FeaturedImageURL,
		Tags:             tags,
		IsPublished:      m.IsPublished,
		PublishedAt:      null.TimeFromPtr(m.PublishedAt),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func blogToModel(e entities.BlogPost) *models.BlogPost {
	return &models.BlogPost{
		ID:               e.ID,
		Title:            e.Title,
		Slug:             e.Slug,
		Excerpt:          e.Excerpt,
		Content:          e.Content,
		Author:           e.Author,
		FeaturedImageURL: e.FeaturedImageURL,
		Tags:             e.Tags,
		IsPublished:      e.IsPublished,
		PublishedAt:      e.PublishedAt.Ptr(),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}
