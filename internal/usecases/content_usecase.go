package usecases

import (
	"context"
	"strings"

	"stremini.backend/internal/domain/entities"
	domainerrors "stremini.backend/internal/domain/errors"
	"stremini.backend/internal/domain/repositories"
	"stremini.backend/pkg/utils"
)

// ContentUsecase serves the anonymous team and blog pages
type ContentUsecase struct {
	teamRepo        repositories.TeamRepository
	blogRepo        repositories.BlogRepository
	defaultPageSize int
}

func NewContentUsecase(teamRepo repositories.TeamRepository, blogRepo repositories.BlogRepository, defaultPageSize int) *ContentUsecase {
	return &ContentUsecase{
		teamRepo:        teamRepo,
		blogRepo:        blogRepo,
		defaultPageSize: defaultPageSize,
	}
}

// ListTeam returns active members ordered by display_order
func (u *ContentUsecase) ListTeam(ctx context.Context) ([]entities.TeamMember, error) {
	return u.teamRepo.ListActive(ctx)
}

// ListBlogPosts returns published posts newest first
func (u *ContentUsecase) ListBlogPosts(ctx context.Context, page, limit int) ([]entities.BlogPost, utils.PaginationMeta, error) {
	if limit == 0 {
		limit = u.defaultPageSize
	}
	params := utils.GetPaginationParams(page, limit)
	posts, total, err := u.blogRepo.ListPublished(ctx, params)
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return posts, utils.CalculateMeta(total, params.Page, params.Limit), nil
}

func (u *ContentUsecase) GetBlogPost(ctx context.Context, slug string) (*entities.BlogPost, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, domainerrors.BadRequest("slug is required")
	}
	return u.blogRepo.GetPublishedBySlug(ctx, slug)
}
