package repositories

import (
	"context"

	"stremini.backend/internal/domain/entities"
	domainRepos "stremini.backend/internal/domain/repositories"
	"stremini.backend/internal/infrastructure/models"
)

type TeamRepository struct {
	collectionRepository[entities.TeamMember, models.TeamMember]
}

var _ domainRepos.TeamRepository = (*TeamRepository)(nil)

// NewTeamRepository lists members by display_order, oldest first on ties
func NewTeamRepository(ds domainRepos.DataService) *TeamRepository {
	return &TeamRepository{collectionRepository[entities.TeamMember, models.TeamMember]{
		ds:         ds,
		collection: domainRepos.CollectionTeamMembers,
		order: []domainRepos.Order{
			{Column: entities.FieldDisplayOrder},
			{Column: entities.FieldCreatedAt},
		},
		toEntity: teamToEntity,
		toModel:  teamToModel,
	}}
}

func (r *TeamRepository) ListActive(ctx context.Context) ([]entities.TeamMember, error) {
	return r.list(ctx, domainRepos.Query{Order: r.order}.Eq(entities.FieldIsActive, true))
}

func teamToEntity(m *models.TeamMember) entities.TeamMember {
	return entities.TeamMember{
		ID:           m.ID,
		Name:         m.Name,
		Role:         m.Role,
		Category:     entities.TeamCategory(m.Category),
		ImageURL:     m.ImageURL,
		LinkedInURL:  m.LinkedInURL,
		TwitterURL:   m.TwitterURL,
		InstagramURL: m.InstagramURL,
		DisplayOrder: m.DisplayOrder,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func teamToModel(e entities.TeamMember) *models.TeamMember {
	return &models.TeamMember{
		ID:           e.ID,
		Name:         e.Name,
		Role:         e.Role,
		Category:     string(e.Category),
		ImageURL:     e.ImageURL,
		LinkedInURL:  e.LinkedInURL,
		TwitterURL:   e.TwitterURL,
		InstagramURL: e.InstagramURL,
		DisplayOrder: e.DisplayOrder,
		IsActive:     e.IsActive,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
