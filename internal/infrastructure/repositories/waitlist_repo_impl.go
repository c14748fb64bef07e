package repositories

import (
	"github.com/volatiletech/null/v8"

	"stremini.backend/internal/domain/entities"
	domainRepos "stremini.backend/internal/domain/repositories"
	"stremini.backend/internal/infrastructure/models"
)

type WaitlistRepository struct {
	collectionRepository[entities.WaitlistEntry, models.WaitlistEntry]
}

var _ domainRepos.WaitlistRepository = (*WaitlistRepository)(nil)

// NewWaitlistRepository lists newest entries first
func NewWaitlistRepository(ds domainRepos.DataService) *WaitlistRepository {
	return &WaitlistRepository{collectionRepository[entities.WaitlistEntry, models.WaitlistEntry]{
		ds:         ds,
		collection: domainRepos.CollectionWaitlist,
		order:      []domainRepos.Order{{Column: entities.FieldCreatedAt, Desc: true}},
		toEntity:   waitlistToEntity,
		toModel:    waitlistToModel,
	}}
}

func waitlistToEntity(m *models.WaitlistEntry) entities.WaitlistEntry {
	return entities.WaitlistEntry{
		ID:         m.ID,
		Email:      m.Email,
		Name:       m.Name,
		Status:     entities.WaitlistStatus(m.Status),
		Source:     m.Source,
		Wishlist:   m.Wishlist,
		Notes:      m.Notes,
		CreatedAt:  m.CreatedAt,
		ApprovedAt: null.TimeFromPtr(m.ApprovedAt),
	}
}

func waitlistToModel(e entities.WaitlistEntry) *models.WaitlistEntry {
	return &models.WaitlistEntry{
		ID:         e.ID,
		Email:      e.Email,
		Name:       e.Name,
		Status:     string(e.Status),
		Source:     e.Source,
		Wishlist:   e.Wishlist,
		Notes:      e.Notes,
		CreatedAt:  e.CreatedAt,
		ApprovedAt: e.ApprovedAt.Ptr(),
	}
}
