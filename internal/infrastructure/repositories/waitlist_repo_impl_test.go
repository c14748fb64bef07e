package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stremini.backend/internal/domain/entities"
	domainerrors "stremini.backend/internal/domain/errors"
	"stremini.backend/internal/infrastructure/dataservice"
)

func TestWaitlistRepository_CRUD(t *testing.T) {
	repo := NewWaitlistRepository(dataservice.NewClient(newTestDB(t)))
	ctx := adminCtx()

	first, err := repo.Create(context.Background(), entities.WaitlistEntry{Email: "first@x.com", Status: entities.WaitlistStatusPending, Source: "landing"})
	require.NoError(t, err)
	assert.False(t, first.CreatedAt.IsZero())

	time.Sleep(5 * time.Millisecond)
	second, err := repo.Create(context.Background(), entities.WaitlistEntry{Email: "second@x.com", Status: entities.WaitlistStatusPending, Wishlist: []string{"A", "B"}})
	require.NoError(t, err)

	all, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "newest first")
	assert.Equal(t, []string{"A", "B"}, all[0].Wishlist)

	now := time.Now().UTC()
	require.NoError(t, repo.Update(ctx, first.ID, entities.WaitlistStatusPatch(entities.WaitlistStatusApproved, now)))
	all, err = repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, entities.WaitlistStatusApproved, all[1].Status)
	assert.True(t, all[1].ApprovedAt.Valid)

	require.NoError(t, repo.Remove(ctx, first.ID))
	assert.ErrorIs(t, repo.Remove(ctx, first.ID), domainerrors.ErrNotFound)

	_, err = repo.LoadAll(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}
