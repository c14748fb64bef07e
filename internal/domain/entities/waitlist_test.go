package entities

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitlistStatusPatchKeepsApprovedAtInStep(t *testing.T) {
	now := time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC)
	entry := WaitlistEntry{ID: uuid.New(), Email: "a@x.com", Status: WaitlistStatusPending}

	for _, status := range WaitlistStatuses() {
		got := entry.Apply(WaitlistStatusPatch(status, now))
		assert.Equal(t, status, got.Status)
		if status == WaitlistStatusApproved {
			require.True(t, got.ApprovedAt.Valid, status)
			assert.True(t, now.Equal(got.ApprovedAt.Time))
		} else {
			assert.False(t, got.ApprovedAt.Valid, status)
		}
	}

	approved := entry.Apply(WaitlistStatusPatch(WaitlistStatusApproved, now))
	removed := approved.Apply(WaitlistStatusPatch(WaitlistStatusRemoved, now))
	assert.False(t, removed.ApprovedAt.Valid)
}

func TestWaitlistStatusTable(t *testing.T) {
	assert.Equal(t, []WaitlistStatus{WaitlistStatusPending, WaitlistStatusApproved, WaitlistStatusRemoved}, WaitlistStatuses())
	assert.True(t, WaitlistStatusApproved.Valid())
	assert.False(t, WaitlistStatus("archived").Valid())
	assert.Equal(t, "Approved", WaitlistStatusApproved.Label())
	assert.Equal(t, "archived", WaitlistStatus("archived").Label())
}

func TestWaitlistApplyFieldOverwrite(t *testing.T) {
	entry := WaitlistEntry{Email: "a@x.com", Name: "Ann", Notes: "n", Wishlist: []string{"A"}}
	got := entry.Apply(Patch{FieldNotes: "vip", FieldStatus: "approved", "unknown": 1})
	assert.Equal(t, "vip", got.Notes)
	assert.Equal(t, WaitlistStatusApproved, got.Status)
	assert.Equal(t, "Ann", got.Name)
	assert.Equal(t, "n", entry.Notes)
}
