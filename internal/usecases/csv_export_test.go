package usecases_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stremini.backend/internal/domain/entities"
	"stremini.backend/internal/usecases"
)

func TestExportWaitlistCSV_CommaIsNotEscaped(t *testing.T) {
	rows := []entities.WaitlistEntry{
		{Email: "a@x.com", Status: entities.WaitlistStatusPending, Source: "website", CreatedAt: time.Date(2024, 5, 1, 8, 30, 0, 120e6, time.UTC)},
		{Email: `"b, c"@x.com`, Name: "B", Status: entities.WaitlistStatusApproved, Source: "referral", CreatedAt: time.Date(2024, 5, 2, 9, 0, 0, 0, time.FixedZone("CET", 3600))},
	}

	export := usecases.ExportWaitlistCSV(rows, time.Date(2024, 6, 9, 23, 0, 0, 0, time.UTC))

	lines := strings.Split(export.Content, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Email,Name,Status,Source,Created At", lines[0])
	assert.Equal(t, "a@x.com,,pending,website,2024-05-01T08:30:00.120Z", lines[1])
	// the embedded comma produces an extra column
	assert.Equal(t, `"b, c"@x.com,B,approved,referral,2024-05-02T08:00:00.000Z`, lines[2])
	assert.Len(t, strings.Split(lines[2], ","), 6)
	assert.Equal(t, "waitlist-2024-06-09.csv", export.Filename)
}

func TestExportWaitlistCSV_Empty(t *testing.T) {
	export := usecases.ExportWaitlistCSV(nil, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "Email,Name,Status,Source,Created At", export.Content)
	assert.Equal(t, "waitlist-2025-01-02.csv", export.Filename)
}
