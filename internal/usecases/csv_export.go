package usecases

import (
	"strings"
	"time"

	"stremini.backend/internal/domain/entities"
)

const (
	csvHeader          = "Email,Name,Status,Source,Created At"
	csvTimestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// CSVExport is a downloadable waitlist artifact
type CSVExport struct {
	Filename string
	Content  string
}

// ExportWaitlistCSV renders rows in order. Fields are joined with literal commas and are not quoted,
// so a value containing a comma shifts the columns of its row.
func ExportWaitlistCSV(rows []entities.WaitlistEntry, now time.Time) CSVExport {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, csvHeader)
	for _, e := range rows {
		lines = append(lines, strings.Join([]string{
			e.Email,
			e.Name,
			string(e.Status),
			e.Source,
			e.CreatedAt.UTC().Format(csvTimestampLayout),
		}, ","))
	}
	return CSVExport{
		Filename: "waitlist-" + now.UTC().Format("2006-01-02") + ".csv",
		Content:  strings.Join(lines, "\n"),
	}
}
