package export

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/asp2131/rusty-scv/internal/models"
)

func TestWriteWeekActivity(t *testing.T) {
	latest := time.Date(2026, 8, 25, 9, 30, 0, 0, time.UTC)
	days := []string{"Thu", "Fri", "Mon", "Tue", "Wed"}
	activities := []models.WeekActivity{
		{
			Student:      models.Student{Username: "ana", GitHubUsername: "ana-gh"},
			DailyCommits: map[string]int{"Mon": 2, "Wed": 1},
			TotalCommits: 3,
			LatestCommit: &latest,
		},
		{
			Student: models.Student{Username: "bob", GitHubUsername: "bob"},
		},
	}

	outDir := filepath.Join(t.TempDir(), "exports")
	path, err := WriteWeekActivity("CS101", days, activities, outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "CS101-activity.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheet := "Week Activity"

	header, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Student", header)

	for i, day := range days {
		cell := fmt.Sprintf("%c1", 'C'+i)
		got, err := f.GetCellValue(sheet, cell)
		require.NoError(t, err)
		assert.Equal(t, day, got)
	}

	// ana: Mon count in column E (Thu, Fri, Mon), total in H, timestamp in I.
	mon, err := f.GetCellValue(sheet, "E2")
	require.NoError(t, err)
	assert.Equal(t, "2", mon)

	total, err := f.GetCellValue(sheet, "H2")
	require.NoError(t, err)
	assert.Equal(t, "3", total)

	last, err := f.GetCellValue(sheet, "I2")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-25 09:30", last)

	// bob never committed.
	last, err = f.GetCellValue(sheet, "I3")
	require.NoError(t, err)
	assert.Equal(t, "never", last)

	summary, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "CS101", summary)
}

func TestWriteWeekActivityEmptyRoster(t *testing.T) {
	path, err := WriteWeekActivity("CS101", []string{"Mon"}, nil, t.TempDir())
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestLastCommitLabel(t *testing.T) {
	assert.Equal(t, "never", lastCommitLabel(models.WeekActivity{}))
	assert.Equal(t, "error: boom", lastCommitLabel(models.WeekActivity{Err: "boom"}))

	at := time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)
	assert.Equal(t, "2026-01-02 03:04", lastCommitLabel(models.WeekActivity{LatestCommit: &at}))
}
