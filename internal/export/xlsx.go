// Package export writes week-activity reports as xlsx workbooks.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/asp2131/rusty-scv/internal/models"
	"github.com/asp2131/rusty-scv/internal/utils"
)

// WriteWeekActivity saves one row per student covering the given
// weekday labels to {outDir}/{class}-activity.xlsx and returns the
// written path.
func WriteWeekActivity(className string, days []string, activities []models.WeekActivity, outDir string) (string, error) {
	path := filepath.Join(outDir, fmt.Sprintf(models.ActivityExportPattern, className))
	if err := WriteWeekActivityFile(path, className, days, activities); err != nil {
		return "", err
	}
	return path, nil
}

// WriteWeekActivityFile saves the same report to an explicit path.
func WriteWeekActivityFile(path, className string, days []string, activities []models.WeekActivity) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheetName := "Week Activity"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %v", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Student", "GitHub"}
	headers = append(headers, days...)
	headers = append(headers, "Total", "Last Commit")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Size:  12,
			Color: "#FFFFFF",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "#000000", Style: 1},
			{Type: "top", Color: "#000000", Style: 1},
			{Type: "bottom", Color: "#000000", Style: 1},
			{Type: "right", Color: "#000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %v", err)
	}

	dataStyle, err := f.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "#000000", Style: 1},
			{Type: "top", Color: "#000000", Style: 1},
			{Type: "bottom", Color: "#000000", Style: 1},
			{Type: "right", Color: "#000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Vertical: "top",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create data style: %v", err)
	}

	for i, header := range headers {
		cell := string(rune('A'+i)) + "1"
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	f.SetColWidth(sheetName, "A", "B", 20)
	lastCol := string(rune('A' + len(headers) - 1))
	f.SetColWidth(sheetName, lastCol, lastCol, 22)

	totalCommits := 0
	row := 2
	for _, activity := range activities {
		col := 0
		setCell := func(value any) {
			cell := string(rune('A'+col)) + strconv.Itoa(row)
			f.SetCellValue(sheetName, cell, value)
			f.SetCellStyle(sheetName, cell, cell, dataStyle)
			col++
		}

		setCell(activity.Student.Username)
		setCell(activity.Student.GitHubUsername)
		for _, day := range days {
			setCell(activity.DailyCommits[day])
		}
		setCell(activity.TotalCommits)
		setCell(lastCommitLabel(activity))

		totalCommits += activity.TotalCommits
		row++
	}

	if len(activities) > 0 {
		tableRange := fmt.Sprintf("A1:%s%d", lastCol, len(activities)+1)
		err = f.AddTable(sheetName, &excelize.Table{
			Range:          tableRange,
			Name:           "ActivityTable",
			StyleName:      "TableStyleMedium2",
			ShowRowStripes: &[]bool{true}[0],
		})
		if err != nil {
			return fmt.Errorf("failed to create table: %v", err)
		}
	}

	summarySheet := "Summary"
	if _, err := f.NewSheet(summarySheet); err == nil {
		f.SetCellValue(summarySheet, "A1", "Week Activity Summary")
		f.SetCellValue(summarySheet, "A2", "Class:")
		f.SetCellValue(summarySheet, "B2", className)
		f.SetCellValue(summarySheet, "A3", "Students:")
		f.SetCellValue(summarySheet, "B3", len(activities))
		f.SetCellValue(summarySheet, "A4", "Total Commits:")
		f.SetCellValue(summarySheet, "B4", totalCommits)
		f.SetCellValue(summarySheet, "A5", "Exported:")
		f.SetCellValue(summarySheet, "B5", time.Now().Format("2006-01-02 15:04"))

		titleStyle, _ := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{
				Bold: true,
				Size: 14,
			},
		})
		f.SetCellStyle(summarySheet, "A1", "A1", titleStyle)

		labelStyle, _ := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{
				Bold: true,
			},
		})
		f.SetCellStyle(summarySheet, "A2", "A5", labelStyle)

		f.SetColWidth(summarySheet, "A", "A", 20)
		f.SetColWidth(summarySheet, "B", "B", 30)

		f.SetActiveSheet(index)
	}

	if err := os.MkdirAll(filepath.Dir(path), utils.DefaultDirPerms); err != nil {
		return fmt.Errorf("failed to create export directory: %v", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save Excel file: %v", err)
	}

	return nil
}

func lastCommitLabel(activity models.WeekActivity) string {
	if activity.Err != "" {
		return "error: " + activity.Err
	}
	if activity.LatestCommit == nil {
		return "never"
	}
	return activity.LatestCommit.Format("2006-01-02 15:04")
}
