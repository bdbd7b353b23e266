package screen

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/asp2131/rusty-scv/internal/models"
	"github.com/asp2131/rusty-scv/internal/theme"
)

func activityTableStyles(thm *theme.Theme) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(thm.Border).
		BorderBottom(true).
		Bold(true).
		Foreground(thm.Accent)
	s.Cell = s.Cell.Foreground(thm.TextFg)
	s.Selected = s.Selected.
		Foreground(thm.AccentFg).
		Background(thm.Accent).
		Bold(true)
	return s
}

func clampTableHeight(rows int) int {
	switch {
	case rows < 3:
		return 3
	case rows > 12:
		return 12
	default:
		return rows
	}
}

// WeekView tables commits per student over the five most recent
// weekdays.
type WeekView struct {
	thm       *theme.Theme
	class     models.Class
	spinner   string
	showIcons bool

	table      table.Model
	days       []string
	activities []models.WeekActivity
	loaded     bool

	loading      bool
	needsRefresh bool
	errMsg       string
}

// NewWeekView builds the weekday table; activity loads on the first
// tick.
func NewWeekView(ctx Context) *WeekView {
	t := table.New(table.WithFocused(true))
	t.SetStyles(activityTableStyles(ctx.Theme))
	return &WeekView{
		thm:          ctx.Theme,
		class:        *ctx.Class,
		showIcons:    ctx.ShowIcons,
		table:        t,
		needsRefresh: true,
	}
}

// Kind returns the screen kind.
func (s *WeekView) Kind() Kind { return KindWeekView }

// HandleKey exports, refreshes, or forwards navigation to the table.
func (s *WeekView) HandleKey(msg tea.KeyMsg) *Event {
	switch msg.String() {
	case "e":
		if !s.loaded || len(s.activities) == 0 {
			return nil
		}
		return &Event{
			Op:         OpExportActivity,
			Class:      &s.class,
			Days:       s.days,
			Activities: s.activities,
		}
	case "r":
		return RefreshData()
	case keyEsc:
		return GoBack()
	}
	s.table, _ = s.table.Update(msg)
	return nil
}

// Tick keeps the weekday table fresh.
func (s *WeekView) Tick(delta time.Duration, ctx Context) DataRequest {
	s.thm = ctx.Theme
	s.spinner = ctx.Spinner
	s.showIcons = ctx.ShowIcons
	if s.needsRefresh && !s.loading {
		s.loading = true
		return RequestWeekActivity
	}
	return RequestNone
}

// Apply installs a loaded week of activity.
func (s *WeekView) Apply(result any) {
	r, ok := result.(WeekActivityResult)
	if !ok {
		return
	}
	s.loading = false
	s.needsRefresh = false
	if r.Err != "" {
		s.errMsg = r.Err
		return
	}
	s.errMsg = ""
	s.days = r.Days
	s.activities = r.Activities
	s.loaded = true
	s.rebuildTable()
}

func (s *WeekView) rebuildTable() {
	columns := make([]table.Column, 0, len(s.days)+2)
	columns = append(columns, table.Column{Title: "Student", Width: 16})
	for _, day := range s.days {
		columns = append(columns, table.Column{Title: day, Width: 5})
	}
	columns = append(columns, table.Column{Title: "Total", Width: 7})

	rows := make([]table.Row, 0, len(s.activities))
	for _, activity := range s.activities {
		row := make(table.Row, 0, len(s.days)+2)
		row = append(row, activity.Student.Username)
		for _, day := range s.days {
			mark := missedMark(s.showIcons)
			if activity.Err == "" && activity.DailyCommits[day] > 0 {
				mark = committedMark(s.showIcons)
			}
			row = append(row, mark)
		}
		total := strconv.Itoa(activity.TotalCommits)
		if activity.Err != "" {
			total = "error"
		}
		row = append(row, total)
		rows = append(rows, row)
	}

	s.table.SetColumns(columns)
	s.table.SetRows(rows)
	s.table.SetHeight(clampTableHeight(len(rows)))
	s.table.SetStyles(activityTableStyles(s.thm))
}

// Refresh marks the week stale.
func (s *WeekView) Refresh() {
	s.needsRefresh = true
}

// detailLine shows heat-colored per-day counts for the selected row.
func (s *WeekView) detailLine() string {
	idx := s.table.Cursor()
	if idx < 0 || idx >= len(s.activities) {
		return ""
	}
	activity := s.activities[idx]
	if activity.Err != "" {
		return errorStyle(s.thm).Render(activity.Student.Username + ": " + activity.Err)
	}
	parts := make([]string, 0, len(s.days))
	for _, day := range s.days {
		count := activity.DailyCommits[day]
		level := theme.ActivityLevelForCount(count)
		countStyle := lipgloss.NewStyle().Foreground(s.thm.ActivityColor(level)).Bold(true)
		parts = append(parts, day+" "+countStyle.Render(strconv.Itoa(count)))
	}
	return textStyle(s.thm).Render(activity.Student.Username+": ") + strings.Join(parts, "  ")
}

// View renders the weekday table.
func (s *WeekView) View(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle(s.thm).Render("Week Activity: " + s.class.Name))
	b.WriteString("\n\n")

	switch {
	case s.errMsg != "":
		b.WriteString(errorStyle(s.thm).Render(s.errMsg))
		b.WriteString("\n\n")
		b.WriteString(footerStyle(s.thm).Render("r to retry • Esc to go back"))
	case !s.loaded:
		b.WriteString(loadingLine(s.thm, s.spinner, "Fetching commit activity..."))
	case len(s.activities) == 0:
		b.WriteString(subtitleStyle(s.thm).Render("No students in this class"))
		b.WriteString("\n\n")
		b.WriteString(footerStyle(s.thm).Render("Esc to go back"))
	default:
		b.WriteString(s.table.View())
		b.WriteString("\n\n")
		if detail := s.detailLine(); detail != "" {
			b.WriteString(detail)
			b.WriteString("\n\n")
		}
		week := 0
		for _, activity := range s.activities {
			week += activity.TotalCommits
		}
		b.WriteString(subtitleStyle(s.thm).Render(fmt.Sprintf("%d commits this week", week)))
		b.WriteString("\n\n")
		b.WriteString(footerStyle(s.thm).Render("j/k to move • e export • r refresh • Esc back"))
	}

	return place(width, height, b.String())
}
