package screen

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/asp2131/rusty-scv/internal/models"
	"github.com/asp2131/rusty-scv/internal/theme"
	"github.com/asp2131/rusty-scv/internal/utils"
)

// LatestActivity tables the most recent commit per student with a
// humanized ago-time.
type LatestActivity struct {
	thm     *theme.Theme
	class   models.Class
	spinner string

	table      table.Model
	activities []models.WeekActivity
	loaded     bool

	loading      bool
	needsRefresh bool
	errMsg       string
}

// NewLatestActivity builds the latest-commit table; activity loads on
// the first tick.
func NewLatestActivity(ctx Context) *LatestActivity {
	t := table.New(table.WithFocused(true))
	t.SetStyles(activityTableStyles(ctx.Theme))
	return &LatestActivity{
		thm:          ctx.Theme,
		class:        *ctx.Class,
		table:        t,
		needsRefresh: true,
	}
}

// Kind returns the screen kind.
func (s *LatestActivity) Kind() Kind { return KindLatestActivity }

// HandleKey refreshes or forwards navigation to the table.
func (s *LatestActivity) HandleKey(msg tea.KeyMsg) *Event {
	switch msg.String() {
	case "r":
		return RefreshData()
	case keyEsc:
		return GoBack()
	}
	s.table, _ = s.table.Update(msg)
	return nil
}

// Tick keeps the table fresh.
func (s *LatestActivity) Tick(delta time.Duration, ctx Context) DataRequest {
	s.thm = ctx.Theme
	s.spinner = ctx.Spinner
	if s.needsRefresh && !s.loading {
		s.loading = true
		return RequestLatestActivity
	}
	return RequestNone
}

// Apply installs loaded last-commit times.
func (s *LatestActivity) Apply(result any) {
	r, ok := result.(LatestActivityResult)
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
	s.activities = r.Activities
	s.loaded = true
	s.rebuildTable(time.Now())
}

func (s *LatestActivity) rebuildTable(now time.Time) {
	columns := []table.Column{
		{Title: "Student", Width: 16},
		{Title: "GitHub", Width: 16},
		{Title: "Last Commit", Width: 18},
	}

	rows := make([]table.Row, 0, len(s.activities))
	for _, activity := range s.activities {
		last := "never"
		switch {
		case activity.Err != "":
			last = "error"
		case activity.LatestCommit != nil:
			last = utils.TimeAgo(*activity.LatestCommit, now)
		}
		rows = append(rows, table.Row{
			activity.Student.Username,
			activity.Student.GitHubUsername,
			last,
		})
	}

	s.table.SetColumns(columns)
	s.table.SetRows(rows)
	s.table.SetHeight(clampTableHeight(len(rows)))
	s.table.SetStyles(activityTableStyles(s.thm))
}

// Refresh marks the table stale.
func (s *LatestActivity) Refresh() {
	s.needsRefresh = true
}

// View renders the latest-commit table.
func (s *LatestActivity) View(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle(s.thm).Render("Latest Activity: " + s.class.Name))
	b.WriteString("\n\n")

	switch {
	case s.errMsg != "":
		b.WriteString(errorStyle(s.thm).Render(s.errMsg))
		b.WriteString("\n\n")
		b.WriteString(footerStyle(s.thm).Render("r to retry • Esc to go back"))
	case !s.loaded:
		b.WriteString(loadingLine(s.thm, s.spinner, "Fetching latest commits..."))
	case len(s.activities) == 0:
		b.WriteString(subtitleStyle(s.thm).Render("No students in this class"))
		b.WriteString("\n\n")
		b.WriteString(footerStyle(s.thm).Render("Esc to go back"))
	default:
		b.WriteString(s.table.View())
		b.WriteString("\n\n")
		errCount := 0
		for _, activity := range s.activities {
			if activity.Err != "" {
				errCount++
			}
		}
		if errCount > 0 {
			label := fmt.Sprintf("%d students could not be fetched", errCount)
			if errCount == 1 {
				label = "1 student could not be fetched"
			}
			b.WriteString(errorStyle(s.thm).Render(label))
			b.WriteString("\n\n")
		}
		b.WriteString(footerStyle(s.thm).Render("j/k to move • r refresh • Esc back"))
	}

	return place(width, height, b.String())
}
