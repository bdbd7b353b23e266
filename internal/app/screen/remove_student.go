package screen

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/asp2131/rusty-scv/internal/models"
	"github.com/asp2131/rusty-scv/internal/theme"
)

// RemoveStudent lists the roster and deletes the selected student.
type RemoveStudent struct {
	thm     *theme.Theme
	class   models.Class
	spinner string

	menu     *Menu
	students []models.Student
	loaded   bool

	loading      bool
	needsRefresh bool
	errMsg       string
}

// NewRemoveStudent builds the removal list; the roster loads on the
// first tick.
func NewRemoveStudent(ctx Context) *RemoveStudent {
	return &RemoveStudent{
		thm:          ctx.Theme,
		class:        *ctx.Class,
		needsRefresh: true,
	}
}

// Kind returns the screen kind.
func (s *RemoveStudent) Kind() Kind { return KindRemoveStudent }

// HandleKey navigates the roster or deletes the selected student.
func (s *RemoveStudent) HandleKey(msg tea.KeyMsg) *Event {
	switch msg.String() {
	case keyUp, "k":
		if s.menu != nil {
			s.menu.MoveUp()
		}
		return nil
	case keyDown, "j":
		if s.menu != nil {
			s.menu.MoveDown()
		}
		return nil
	case keyEnter:
		if s.menu == nil || len(s.students) == 0 {
			return nil
		}
		student := s.students[s.menu.Cursor()]
		return &Event{Op: OpRemoveStudent, Student: &student, Class: &s.class}
	case "r":
		return RefreshData()
	case keyEsc:
		return GoBack()
	}
	return nil
}

// Tick animates the list and keeps the roster fresh.
func (s *RemoveStudent) Tick(delta time.Duration, ctx Context) DataRequest {
	s.thm = ctx.Theme
	s.spinner = ctx.Spinner
	if s.menu != nil {
		s.menu.Tick(delta)
	}
	if s.needsRefresh && !s.loading {
		s.loading = true
		return RequestStudents
	}
	return RequestNone
}

// Apply installs a loaded roster.
func (s *RemoveStudent) Apply(result any) {
	r, ok := result.(StudentsResult)
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
	s.students = r.Students
	s.loaded = true
	s.rebuildMenu()
}

func (s *RemoveStudent) rebuildMenu() {
	cursor := 0
	if s.menu != nil {
		cursor = s.menu.Cursor()
	}
	if cursor >= len(s.students) {
		cursor = len(s.students) - 1
	}

	items := make([]MenuItem, 0, len(s.students))
	for _, student := range s.students {
		desc := ""
		if student.GitHubUsername != student.Username {
			desc = student.GitHubUsername
		}
		items = append(items, MenuItem{Title: student.Username, Desc: desc})
	}
	s.menu = NewMenu(items)
	s.menu.SetCursor(cursor)
}

// Refresh marks the roster stale.
func (s *RemoveStudent) Refresh() {
	s.needsRefresh = true
}

// View renders the removal list.
func (s *RemoveStudent) View(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle(s.thm).Render("Remove Student: " + s.class.Name))
	b.WriteString("\n\n")

	switch {
	case s.errMsg != "":
		b.WriteString(errorStyle(s.thm).Render(s.errMsg))
		b.WriteString("\n\n")
		b.WriteString(footerStyle(s.thm).Render("r to retry • Esc to go back"))
	case !s.loaded:
		b.WriteString(loadingLine(s.thm, s.spinner, "Loading students..."))
	case len(s.students) == 0:
		b.WriteString(subtitleStyle(s.thm).Render("No students in this class"))
		b.WriteString("\n\n")
		b.WriteString(footerStyle(s.thm).Render("Esc to go back"))
	default:
		b.WriteString(s.menu.View(s.thm))
		b.WriteString("\n\n")
		b.WriteString(footerStyle(s.thm).Render("Enter to remove • r refresh • Esc back"))
	}

	return place(width, height, b.String())
}
