package screen

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/asp2131/rusty-scv/internal/models"
	"github.com/asp2131/rusty-scv/internal/theme"
)

// StudentManagement shows a class roster and the add/remove actions.
type StudentManagement struct {
	thm     *theme.Theme
	class   models.Class
	menu    *Menu
	spinner string

	students    []models.Student
	loaded      bool
	listVisible bool

	loading      bool
	needsRefresh bool
	errMsg       string
}

// NewStudentManagement builds the roster screen; the list loads on the
// first tick.
func NewStudentManagement(ctx Context) *StudentManagement {
	items := []MenuItem{
		{Title: "Add Students", Desc: "comma-separated usernames", Hotkey: "a"},
		{Title: "Remove Student", Desc: "delete one from the roster", Hotkey: "r"},
		{Title: "Back"},
	}
	return &StudentManagement{
		thm:          ctx.Theme,
		class:        *ctx.Class,
		menu:         NewMenu(items),
		listVisible:  true,
		needsRefresh: true,
	}
}

// Kind returns the screen kind.
func (s *StudentManagement) Kind() Kind { return KindStudentManagement }

// HandleKey moves the cursor, toggles the list, or dispatches.
func (s *StudentManagement) HandleKey(msg tea.KeyMsg) *Event {
	key := msg.String()
	switch key {
	case keyUp, "k":
		s.menu.MoveUp()
		return nil
	case keyDown, "j":
		s.menu.MoveDown()
		return nil
	case "l":
		s.listVisible = !s.listVisible
		return nil
	case keyEnter:
		return s.dispatch(s.menu.Cursor())
	case keyEsc:
		return GoBack()
	}

	if i := s.menu.HotkeyIndex(key); i >= 0 {
		s.menu.SetCursor(i)
		return s.dispatch(i)
	}
	return nil
}

func (s *StudentManagement) dispatch(i int) *Event {
	switch i {
	case 0:
		return NavigateToClass(KindAddStudents, s.class)
	case 1:
		if s.loaded && len(s.students) == 0 {
			return ShowError("No students to remove")
		}
		return NavigateToClass(KindRemoveStudent, s.class)
	case 2:
		return GoBack()
	default:
		return nil
	}
}

// Tick animates the menu and keeps the roster fresh.
func (s *StudentManagement) Tick(delta time.Duration, ctx Context) DataRequest {
	s.thm = ctx.Theme
	s.spinner = ctx.Spinner
	s.menu.Tick(delta)
	if s.needsRefresh && !s.loading {
		s.loading = true
		return RequestStudents
	}
	return RequestNone
}

// Apply installs a loaded roster.
func (s *StudentManagement) Apply(result any) {
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
}

// Refresh marks the roster stale.
func (s *StudentManagement) Refresh() {
	s.needsRefresh = true
}

// Students returns the cached roster.
func (s *StudentManagement) Students() []models.Student {
	return s.students
}

// View renders the actions menu and, when visible, the roster.
func (s *StudentManagement) View(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle(s.thm).Render("Students: " + s.class.Name))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View(s.thm))
	b.WriteString("\n\n")

	if s.listVisible {
		b.WriteString(s.rosterView())
		b.WriteString("\n\n")
	}
	if s.errMsg != "" {
		b.WriteString(errorStyle(s.thm).Render(s.errMsg))
		b.WriteString("\n\n")
	}

	b.WriteString(footerStyle(s.thm).Render("Enter to select • l to toggle list • Esc to go back"))
	return place(width, height, b.String())
}

func (s *StudentManagement) rosterView() string {
	switch {
	case !s.loaded:
		return loadingLine(s.thm, s.spinner, "Loading students...")
	case len(s.students) == 0:
		return subtitleStyle(s.thm).Render("No students in this class")
	}

	lines := make([]string, 0, len(s.students))
	nameStyle := textStyle(s.thm)
	ghStyle := subtitleStyle(s.thm)
	for _, student := range s.students {
		line := "  " + nameStyle.Render(student.Username)
		if student.GitHubUsername != student.Username {
			line += "  " + ghStyle.Render("("+student.GitHubUsername+")")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
