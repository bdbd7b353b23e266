package screen

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/asp2131/rusty-scv/internal/models"
	"github.com/asp2131/rusty-scv/internal/theme"
)

// ClassManagement is the hub for one class: students, repositories,
// activity, deletion. The student count is a cached snapshot refreshed
// whenever the screen is (re)revealed.
type ClassManagement struct {
	thm     *theme.Theme
	class   models.Class
	menu    *Menu
	spinner string

	count        int
	haveCount    bool
	loading      bool
	needsRefresh bool
	errMsg       string
}

// NewClassManagement builds the class hub.
func NewClassManagement(ctx Context) *ClassManagement {
	items := []MenuItem{
		{Title: "Manage Students", Desc: "add or remove students", Hotkey: "s"},
		{Title: "Repository Management", Desc: "clone, pull, clean", Hotkey: "r"},
		{Title: "GitHub Activity", Desc: "weekly and latest commits", Hotkey: "g"},
		{Title: "Delete Class", Desc: "remove class and students", Hotkey: "d", Danger: true},
		{Title: "Back"},
	}
	return &ClassManagement{
		thm:          ctx.Theme,
		class:        *ctx.Class,
		menu:         NewMenu(items),
		needsRefresh: true,
	}
}

// Kind returns the screen kind.
func (s *ClassManagement) Kind() Kind { return KindClassManagement }

// HandleKey moves the cursor or dispatches the selected action.
func (s *ClassManagement) HandleKey(msg tea.KeyMsg) *Event {
	key := msg.String()
	switch key {
	case keyUp, "k":
		s.menu.MoveUp()
		return nil
	case keyDown, "j":
		s.menu.MoveDown()
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

func (s *ClassManagement) dispatch(i int) *Event {
	switch i {
	case 0:
		return NavigateToClass(KindStudentManagement, s.class)
	case 1:
		return NavigateToClass(KindRepositoryManagement, s.class)
	case 2:
		return NavigateToClass(KindGitHubActivity, s.class)
	case 3:
		return NavigateToClass(KindConfirmDeleteClass, s.class)
	case 4:
		return GoBack()
	default:
		return nil
	}
}

// Tick animates the menu and keeps the student count fresh.
func (s *ClassManagement) Tick(delta time.Duration, ctx Context) DataRequest {
	s.thm = ctx.Theme
	s.spinner = ctx.Spinner
	s.menu.Tick(delta)
	if s.needsRefresh && !s.loading {
		s.loading = true
		return RequestStudentCount
	}
	return RequestNone
}

// Apply installs a refreshed student count.
func (s *ClassManagement) Apply(result any) {
	r, ok := result.(CountResult)
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
	s.count = r.Count
	s.haveCount = true
}

// Refresh marks the student count stale.
func (s *ClassManagement) Refresh() {
	s.needsRefresh = true
}

// Class returns the class this screen manages.
func (s *ClassManagement) Class() models.Class {
	return s.class
}

// View renders the class hub.
func (s *ClassManagement) View(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle(s.thm).Render("Class: " + s.class.Name))
	b.WriteString("\n")

	switch {
	case s.errMsg != "":
		b.WriteString(errorStyle(s.thm).Render(s.errMsg))
	case s.haveCount:
		label := fmt.Sprintf("%d students enrolled", s.count)
		if s.count == 1 {
			label = "1 student enrolled"
		}
		b.WriteString(subtitleStyle(s.thm).Render(label))
	default:
		b.WriteString(loadingLine(s.thm, s.spinner, "Counting students..."))
	}

	b.WriteString("\n\n")
	b.WriteString(s.menu.View(s.thm))
	b.WriteString("\n\n")
	b.WriteString(footerStyle(s.thm).Render("j/k to move • Enter to select • Esc to go back"))

	return place(width, height, b.String())
}
