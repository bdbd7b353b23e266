package screen

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/asp2131/rusty-scv/internal/models"
	"github.com/asp2131/rusty-scv/internal/theme"
)

// ClassSelection lists classes with their student counts and selects
// one for management.
type ClassSelection struct {
	thm     *theme.Theme
	spinner string

	menu    *Menu
	classes []models.Class
	counts  map[int64]int

	loading      bool
	needsRefresh bool
	errMsg       string
}

// NewClassSelection builds the class list screen; the roster loads on
// the first tick.
func NewClassSelection(ctx Context) *ClassSelection {
	return &ClassSelection{
		thm:          ctx.Theme,
		needsRefresh: true,
	}
}

// Kind returns the screen kind.
func (s *ClassSelection) Kind() Kind { return KindClassSelection }

// HandleKey navigates the list or selects a class.
func (s *ClassSelection) HandleKey(msg tea.KeyMsg) *Event {
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
		if s.menu == nil || len(s.classes) == 0 {
			return nil
		}
		return SelectClass(s.classes[s.menu.Cursor()])
	case "n":
		return NavigateTo(KindCreateClass)
	case "r":
		return RefreshData()
	case keyEsc:
		return GoBack()
	}
	return nil
}

// Tick animates the list and requests the roster while stale.
func (s *ClassSelection) Tick(delta time.Duration, ctx Context) DataRequest {
	s.thm = ctx.Theme
	s.spinner = ctx.Spinner
	if s.menu != nil {
		s.menu.Tick(delta)
	}
	if s.needsRefresh && !s.loading {
		s.loading = true
		return RequestClasses
	}
	return RequestNone
}

// Apply installs a loaded class list.
func (s *ClassSelection) Apply(result any) {
	r, ok := result.(ClassesResult)
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
	s.classes = r.Classes
	s.counts = r.Counts
	s.rebuildMenu()
}

func (s *ClassSelection) rebuildMenu() {
	cursor := 0
	if s.menu != nil {
		cursor = s.menu.Cursor()
	}
	if cursor >= len(s.classes) {
		cursor = len(s.classes) - 1
	}

	items := make([]MenuItem, 0, len(s.classes))
	for _, class := range s.classes {
		count := s.counts[class.ID]
		desc := fmt.Sprintf("%d students", count)
		if count == 1 {
			desc = "1 student"
		}
		items = append(items, MenuItem{Title: class.Name, Desc: desc})
	}
	s.menu = NewMenu(items)
	s.menu.SetCursor(cursor)
}

// Refresh marks the class list stale.
func (s *ClassSelection) Refresh() {
	s.needsRefresh = true
}

// View renders the class list.
func (s *ClassSelection) View(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle(s.thm).Render("Classes"))
	b.WriteString("\n\n")

	switch {
	case s.errMsg != "":
		b.WriteString(errorStyle(s.thm).Render(s.errMsg))
		b.WriteString("\n\n")
		b.WriteString(footerStyle(s.thm).Render("r to retry • Esc to go back"))
	case s.menu == nil:
		b.WriteString(loadingLine(s.thm, s.spinner, "Loading classes..."))
	case len(s.classes) == 0:
		b.WriteString(subtitleStyle(s.thm).Render("No classes yet."))
		b.WriteString("\n\n")
		b.WriteString(footerStyle(s.thm).Render("n to create a class • Esc to go back"))
	default:
		b.WriteString(s.menu.View(s.thm))
		b.WriteString("\n\n")
		b.WriteString(footerStyle(s.thm).Render("Enter to select • n new • r refresh • Esc back"))
	}

	return place(width, height, b.String())
}
