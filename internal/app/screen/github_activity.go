package screen

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/asp2131/rusty-scv/internal/models"
	"github.com/asp2131/rusty-scv/internal/theme"
)

// GitHubActivity chooses between the activity views for a class.
type GitHubActivity struct {
	thm   *theme.Theme
	class models.Class
	menu  *Menu
}

// NewGitHubActivity builds the activity chooser.
func NewGitHubActivity(ctx Context) *GitHubActivity {
	return &GitHubActivity{
		thm:   ctx.Theme,
		class: *ctx.Class,
		menu: NewMenu([]MenuItem{
			{Title: "Week View", Desc: "commits per weekday", Hotkey: "w"},
			{Title: "Check Latest Activity", Desc: "most recent commit per student", Hotkey: "l"},
			{Title: "Back"},
		}),
	}
}

// Kind returns the screen kind.
func (s *GitHubActivity) Kind() Kind { return KindGitHubActivity }

// HandleKey navigates the chooser.
func (s *GitHubActivity) HandleKey(msg tea.KeyMsg) *Event {
	switch msg.String() {
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
	default:
		if idx := s.menu.HotkeyIndex(msg.String()); idx >= 0 {
			s.menu.SetCursor(idx)
			return s.dispatch(idx)
		}
	}
	return nil
}

func (s *GitHubActivity) dispatch(index int) *Event {
	switch index {
	case 0:
		return NavigateToClass(KindWeekView, s.class)
	case 1:
		return NavigateToClass(KindLatestActivity, s.class)
	default:
		return GoBack()
	}
}

// Tick animates the menu.
func (s *GitHubActivity) Tick(delta time.Duration, ctx Context) DataRequest {
	s.thm = ctx.Theme
	s.menu.Tick(delta)
	return RequestNone
}

// Apply is a no-op; the chooser loads nothing.
func (s *GitHubActivity) Apply(any) {}

// Refresh is a no-op; the chooser holds no data.
func (s *GitHubActivity) Refresh() {}

// View renders the chooser.
func (s *GitHubActivity) View(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle(s.thm).Render("GitHub Activity: " + s.class.Name))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View(s.thm))
	b.WriteString("\n\n")
	b.WriteString(footerStyle(s.thm).Render("Enter to select • Esc to go back"))
	return place(width, height, b.String())
}
