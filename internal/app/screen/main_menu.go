package screen

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/asp2131/rusty-scv/internal/theme"
)

// MainMenu is the permanent root screen.
type MainMenu struct {
	menu *Menu
	thm  *theme.Theme
}

// NewMainMenu builds the root menu.
func NewMainMenu(ctx Context) *MainMenu {
	items := []MenuItem{
		{Title: "Manage Classes", Desc: "browse classes and students", Hotkey: "m"},
		{Title: "Create Class", Desc: "add a new class", Hotkey: "c"},
		{Title: "Settings", Desc: "theme, animation, paths", Hotkey: "s"},
		{Title: "Quit", Hotkey: "q"},
	}
	return &MainMenu{
		menu: NewMenu(items),
		thm:  ctx.Theme,
	}
}

// Kind returns the screen kind.
func (s *MainMenu) Kind() Kind { return KindMainMenu }

// HandleKey moves the cursor or dispatches the selected item.
func (s *MainMenu) HandleKey(msg tea.KeyMsg) *Event {
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
	}

	if i := s.menu.HotkeyIndex(key); i >= 0 {
		s.menu.SetCursor(i)
		return s.dispatch(i)
	}
	return nil
}

func (s *MainMenu) dispatch(i int) *Event {
	switch i {
	case 0:
		return NavigateTo(KindClassSelection)
	case 1:
		return NavigateTo(KindCreateClass)
	case 2:
		return NavigateTo(KindSettings)
	case 3:
		return Quit()
	default:
		return nil
	}
}

// Tick advances the menu animation.
func (s *MainMenu) Tick(delta time.Duration, ctx Context) DataRequest {
	s.thm = ctx.Theme
	s.menu.Tick(delta)
	return RequestNone
}

// Apply is a no-op; the root menu loads nothing.
func (s *MainMenu) Apply(result any) {}

// Refresh is a no-op; the root menu caches nothing.
func (s *MainMenu) Refresh() {}

// View renders the title block and menu.
func (s *MainMenu) View(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle(s.thm).Render("S C V"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle(s.thm).Render("student code viewer"))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View(s.thm))
	b.WriteString("\n\n")
	b.WriteString(footerStyle(s.thm).Render("j/k to move • Enter to select • q to quit"))

	return place(width, height, b.String())
}
