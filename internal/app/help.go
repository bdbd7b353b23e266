package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/asp2131/rusty-scv/internal/theme"
)

const helpText = `Global
  j / down      Move cursor down
  k / up        Move cursor up
  Enter         Select / confirm
  Esc           Go back (cancel on prompts)
  ?             Toggle this help
  Ctrl+C        Quit

Main menu
  m             Manage classes
  c             Create a class
  s             Settings
  q             Quit

Class list
  Enter         Open the selected class
  n             New class
  r             Refresh

Students
  a             Add students (comma-separated usernames)
  r             Remove a student
  l             Toggle the roster list

Repositories
  a             Clone all repositories
  c / p / x     Clone / pull / clean the selected repository
  t             Open the repository in a terminal
  r             Refresh clone status

Activity
  w             Week view (commits per weekday)
  l             Latest commit per student
  e             Export the week view to xlsx
  r             Refresh

Settings
  h / l         Adjust the selected value`

// helpOverlay is a scrollable keybinding reference rendered over the
// topmost screen. It is router state, not a stack entry: toggling it
// never disturbs navigation or pending tasks.
type helpOverlay struct {
	viewport viewport.Model
	visible  bool
}

// toggle shows or hides the overlay, sizing the viewport to the
// current surface.
func (h *helpOverlay) toggle(width, height int) {
	h.visible = !h.visible
	if !h.visible {
		return
	}

	vpWidth := width - 8
	if vpWidth < 30 {
		vpWidth = 30
	}
	vpHeight := height - 6
	lines := strings.Count(helpText, "\n") + 1
	if vpHeight > lines {
		vpHeight = lines
	}
	if vpHeight < 5 {
		vpHeight = 5
	}

	h.viewport = viewport.New(vpWidth, vpHeight)
	h.viewport.SetContent(helpText)
}

// handleKey scrolls or dismisses the overlay. All keys are consumed
// while it is visible.
func (h *helpOverlay) handleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "?", "esc", "q", "enter":
		h.visible = false
		return
	}
	h.viewport, _ = h.viewport.Update(msg)
}

func (h *helpOverlay) view(thm *theme.Theme, width, height int) string {
	title := lipgloss.NewStyle().Foreground(thm.Accent).Bold(true).Render("Keybindings")
	footer := lipgloss.NewStyle().Foreground(thm.MutedFg).Render("j/k to scroll • ? or Esc to close")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(thm.Border).
		Padding(1, 2).
		Render(title + "\n\n" + h.viewport.View() + "\n\n" + footer)

	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
