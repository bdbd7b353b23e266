package screen

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/asp2131/rusty-scv/internal/models"
	"github.com/asp2131/rusty-scv/internal/theme"
)

// ConfirmDeleteClass is the destructive-action modal for class
// deletion. Confirm requests the store delete; cancel pops back.
type ConfirmDeleteClass struct {
	thm     *theme.Theme
	class   models.Class
	spinner string

	selected int // 0 = Delete, 1 = Cancel
	waiting  bool
	errMsg   string
}

// NewConfirmDeleteClass builds the modal with Cancel focused.
func NewConfirmDeleteClass(ctx Context) *ConfirmDeleteClass {
	return &ConfirmDeleteClass{
		thm:      ctx.Theme,
		class:    *ctx.Class,
		selected: 1,
	}
}

// Kind returns the screen kind.
func (s *ConfirmDeleteClass) Kind() Kind { return KindConfirmDeleteClass }

// HandleKey moves between buttons or resolves the modal.
func (s *ConfirmDeleteClass) HandleKey(msg tea.KeyMsg) *Event {
	if s.waiting {
		return nil
	}

	switch msg.String() {
	case "tab", "right", "l", "shift+tab", "left", "h":
		s.selected = 1 - s.selected
		return nil
	case "y", "Y":
		return s.confirm()
	case "n", "N", keyEsc, "q":
		return GoBack()
	case keyEnter:
		if s.selected == 0 {
			return s.confirm()
		}
		return GoBack()
	}
	return nil
}

func (s *ConfirmDeleteClass) confirm() *Event {
	s.waiting = true
	return &Event{Op: OpDeleteClass, ID: s.class.ID, Name: s.class.Name, Class: &s.class}
}

// Tick only tracks the shared spinner frame; the modal owns no tweens.
func (s *ConfirmDeleteClass) Tick(delta time.Duration, ctx Context) DataRequest {
	s.thm = ctx.Theme
	s.spinner = ctx.Spinner
	return RequestNone
}

// Apply clears the in-flight flag when the delete failed; success pops
// the modal before any result reaches it.
func (s *ConfirmDeleteClass) Apply(result any) {
	r, ok := result.(DeleteClassResult)
	if !ok {
		return
	}
	s.waiting = false
	s.errMsg = r.Err
}

// Refresh is a no-op; the modal holds no loaded data.
func (s *ConfirmDeleteClass) Refresh() {}

// View renders the confirmation box.
func (s *ConfirmDeleteClass) View(width, height int) string {
	const boxWidth = 60

	message := lipgloss.NewStyle().
		Width(boxWidth-6).
		Align(lipgloss.Center).
		Foreground(s.thm.TextFg).
		Render(fmt.Sprintf("Delete class %q and all of its students?\nThis cannot be undone.", s.class.Name))

	buttonWidth := (boxWidth - 10) / 2
	unfocused := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Padding(0, 2).
		Foreground(s.thm.MutedFg).
		Background(s.thm.Border)
	focusedDelete := unfocused.
		Foreground(s.thm.AccentFg).
		Background(s.thm.ErrorFg).
		Bold(true)
	focusedCancel := unfocused.
		Foreground(s.thm.AccentFg).
		Background(s.thm.Accent).
		Bold(true)

	deleteButton := unfocused.Render("[Delete]")
	cancelButton := focusedCancel.Render("[Cancel]")
	if s.selected == 0 {
		deleteButton = focusedDelete.Render("[Delete]")
		cancelButton = unfocused.Render("[Cancel]")
	}

	buttons := lipgloss.NewStyle().
		Width(boxWidth - 6).
		Align(lipgloss.Center).
		Render(deleteButton + "  " + cancelButton)

	lines := []string{message, buttons}
	if s.errMsg != "" {
		lines = append(lines, errorStyle(s.thm).
			Width(boxWidth-6).
			Align(lipgloss.Center).
			Render(s.errMsg))
	}
	if s.waiting {
		lines = append(lines, loadingLine(s.thm, s.spinner, "Deleting class..."))
	}
	lines = append(lines, footerStyle(s.thm).
		Width(boxWidth-6).
		Align(lipgloss.Center).
		Render("y/n • Tab to switch • Enter to choose"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.thm.ErrorFg).
		Padding(1, 2).
		Width(boxWidth).
		Render(lipgloss.JoinVertical(lipgloss.Left, joinBlank(lines)...))

	return place(width, height, box)
}

// joinBlank interleaves a blank line between blocks.
func joinBlank(blocks []string) []string {
	out := make([]string, 0, len(blocks)*2-1)
	for i, b := range blocks {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, b)
	}
	return out
}
