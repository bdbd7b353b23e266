package screen

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/asp2131/rusty-scv/internal/anim"
	"github.com/asp2131/rusty-scv/internal/models"
	"github.com/asp2131/rusty-scv/internal/theme"
)

// AddStudents prompts for comma-separated usernames to enroll.
type AddStudents struct {
	thm     *theme.Theme
	class   models.Class
	input   textinput.Model
	spinner string

	caretPhase float64
	waiting    bool
	errMsg     string
}

// NewAddStudents builds the enrollment prompt.
func NewAddStudents(ctx Context) *AddStudents {
	ti := textinput.New()
	ti.Placeholder = "alice, bob, carol"
	ti.CharLimit = 400
	ti.Prompt = ""
	ti.Width = 44
	ti.TextStyle = lipgloss.NewStyle().Foreground(ctx.Theme.TextFg)
	ti.Focus()
	ti.Cursor.SetMode(cursor.CursorStatic)

	return &AddStudents{
		thm:   ctx.Theme,
		class: *ctx.Class,
		input: ti,
	}
}

// Kind returns the screen kind.
func (s *AddStudents) Kind() Kind { return KindAddStudents }

// HandleKey edits the input and submits the parsed usernames.
func (s *AddStudents) HandleKey(msg tea.KeyMsg) *Event {
	if s.waiting {
		if msg.String() == keyEsc {
			return GoBack()
		}
		return nil
	}

	switch msg.String() {
	case keyEnter:
		names := SplitUsernames(s.input.Value())
		if len(names) == 0 {
			s.errMsg = "Enter at least one username"
			return nil
		}
		s.errMsg = ""
		s.waiting = true
		return &Event{Op: OpAddStudents, Names: names, Class: &s.class}
	case keyEsc:
		return GoBack()
	}

	s.errMsg = ""
	s.input, _ = s.input.Update(msg)
	return nil
}

// SplitUsernames parses a comma-separated username list, trimming
// whitespace and dropping empties and duplicates.
func SplitUsernames(value string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, part := range strings.Split(value, ",") {
		name := strings.TrimSpace(part)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// Tick drives the caret blink.
func (s *AddStudents) Tick(delta time.Duration, ctx Context) DataRequest {
	s.thm = ctx.Theme
	s.spinner = ctx.Spinner
	s.caretPhase += delta.Seconds() * caretBlinkRate
	s.input.Cursor.Blink = !anim.BlinkOn(s.caretPhase)
	return RequestNone
}

// Apply handles a failed enrollment; success navigates away first.
func (s *AddStudents) Apply(result any) {
	r, ok := result.(AddStudentsResult)
	if !ok {
		return
	}
	s.waiting = false
	s.errMsg = r.Err
}

// Refresh is a no-op; the prompt holds no loaded data.
func (s *AddStudents) Refresh() {}

// View renders the input modal.
func (s *AddStudents) View(width, height int) string {
	const boxWidth = 64

	prompt := lipgloss.NewStyle().
		Foreground(s.thm.Accent).
		Bold(true).
		Width(boxWidth - 6).
		Align(lipgloss.Center).
		Render("Add Students to " + s.class.Name)

	hint := subtitleStyle(s.thm).
		Width(boxWidth - 6).
		Align(lipgloss.Center).
		Render("GitHub usernames, separated by commas")

	inputBox := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(s.thm.Border).
		Padding(0, 1).
		Width(boxWidth - 6).
		Render(s.input.View())

	lines := []string{prompt, hint, inputBox}

	if s.errMsg != "" {
		lines = append(lines, errorStyle(s.thm).
			Width(boxWidth-6).
			Align(lipgloss.Center).
			Render(s.errMsg))
	}
	if s.waiting {
		lines = append(lines, loadingLine(s.thm, s.spinner, "Adding students..."))
	}

	footer := footerStyle(s.thm).
		Width(boxWidth - 6).
		Align(lipgloss.Center).
		MarginTop(1).
		Render("Enter to add • Esc to cancel")
	lines = append(lines, footer)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.thm.Accent).
		Padding(1, 2).
		Width(boxWidth).
		Render(strings.Join(lines, "\n\n"))

	return place(width, height, box)
}
