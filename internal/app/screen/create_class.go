package screen

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/asp2131/rusty-scv/internal/anim"
	"github.com/asp2131/rusty-scv/internal/theme"
)

// caretBlinkRate advances the input caret phase, radians per second.
// The caret follows the animation clock instead of the textinput's own
// blink command loop.
const caretBlinkRate = 2.0

// CreateClass prompts for a new class name. Remote failures keep the
// typed input so the user can correct it.
type CreateClass struct {
	thm   *theme.Theme
	input textinput.Model

	caretPhase float64
	waiting    bool // create request in flight
	errMsg     string
	spinner    string
}

// NewCreateClass builds the class creation prompt.
func NewCreateClass(ctx Context) *CreateClass {
	ti := textinput.New()
	ti.Placeholder = "Class name"
	ti.CharLimit = 100
	ti.Prompt = ""
	ti.Width = 40
	ti.TextStyle = lipgloss.NewStyle().Foreground(ctx.Theme.TextFg)
	ti.Focus()
	ti.Cursor.SetMode(cursor.CursorStatic)

	return &CreateClass{
		thm:   ctx.Theme,
		input: ti,
	}
}

// Kind returns the screen kind.
func (s *CreateClass) Kind() Kind { return KindCreateClass }

// HandleKey edits the input, validates, and submits.
func (s *CreateClass) HandleKey(msg tea.KeyMsg) *Event {
	if s.waiting {
		// A create is outstanding; only Esc navigates away.
		if msg.String() == keyEsc {
			return GoBack()
		}
		return nil
	}

	switch msg.String() {
	case keyEnter:
		name := strings.TrimSpace(s.input.Value())
		if name == "" {
			s.errMsg = "Class name cannot be empty"
			return nil
		}
		s.errMsg = ""
		s.waiting = true
		return &Event{Op: OpCreateClass, Name: name}
	case keyEsc:
		return GoBack()
	}

	s.errMsg = ""
	s.input, _ = s.input.Update(msg)
	return nil
}

// Tick drives the caret blink.
func (s *CreateClass) Tick(delta time.Duration, ctx Context) DataRequest {
	s.thm = ctx.Theme
	s.spinner = ctx.Spinner
	s.caretPhase += delta.Seconds() * caretBlinkRate
	s.input.Cursor.Blink = !anim.BlinkOn(s.caretPhase)
	return RequestNone
}

// Apply handles a failed create; success navigates away before any
// result reaches this screen.
func (s *CreateClass) Apply(result any) {
	r, ok := result.(CreateClassResult)
	if !ok {
		return
	}
	s.waiting = false
	s.errMsg = r.Err
}

// Refresh is a no-op; the prompt holds no loaded data.
func (s *CreateClass) Refresh() {}

// ErrorText returns the current validation or collaborator error.
func (s *CreateClass) ErrorText() string {
	return s.errMsg
}

// Value returns the typed class name.
func (s *CreateClass) Value() string {
	return s.input.Value()
}

// View renders the input modal.
func (s *CreateClass) View(width, height int) string {
	const boxWidth = 60

	prompt := lipgloss.NewStyle().
		Foreground(s.thm.Accent).
		Bold(true).
		Width(boxWidth - 6).
		Align(lipgloss.Center).
		Render("Create New Class")

	inputBox := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(s.thm.Border).
		Padding(0, 1).
		Width(boxWidth - 6).
		Render(s.input.View())

	lines := []string{prompt, inputBox}

	if s.errMsg != "" {
		lines = append(lines, errorStyle(s.thm).
			Width(boxWidth-6).
			Align(lipgloss.Center).
			Render(s.errMsg))
	}
	if s.waiting {
		lines = append(lines, loadingLine(s.thm, s.spinner, "Creating class..."))
	}

	footer := footerStyle(s.thm).
		Width(boxWidth - 6).
		Align(lipgloss.Center).
		MarginTop(1).
		Render("Enter to confirm • Esc to cancel")
	lines = append(lines, footer)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.thm.Accent).
		Padding(1, 2).
		Width(boxWidth).
		Render(strings.Join(lines, "\n\n"))

	return place(width, height, box)
}
