package screen

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/asp2131/rusty-scv/internal/anim"
	"github.com/asp2131/rusty-scv/internal/theme"
)

// Menu animation constants.
const (
	// menuStaggerSeconds delays each item's entrance behind the one above it.
	menuStaggerSeconds = 0.1
	// menuSlideCells is how far items slide in from the right.
	menuSlideCells = 10
	// menuPulseRate advances the selection pulse phase, radians per second.
	menuPulseRate = 3.0
)

// MenuItem is one row of an animated menu.
type MenuItem struct {
	Title  string
	Desc   string
	Hotkey string
	Danger bool // rendered in the error color (destructive actions)
}

// Menu is the shared animated menu widget: items slide in with a
// per-item stagger on entrance and the selected row pulses.
type Menu struct {
	items      []MenuItem
	cursor     int
	entrance   anim.Tween
	step       float64 // stagger step in normalized entrance progress
	pulsePhase float64
}

// NewMenu builds a menu and starts its entrance animation.
func NewMenu(items []MenuItem) *Menu {
	m := &Menu{
		items:    items,
		entrance: anim.NewTween(0),
	}

	seconds := 0.6 + menuStaggerSeconds*float64(len(items)-1)
	if len(items) > 0 {
		m.step = menuStaggerSeconds / seconds
	}
	m.entrance.AnimateTo(1, time.Duration(seconds*float64(time.Second)), anim.Linear)
	return m
}

// Tick advances the entrance tween and the selection pulse.
func (m *Menu) Tick(delta time.Duration) {
	m.entrance.Update(delta)
	m.pulsePhase += delta.Seconds() * menuPulseRate
}

// MoveUp moves the cursor up, stopping at the first item.
func (m *Menu) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// MoveDown moves the cursor down, stopping at the last item.
func (m *Menu) MoveDown() {
	if m.cursor < len(m.items)-1 {
		m.cursor++
	}
}

// Cursor returns the selected index.
func (m *Menu) Cursor() int {
	return m.cursor
}

// SetCursor moves the cursor to i when i is a valid index.
func (m *Menu) SetCursor(i int) {
	if i >= 0 && i < len(m.items) {
		m.cursor = i
	}
}

// Len returns the number of items.
func (m *Menu) Len() int {
	return len(m.items)
}

// HotkeyIndex returns the index of the item bound to key, or -1.
func (m *Menu) HotkeyIndex(key string) int {
	for i, item := range m.items {
		if item.Hotkey != "" && item.Hotkey == key {
			return i
		}
	}
	return -1
}

// Entering reports whether the entrance animation is still running.
func (m *Menu) Entering() bool {
	return m.entrance.Active()
}

// View renders the menu rows.
func (m *Menu) View(thm *theme.Theme) string {
	descStyle := lipgloss.NewStyle().Foreground(thm.MutedFg)

	lines := make([]string, 0, len(m.items))
	for i, item := range m.items {
		itemT := anim.Stagger(m.entrance.Progress(), i, m.step)
		if itemT == 0 && m.entrance.Active() {
			lines = append(lines, "")
			continue
		}

		eased := anim.EaseOutCubic.Apply(itemT)
		offset := int((1 - eased) * menuSlideCells)

		color := thm.TextFg
		if item.Danger {
			color = thm.ErrorFg
		}
		marker := "  "
		style := lipgloss.NewStyle().Foreground(color)
		if i == m.cursor {
			marker = "> "
			pulse := anim.Pulse(m.pulsePhase)
			accent := thm.Accent
			if item.Danger {
				accent = thm.ErrorFg
			}
			style = style.Foreground(theme.Scale(accent, pulse)).Bold(true)
		}

		line := strings.Repeat(" ", offset) + marker + style.Render(item.Title)
		if item.Desc != "" {
			line += "  " + descStyle.Render(item.Desc)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
